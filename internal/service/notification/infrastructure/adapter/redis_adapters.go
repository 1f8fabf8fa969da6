// internal/service/notification/infrastructure/adapter/redis_adapters.go
package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"staybook/internal/pkg/redis"
	"staybook/internal/service/notification/domain"
)

const (
	processedKeyPrefix = "confirmation:processed:"
	processedTTL       = 24 * time.Hour

	// StatusChannel 是确认处理状态的 Redis 发布频道，推送网关订阅它。
	StatusChannel = "confirmation-status"
)

// RedisProcessedMarker 实现 port.ProcessedMarker，用 SETNX 做事件级幂等。
// TTL 覆盖 Kafka 消费组可能的重投递窗口。
type RedisProcessedMarker struct {
	client *redis.Client
}

func NewRedisProcessedMarker(client *redis.Client) *RedisProcessedMarker {
	return &RedisProcessedMarker{client: client}
}

func (m *RedisProcessedMarker) MarkProcessed(ctx context.Context, eventID string) (bool, error) {
	ok, err := m.client.GetClient().SetNX(ctx, processedKeyPrefix+eventID, 1, processedTTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark event %s as processed: %w", eventID, err)
	}
	return ok, nil
}

// RedisStatusPublisher 实现 port.StatusPublisher，把状态发布到 pub/sub 频道。
type RedisStatusPublisher struct {
	client *redis.Client
}

func NewRedisStatusPublisher(client *redis.Client) *RedisStatusPublisher {
	return &RedisStatusPublisher{client: client}
}

func (p *RedisStatusPublisher) PublishStatus(ctx context.Context, status *domain.ConfirmationStatus) error {
	payload, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("failed to marshal confirmation status: %w", err)
	}
	if err := p.client.GetClient().Publish(ctx, StatusChannel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish confirmation status: %w", err)
	}
	return nil
}
