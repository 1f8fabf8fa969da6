// internal/service/booking/infrastructure/adapter/confirmation_kafka_adapter.go
package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/segmentio/kafka-go"

	"staybook/internal/pkg/mq"
	"staybook/internal/service/booking/domain"
)

// ConfirmationKafkaAdapter 实现 port.ConfirmationProducer 接口，
// 把 BookingCreated 事件发布到确认 topic。
type ConfirmationKafkaAdapter struct {
	writer *kafka.Writer
}

// NewConfirmationKafkaAdapter 创建一个新的确认事件生产者适配器。
func NewConfirmationKafkaAdapter(writer *kafka.Writer) *ConfirmationKafkaAdapter {
	return &ConfirmationKafkaAdapter{writer: writer}
}

// PublishBookingCreated 序列化并发送事件。
// 以用户 ID 作为消息 Key，同一用户的确认消息保持有序。
func (a *ConfirmationKafkaAdapter) PublishBookingCreated(ctx context.Context, event *domain.BookingCreated) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal booking created event: %w", err)
	}

	key := []byte(strconv.FormatInt(event.UserID, 10))
	// mq.ProduceMessage 会自动把追踪上下文注入消息头
	return mq.ProduceMessage(ctx, a.writer, key, eventBytes)
}

// Close 关闭底层的 Kafka writer。
func (a *ConfirmationKafkaAdapter) Close() error {
	return a.writer.Close()
}
