// internal/service/notification/infrastructure/kafka_consumer.go
package infrastructure

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"

	"staybook/internal/pkg/logger"
	"staybook/internal/pkg/mq"
	"staybook/internal/service/notification/application"
	"staybook/internal/service/notification/domain"
)

// ConfirmationConsumerAdapter 是一个驱动适配器，
// 监听确认 topic 并驱动确认流水线。
type ConfirmationConsumerAdapter struct {
	reader *kafka.Reader
	appSvc *application.ConfirmationService
}

func NewConfirmationConsumerAdapter(reader *kafka.Reader, appSvc *application.ConfirmationService) *ConfirmationConsumerAdapter {
	return &ConfirmationConsumerAdapter{
		reader: reader,
		appSvc: appSvc,
	}
}

// Run 阻塞消费，直到 ctx 取消。适合放进 errgroup 运行。
func (a *ConfirmationConsumerAdapter) Run(ctx context.Context) error {
	defer a.reader.Close()
	logger.Ctx(ctx).Info().
		Str("topic", a.reader.Config().Topic).
		Msg("confirmation consumer started")

	for {
		// 用 FetchMessage 而不是 ReadMessage，以便控制提交时机和退出逻辑
		msg, err := a.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				logger.Ctx(ctx).Info().Msg("confirmation consumer shutting down")
				return nil
			}
			logger.Ctx(ctx).Error().Err(err).Msg("could not fetch message, retrying")
			time.Sleep(1 * time.Second) // 避免快速失败循环
			continue
		}

		a.processMessage(ctx, msg)

		// 事件级幂等由应用层保证，处理完成后无条件提交 offset
		if err := a.reader.CommitMessages(ctx, msg); err != nil {
			logger.Ctx(ctx).Error().Err(err).Msg("failed to commit messages")
		}
	}
}

// processMessage 重建追踪上下文、反序列化事件并调用应用服务。
func (a *ConfirmationConsumerAdapter) processMessage(parentCtx context.Context, msg kafka.Message) {
	propagator := otel.GetTextMapPropagator()
	headerCarrier := mq.KafkaHeaderCarrier(msg.Headers)
	ctx := propagator.Extract(parentCtx, &headerCarrier)

	var event domain.BookingConfirmation
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		// 坏消息不可恢复，跳过并提交，避免卡死分区
		logger.Ctx(ctx).Error().Err(err).Msg("failed to unmarshal confirmation event, skipping")
		return
	}

	if err := a.appSvc.HandleBookingConfirmation(ctx, &event); err != nil {
		logger.Ctx(ctx).Error().Err(err).
			Str("event_id", event.EventID).
			Msg("failed to handle confirmation event")
	}
}
