// internal/service/notification/application/service.go
package application

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"staybook/internal/pkg/logger"
	"staybook/internal/service/notification/domain"
	"staybook/internal/service/notification/domain/port"
)

var confirmationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "confirmation_processed_total",
	Help: "Total confirmation events processed, by outcome.",
}, []string{"outcome"})

// ConfirmationService 处理预订确认流水线：
// 幂等检查 -> 渲染 HTML -> 转 PDF -> 发邮件 -> 发布处理状态。
// PDF 渲染失败只降级（发不带附件的邮件），邮件投递失败才算整体失败。
type ConfirmationService struct {
	marker    port.ProcessedMarker
	renderer  port.DocumentRenderer
	mailer    port.Mailer
	publisher port.StatusPublisher
	tracer    trace.Tracer
}

func NewConfirmationService(
	marker port.ProcessedMarker,
	renderer port.DocumentRenderer,
	mailer port.Mailer,
	publisher port.StatusPublisher,
	tracer trace.Tracer,
) *ConfirmationService {
	return &ConfirmationService{
		marker:    marker,
		renderer:  renderer,
		mailer:    mailer,
		publisher: publisher,
		tracer:    tracer,
	}
}

// SetRenderer 注入文档渲染适配器。
// 渲染适配器依赖服务发现客户端，后者在服务启动阶段才可用。
func (s *ConfirmationService) SetRenderer(renderer port.DocumentRenderer) {
	s.renderer = renderer
}

// HandleBookingConfirmation 处理一条确认事件。
// 返回错误表示处理失败，调用方可按自己的策略重试；重复事件返回 nil。
func (s *ConfirmationService) HandleBookingConfirmation(ctx context.Context, event *domain.BookingConfirmation) error {
	ctx, span := s.tracer.Start(ctx, "app.HandleBookingConfirmation")
	defer span.End()
	span.SetAttributes(
		attribute.String("confirmation.event_id", event.EventID),
		attribute.Int64("confirmation.booking_id", event.BookingID),
	)

	// 1. 幂等：同一事件只处理一次
	first, err := s.marker.MarkProcessed(ctx, event.EventID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to check event idempotency: %w", err)
	}
	if !first {
		confirmationsTotal.WithLabelValues("duplicate").Inc()
		logger.Ctx(ctx).Info().
			Str("event_id", event.EventID).
			Msg("duplicate confirmation event, skipping")
		return nil
	}

	if event.UserEmail == "" {
		err := fmt.Errorf("confirmation event %s has no recipient email", event.EventID)
		confirmationsTotal.WithLabelValues(domain.StatusFailed).Inc()
		s.publishStatus(ctx, event, domain.StatusFailed, err.Error())
		return err
	}

	// 2. 渲染邮件正文
	subject, htmlBody, err := composeConfirmationEmail(event)
	if err != nil {
		span.RecordError(err)
		confirmationsTotal.WithLabelValues(domain.StatusFailed).Inc()
		s.publishStatus(ctx, event, domain.StatusFailed, err.Error())
		return err
	}

	// 3. HTML 转 PDF。渲染服务不可用时降级为不带附件的邮件。
	status := domain.StatusSent
	var attachment []byte
	var pdf []byte
	if s.renderer != nil {
		pdf, err = s.renderer.RenderPDF(ctx, []byte(htmlBody))
	} else {
		err = fmt.Errorf("document renderer is not configured")
	}
	if err != nil {
		span.RecordError(err)
		logger.Ctx(ctx).Warn().Err(err).
			Str("event_id", event.EventID).
			Msg("pdf rendering failed, sending confirmation without attachment")
		status = domain.StatusDegraded
	} else {
		attachment = pdf
	}

	// 4. 投递邮件
	if err := s.mailer.Send(ctx, event.UserEmail, subject, htmlBody, attachment); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		confirmationsTotal.WithLabelValues(domain.StatusFailed).Inc()
		s.publishStatus(ctx, event, domain.StatusFailed, err.Error())
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}

	confirmationsTotal.WithLabelValues(status).Inc()
	logger.Ctx(ctx).Info().
		Str("event_id", event.EventID).
		Int64("booking_id", event.BookingID).
		Str("status", status).
		Msg("confirmation email dispatched")

	// 5. 通知在线推送通道
	s.publishStatus(ctx, event, status, "")
	return nil
}

// publishStatus 发布处理结果。状态发布是尽力而为，失败只记日志。
func (s *ConfirmationService) publishStatus(ctx context.Context, event *domain.BookingConfirmation, status, detail string) {
	err := s.publisher.PublishStatus(ctx, &domain.ConfirmationStatus{
		EventID:            event.EventID,
		BookingID:          event.BookingID,
		UserID:             event.UserID,
		ConfirmationNumber: event.ConfirmationNumber,
		Status:             status,
		Detail:             detail,
		ProcessedAt:        time.Now().UTC(),
	})
	if err != nil {
		logger.Ctx(ctx).Warn().Err(err).
			Str("event_id", event.EventID).
			Msg("failed to publish confirmation status")
	}
}
