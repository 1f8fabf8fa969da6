// internal/service/notification/domain/port/ports.go
package port

import (
	"context"

	"staybook/internal/service/notification/domain"
)

// DocumentRenderer 把渲染好的 HTML 转成 PDF 字节流。
type DocumentRenderer interface {
	RenderPDF(ctx context.Context, html []byte) ([]byte, error)
}

// Mailer 向收件人投递确认邮件。attachment 为 nil 时不带附件。
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string, attachment []byte) error
}

// StatusPublisher 把确认处理结果发布给在线推送通道。
type StatusPublisher interface {
	PublishStatus(ctx context.Context, status *domain.ConfirmationStatus) error
}

// ProcessedMarker 记录事件是否已被处理过，保证 at-least-once 消费下的幂等。
// 返回 false 表示该事件已处理，调用方应跳过。
type ProcessedMarker interface {
	MarkProcessed(ctx context.Context, eventID string) (bool, error)
}
