// internal/service/notification/domain/confirmation.go
package domain

import (
	"strings"
	"time"
)

// BookingConfirmation 是从确认 topic 消费到的预订事件。
// 字段与上游发布方的 JSON 契约保持一致，携带渲染确认单所需的全部数据。
type BookingConfirmation struct {
	EventID            string    `json:"eventId"`
	BookingID          int64     `json:"bookingId"`
	ConfirmationNumber string    `json:"confirmationNumber"`
	UserID             int64     `json:"userId"`
	UserEmail          string    `json:"userEmail"`
	HotelAddress       string    `json:"hotelAddress"`
	RoomDescriptions   []string  `json:"roomDescriptions"`
	CheckIn            string    `json:"checkIn"`  // YYYY-MM-DD
	CheckOut           string    `json:"checkOut"` // YYYY-MM-DD
	TotalAfterDiscount string    `json:"totalAfterDiscount"`
	CreatedAt          time.Time `json:"createdAt"`
}

// JoinedRoomDescriptions 以逗号拼接所有房间描述，供确认单展示。
func (c *BookingConfirmation) JoinedRoomDescriptions() string {
	return strings.Join(c.RoomDescriptions, ", ")
}

// 确认单投递结果。
const (
	StatusSent     = "sent"
	StatusDegraded = "degraded" // 邮件已发出，但 PDF 附件渲染失败
	StatusFailed   = "failed"
)

// ConfirmationStatus 是确认流水线的处理结果，发布给在线推送通道。
type ConfirmationStatus struct {
	EventID            string    `json:"eventId"`
	BookingID          int64     `json:"bookingId"`
	UserID             int64     `json:"userId"`
	ConfirmationNumber string    `json:"confirmationNumber"`
	Status             string    `json:"status"`
	Detail             string    `json:"detail,omitempty"`
	ProcessedAt        time.Time `json:"processedAt"`
}
