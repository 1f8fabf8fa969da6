// internal/service/booking/domain/event.go
package domain

import (
	"fmt"
	"strings"
	"time"
)

// BookingCreated 是预订持久化成功后发布的领域事件。
// 它携带确认流水线需要的全部数据，下游渲染确认单时无需回查数据库。
type BookingCreated struct {
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

// NewBookingCreated 从聚合与下单用户构建事件。
// hotelAddress 取第一个房间所属酒店的地址，与确认单的展示规则一致。
func NewBookingCreated(eventID string, b *Booking, user *User, hotelAddress string) *BookingCreated {
	descriptions := make([]string, 0, len(b.Lines))
	for _, line := range b.Lines {
		descriptions = append(descriptions, line.Description)
	}
	return &BookingCreated{
		EventID:            eventID,
		BookingID:          b.ID,
		ConfirmationNumber: b.ConfirmationNumber(),
		UserID:             user.ID,
		UserEmail:          user.Email,
		HotelAddress:       hotelAddress,
		RoomDescriptions:   descriptions,
		CheckIn:            b.CheckIn.Format("2006-01-02"),
		CheckOut:           b.CheckOut.Format("2006-01-02"),
		TotalAfterDiscount: b.TotalAfterDiscount.StringFixed(2),
		CreatedAt:          time.Now().UTC(),
	}
}

// JoinedRoomDescriptions 以逗号拼接所有房间描述，供确认单展示。
func (e *BookingCreated) JoinedRoomDescriptions() string {
	return strings.Join(e.RoomDescriptions, ", ")
}

func formatConfirmationNumber(bookingID int64) string {
	return fmt.Sprintf("BK-%04d", bookingID)
}
