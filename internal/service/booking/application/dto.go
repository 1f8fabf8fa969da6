// internal/service/booking/application/dto.go
package application

import (
	"time"

	"staybook/internal/service/booking/domain"
)

// CreateBookingRequest 是创建预订用例的输入数据。
// UserID 来自调用方已认证的会话，而不是请求体。
type CreateBookingRequest struct {
	UserID      int64
	RoomIDs     []int64 // 保序，允许重复，每次出现独立计价
	CheckIn     time.Time
	CheckOut    time.Time
	Remarks     string
	PaymentType string
}

// RoomLineResponse 是响应中的一条房间价格行。
type RoomLineResponse struct {
	RoomID             int64  `json:"roomId"`
	Description        string `json:"description"`
	Nights             int    `json:"nights"`
	BaseTotal          string `json:"baseTotal"`
	DiscountPercentage string `json:"discountPercentage,omitempty"`
	DiscountedTotal    string `json:"discountedTotal"`
}

// BookingResponse 是创建/查询预订用例的输出数据。
type BookingResponse struct {
	ID                       int64              `json:"id"`
	ConfirmationNumber       string             `json:"confirmationNumber"`
	UserID                   int64              `json:"userId"`
	Rooms                    []RoomLineResponse `json:"rooms"`
	CheckInDate              string             `json:"checkInDate"`
	CheckOutDate             string             `json:"checkOutDate"`
	BookingDate              time.Time          `json:"bookingDate"`
	Remarks                  string             `json:"remarks,omitempty"`
	PaymentType              string             `json:"paymentType"`
	TotalPriceBeforeDiscount string             `json:"totalPriceBeforeDiscount"`
	TotalPriceAfterDiscount  string             `json:"totalPriceAfterDiscount"`

	// ConfirmationDegraded 表示预订已成功落库，但确认事件未能发出。
	ConfirmationDegraded bool `json:"confirmationDegraded,omitempty"`
}

// ToBookingResponse 把聚合映射为响应 DTO。金额以两位小数字符串输出。
func ToBookingResponse(b *domain.Booking, degraded bool) *BookingResponse {
	lines := make([]RoomLineResponse, 0, len(b.Lines))
	for _, line := range b.Lines {
		lr := RoomLineResponse{
			RoomID:          line.RoomID,
			Description:     line.Description,
			Nights:          line.Nights,
			BaseTotal:       line.BaseTotal.StringFixed(2),
			DiscountedTotal: line.DiscountedTotal.StringFixed(2),
		}
		if line.Discount != nil {
			lr.DiscountPercentage = line.Discount.Percentage.String()
		}
		lines = append(lines, lr)
	}
	return &BookingResponse{
		ID:                       b.ID,
		ConfirmationNumber:       b.ConfirmationNumber(),
		UserID:                   b.UserID,
		Rooms:                    lines,
		CheckInDate:              b.CheckIn.Format("2006-01-02"),
		CheckOutDate:             b.CheckOut.Format("2006-01-02"),
		BookingDate:              b.BookingDate,
		Remarks:                  b.Remarks,
		PaymentType:              string(b.PaymentType),
		TotalPriceBeforeDiscount: b.TotalBeforeDiscount.StringFixed(2),
		TotalPriceAfterDiscount:  b.TotalAfterDiscount.StringFixed(2),
		ConfirmationDegraded:     degraded,
	}
}
