// internal/service/booking/domain/booking.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentType 是预订时声明的支付方式。
type PaymentType string

const (
	PaymentCash         PaymentType = "Cash"
	PaymentCreditCard   PaymentType = "CreditCard"
	PaymentBankTransfer PaymentType = "BankTransfer"
)

// ParsePaymentType 校验并归一化支付方式。
func ParsePaymentType(s string) (PaymentType, error) {
	switch PaymentType(s) {
	case PaymentCash, PaymentCreditCard, PaymentBankTransfer:
		return PaymentType(s), nil
	default:
		return "", Validationf("unknown payment type %q", s)
	}
}

// RoomLine 是一个房间对预订总价的贡献：晚数与折扣结算后的一条价格行。
type RoomLine struct {
	RoomID          int64
	Description     string
	HotelID         int64
	Nights          int
	BaseTotal       decimal.Decimal
	Discount        *Discount // 应用到该行的折扣，可能为 nil
	DiscountedTotal decimal.Decimal
}

// Booking 是预订聚合根。由装配器一次性构建，持久化后不再被本核心修改。
type Booking struct {
	ID          int64
	UserID      int64
	Lines       []RoomLine
	CheckIn     time.Time
	CheckOut    time.Time
	BookingDate time.Time
	Remarks     string
	PaymentType PaymentType

	TotalBeforeDiscount decimal.Decimal
	TotalAfterDiscount  decimal.Decimal
}

// NewBooking 从已定价的房间行构建预订聚合，并计算两个总价。
// 不变式：折后总价 = 各行折后价之和 ≤ 折前总价 = 各行基础价之和。
func NewBooking(userID int64, stay Stay, lines []RoomLine, remarks string, payment PaymentType) (*Booking, error) {
	if len(lines) == 0 {
		return nil, Validationf("a booking must contain at least one room")
	}

	totalBefore := decimal.Zero
	totalAfter := decimal.Zero
	for i := range lines {
		if lines[i].Nights <= 0 {
			return nil, Validationf("room %d priced with non-positive nights", lines[i].RoomID)
		}
		totalBefore = totalBefore.Add(lines[i].BaseTotal)
		totalAfter = totalAfter.Add(lines[i].DiscountedTotal)
	}
	if totalAfter.GreaterThan(totalBefore) {
		return nil, Validationf("discounted total exceeds base total")
	}

	return &Booking{
		UserID:              userID,
		Lines:               lines,
		CheckIn:             stay.CheckIn,
		CheckOut:            stay.CheckOut,
		BookingDate:         time.Now().UTC(),
		Remarks:             remarks,
		PaymentType:         payment,
		TotalBeforeDiscount: totalBefore,
		TotalAfterDiscount:  totalAfter,
	}, nil
}

// ConfirmationNumber 从持久化后分配的 ID 派生确认号。
func (b *Booking) ConfirmationNumber() string {
	return formatConfirmationNumber(b.ID)
}
