// internal/service/booking/infrastructure/mapper_test.go
package infrastructure

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"staybook/internal/service/booking/domain"
)

func TestFromDomainBookingLineNumbers(t *testing.T) {
	checkIn := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	booking := &domain.Booking{
		UserID:   7,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Lines: []domain.RoomLine{
			{RoomID: 1, Nights: 4},
			{RoomID: 2, Nights: 4},
			{RoomID: 1, Nights: 4}, // 同一房间的第二行
		},
		PaymentType: domain.PaymentCash,
	}

	model := FromDomainBooking(booking)
	if len(model.Lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(model.Lines))
	}

	// 同一 (房间, 区间) 的行必须拿到不同的序号，否则唯一索引会拒绝第二行
	gotLineNos := []int{model.Lines[0].LineNo, model.Lines[1].LineNo, model.Lines[2].LineNo}
	wantLineNos := []int{1, 1, 2}
	for i := range wantLineNos {
		if gotLineNos[i] != wantLineNos[i] {
			t.Errorf("line %d: LineNo = %d, want %d", i, gotLineNos[i], wantLineNos[i])
		}
	}

	for i, line := range model.Lines {
		if !line.CheckInDate.Equal(checkIn) || !line.CheckOutDate.Equal(checkOut) {
			t.Errorf("line %d: stay window not denormalized onto the row", i)
		}
	}
}

func TestBookingModelRoundTrip(t *testing.T) {
	discountID := int64(11)
	model := &BookingModel{
		ID:                  58,
		UserID:              7,
		CheckInDate:         time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		CheckOutDate:        time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		BookingDate:         time.Now().UTC(),
		Remarks:             "late arrival",
		PaymentType:         "CreditCard",
		TotalBeforeDiscount: decimal.RequireFromString("600"),
		TotalAfterDiscount:  decimal.RequireFromString("520"),
		Lines: []BookingRoomModel{
			{RoomID: 1, LineNo: 1, Description: "Deluxe King", Nights: 4,
				BaseTotal: decimal.RequireFromString("400"), DiscountedTotal: decimal.RequireFromString("320"),
				DiscountID: &discountID},
		},
	}

	b := ToDomainBooking(model)
	if b.ID != 58 || b.UserID != 7 {
		t.Errorf("identity fields lost: %+v", b)
	}
	if b.ConfirmationNumber() != "BK-0058" {
		t.Errorf("ConfirmationNumber = %q", b.ConfirmationNumber())
	}
	if len(b.Lines) != 1 || b.Lines[0].Description != "Deluxe King" {
		t.Fatalf("lines not mapped: %+v", b.Lines)
	}
	if !b.TotalAfterDiscount.Equal(decimal.RequireFromString("520")) {
		t.Errorf("TotalAfterDiscount = %s", b.TotalAfterDiscount)
	}
}
