// internal/service/booking/domain/booking_test.go
package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestParsePaymentType(t *testing.T) {
	for _, valid := range []string{"Cash", "CreditCard", "BankTransfer"} {
		if _, err := ParsePaymentType(valid); err != nil {
			t.Errorf("ParsePaymentType(%q) unexpected error: %v", valid, err)
		}
	}
	for _, invalid := range []string{"", "cash", "Bitcoin"} {
		_, err := ParsePaymentType(invalid)
		if err == nil {
			t.Errorf("ParsePaymentType(%q) expected an error", invalid)
			continue
		}
		if !IsValidation(err) {
			t.Errorf("ParsePaymentType(%q) expected a validation error, got kind %v", invalid, KindOf(err))
		}
	}
}

func TestNewBooking(t *testing.T) {
	stay, err := NewStay(date(2026, 3, 10), date(2026, 3, 14))
	if err != nil {
		t.Fatal(err)
	}

	t.Run("totals are the sum of all lines", func(t *testing.T) {
		lines := []RoomLine{
			{RoomID: 1, Nights: 4, BaseTotal: money("400"), DiscountedTotal: money("320")},
			{RoomID: 2, Nights: 4, BaseTotal: money("200"), DiscountedTotal: money("200")},
		}
		b, err := NewBooking(7, stay, lines, "sea view please", PaymentCreditCard)
		if err != nil {
			t.Fatal(err)
		}
		if !b.TotalBeforeDiscount.Equal(money("600")) {
			t.Errorf("TotalBeforeDiscount = %s, want 600", b.TotalBeforeDiscount)
		}
		if !b.TotalAfterDiscount.Equal(money("520")) {
			t.Errorf("TotalAfterDiscount = %s, want 520", b.TotalAfterDiscount)
		}
		if b.BookingDate.IsZero() {
			t.Error("BookingDate was not set")
		}
	})

	t.Run("empty booking rejected", func(t *testing.T) {
		_, err := NewBooking(7, stay, nil, "", PaymentCash)
		if err == nil || !IsValidation(err) {
			t.Fatalf("expected a validation error, got %v", err)
		}
	})

	t.Run("discounted total above base rejected", func(t *testing.T) {
		lines := []RoomLine{
			{RoomID: 1, Nights: 4, BaseTotal: money("100"), DiscountedTotal: money("150")},
		}
		_, err := NewBooking(7, stay, lines, "", PaymentCash)
		if err == nil || !IsValidation(err) {
			t.Fatalf("expected a validation error, got %v", err)
		}
	})

	t.Run("non-positive nights rejected", func(t *testing.T) {
		lines := []RoomLine{
			{RoomID: 1, Nights: 0, BaseTotal: money("0"), DiscountedTotal: money("0")},
		}
		_, err := NewBooking(7, stay, lines, "", PaymentCash)
		if err == nil || !IsValidation(err) {
			t.Fatalf("expected a validation error, got %v", err)
		}
	})
}

func TestConfirmationNumber(t *testing.T) {
	tests := []struct {
		id   int64
		want string
	}{
		{1, "BK-0001"},
		{42, "BK-0042"},
		{9999, "BK-9999"},
		{12345, "BK-12345"}, // 超过四位后不截断
	}
	for _, tt := range tests {
		b := &Booking{ID: tt.id}
		if got := b.ConfirmationNumber(); got != tt.want {
			t.Errorf("ConfirmationNumber(id=%d) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestBookingCreatedEvent(t *testing.T) {
	stay, err := NewStay(date(2026, 3, 10), date(2026, 3, 14))
	if err != nil {
		t.Fatal(err)
	}
	lines := []RoomLine{
		{RoomID: 1, Description: "Deluxe King", Nights: 4, BaseTotal: money("400"), DiscountedTotal: money("320")},
		{RoomID: 2, Description: "Twin Garden", Nights: 4, BaseTotal: money("200"), DiscountedTotal: money("200")},
	}
	booking, err := NewBooking(7, stay, lines, "", PaymentCash)
	if err != nil {
		t.Fatal(err)
	}
	booking.ID = 58

	user := &User{ID: 7, Name: "Lina", Email: "lina@example.com"}
	event := NewBookingCreated("evt-1", booking, user, "12 Harbour Road")

	if event.ConfirmationNumber != "BK-0058" {
		t.Errorf("ConfirmationNumber = %q, want BK-0058", event.ConfirmationNumber)
	}
	if event.UserEmail != "lina@example.com" {
		t.Errorf("UserEmail = %q", event.UserEmail)
	}
	if event.HotelAddress != "12 Harbour Road" {
		t.Errorf("HotelAddress = %q", event.HotelAddress)
	}
	if got := event.JoinedRoomDescriptions(); got != "Deluxe King, Twin Garden" {
		t.Errorf("JoinedRoomDescriptions() = %q", got)
	}
	if event.CheckIn != "2026-03-10" || event.CheckOut != "2026-03-14" {
		t.Errorf("dates = %q / %q", event.CheckIn, event.CheckOut)
	}
	if event.TotalAfterDiscount != "520.00" {
		t.Errorf("TotalAfterDiscount = %q, want 520.00", event.TotalAfterDiscount)
	}
}
