// internal/service/booking/domain/discount_test.go
package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func pct(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestBestDiscount(t *testing.T) {
	stayStart := date(2026, 3, 10)
	stayEnd := date(2026, 3, 14)

	active := func(id int64, percentage int64) Discount {
		return Discount{
			ID:         id,
			RoomID:     1,
			Percentage: pct(percentage),
			StartDate:  date(2026, 3, 1),
			EndDate:    date(2026, 4, 1),
		}
	}

	t.Run("no candidates", func(t *testing.T) {
		if got := BestDiscount(nil, stayStart, stayEnd); got != nil {
			t.Errorf("expected nil, got discount %d", got.ID)
		}
	})

	t.Run("expired discounts are ignored", func(t *testing.T) {
		candidates := []Discount{
			{ID: 1, Percentage: pct(50), StartDate: date(2026, 1, 1), EndDate: date(2026, 2, 1)},
			{ID: 2, Percentage: pct(50), StartDate: date(2026, 5, 1), EndDate: date(2026, 6, 1)},
		}
		if got := BestDiscount(candidates, stayStart, stayEnd); got != nil {
			t.Errorf("expected nil, got discount %d", got.ID)
		}
	})

	t.Run("window touching stay start is not applicable", func(t *testing.T) {
		// 半开区间：EndDate == stayStart 不算重叠
		candidates := []Discount{
			{ID: 1, Percentage: pct(50), StartDate: date(2026, 3, 1), EndDate: stayStart},
		}
		if got := BestDiscount(candidates, stayStart, stayEnd); got != nil {
			t.Errorf("expected nil, got discount %d", got.ID)
		}
	})

	t.Run("highest percentage wins", func(t *testing.T) {
		candidates := []Discount{active(1, 10), active(2, 25), active(3, 15)}
		got := BestDiscount(candidates, stayStart, stayEnd)
		if got == nil || got.ID != 2 {
			t.Fatalf("expected discount 2, got %+v", got)
		}
	})

	t.Run("tie broken by lowest id", func(t *testing.T) {
		candidates := []Discount{active(7, 20), active(3, 20), active(5, 20)}
		got := BestDiscount(candidates, stayStart, stayEnd)
		if got == nil || got.ID != 3 {
			t.Fatalf("expected discount 3, got %+v", got)
		}
	})

	t.Run("result is order independent", func(t *testing.T) {
		forward := []Discount{active(1, 10), active(2, 25), active(3, 25)}
		backward := []Discount{active(3, 25), active(2, 25), active(1, 10)}
		a := BestDiscount(forward, stayStart, stayEnd)
		b := BestDiscount(backward, stayStart, stayEnd)
		if a == nil || b == nil || a.ID != b.ID {
			t.Fatalf("selection depends on order: %+v vs %+v", a, b)
		}
		if a.ID != 2 {
			t.Errorf("expected discount 2, got %d", a.ID)
		}
	})

	t.Run("fractional percentages compare correctly", func(t *testing.T) {
		candidates := []Discount{
			{ID: 1, Percentage: decimal.RequireFromString("12.5"), StartDate: date(2026, 3, 1), EndDate: date(2026, 4, 1)},
			{ID: 2, Percentage: decimal.RequireFromString("12.49"), StartDate: date(2026, 3, 1), EndDate: date(2026, 4, 1)},
		}
		got := BestDiscount(candidates, stayStart, stayEnd)
		if got == nil || got.ID != 1 {
			t.Fatalf("expected discount 1, got %+v", got)
		}
	})
}

func TestDiscountOverlapsWindow(t *testing.T) {
	d := Discount{StartDate: date(2026, 3, 1), EndDate: date(2026, 3, 10)}

	tests := []struct {
		name      string
		stayStart time.Time
		stayEnd   time.Time
		want      bool
	}{
		{"inside window", date(2026, 3, 2), date(2026, 3, 5), true},
		{"partial overlap", date(2026, 3, 8), date(2026, 3, 15), true},
		{"starts at window end", date(2026, 3, 10), date(2026, 3, 12), false},
		{"ends at window start", date(2026, 2, 20), date(2026, 3, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.OverlapsWindow(tt.stayStart, tt.stayEnd); got != tt.want {
				t.Errorf("OverlapsWindow = %v, want %v", got, tt.want)
			}
		})
	}
}
