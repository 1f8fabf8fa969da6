// internal/service/booking/domain/pricing_test.go
package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestPriceLine(t *testing.T) {
	tests := []struct {
		name           string
		nightly        string
		nights         int
		discountPct    string // 空串表示无折扣
		wantBase       string
		wantDiscounted string
	}{
		{
			name:    "no discount",
			nightly: "100", nights: 4,
			wantBase: "400", wantDiscounted: "400",
		},
		{
			name:    "twenty percent off",
			nightly: "100", nights: 4, discountPct: "20",
			wantBase: "400", wantDiscounted: "320",
		},
		{
			name:    "fractional nightly price stays exact",
			nightly: "99.99", nights: 3, discountPct: "10",
			wantBase: "299.97", wantDiscounted: "269.973",
		},
		{
			name:    "full discount",
			nightly: "150", nights: 2, discountPct: "100",
			wantBase: "300", wantDiscounted: "0",
		},
		{
			name:    "zero percent discount is a no-op",
			nightly: "80", nights: 1, discountPct: "0",
			wantBase: "80", wantDiscounted: "80",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var discount *Discount
			if tt.discountPct != "" {
				discount = &Discount{Percentage: decimal.RequireFromString(tt.discountPct)}
			}
			base, discounted := PriceLine(decimal.RequireFromString(tt.nightly), tt.nights, discount)

			if !base.Equal(decimal.RequireFromString(tt.wantBase)) {
				t.Errorf("baseTotal = %s, want %s", base, tt.wantBase)
			}
			if !discounted.Equal(decimal.RequireFromString(tt.wantDiscounted)) {
				t.Errorf("discountedTotal = %s, want %s", discounted, tt.wantDiscounted)
			}
			if discounted.GreaterThan(base) {
				t.Errorf("discountedTotal %s exceeds baseTotal %s", discounted, base)
			}
		})
	}
}

func TestPriceLineAvoidsFloatDrift(t *testing.T) {
	// 0.1 × 3 在二进制浮点下是 0.30000000000000004
	base, discounted := PriceLine(decimal.RequireFromString("0.1"), 3, nil)
	want := decimal.RequireFromString("0.3")
	if !base.Equal(want) || !discounted.Equal(want) {
		t.Errorf("got base=%s discounted=%s, want exactly 0.3", base, discounted)
	}
}
