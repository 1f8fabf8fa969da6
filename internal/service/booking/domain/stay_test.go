// internal/service/booking/domain/stay_test.go
package domain

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewStay(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		wantErr  bool
		nights   int
	}{
		{
			name:     "one night",
			checkIn:  date(2026, 3, 10),
			checkOut: date(2026, 3, 11),
			nights:   1,
		},
		{
			name:     "four nights",
			checkIn:  date(2026, 3, 10),
			checkOut: date(2026, 3, 14),
			nights:   4,
		},
		{
			name:     "same day rejected",
			checkIn:  date(2026, 3, 10),
			checkOut: date(2026, 3, 10),
			wantErr:  true,
		},
		{
			name:     "reversed dates rejected",
			checkIn:  date(2026, 3, 14),
			checkOut: date(2026, 3, 10),
			wantErr:  true,
		},
		{
			name: "time of day is ignored",
			// 入住 23:50、退房 00:10 仍然是一晚
			checkIn:  time.Date(2026, 3, 10, 23, 50, 0, 0, time.UTC),
			checkOut: time.Date(2026, 3, 11, 0, 10, 0, 0, time.UTC),
			nights:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stay, err := NewStay(tt.checkIn, tt.checkOut)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error, got nil")
				}
				if !IsValidation(err) {
					t.Errorf("expected a validation error, got kind %v", KindOf(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := stay.Nights(); got != tt.nights {
				t.Errorf("Nights() = %d, want %d", got, tt.nights)
			}
		})
	}
}

func TestStayOverlaps(t *testing.T) {
	stay, err := NewStay(date(2026, 3, 10), date(2026, 3, 14))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		otherIn  time.Time
		otherOut time.Time
		want     bool
	}{
		{"identical window", date(2026, 3, 10), date(2026, 3, 14), true},
		{"contained inside", date(2026, 3, 11), date(2026, 3, 12), true},
		{"overlaps start", date(2026, 3, 8), date(2026, 3, 11), true},
		{"overlaps end", date(2026, 3, 13), date(2026, 3, 16), true},
		{"surrounds", date(2026, 3, 8), date(2026, 3, 16), true},
		// 半开区间：退房日等于入住日的背靠背预订不重叠
		{"back to back before", date(2026, 3, 8), date(2026, 3, 10), false},
		{"back to back after", date(2026, 3, 14), date(2026, 3, 16), false},
		{"disjoint before", date(2026, 3, 1), date(2026, 3, 5), false},
		{"disjoint after", date(2026, 3, 20), date(2026, 3, 22), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stay.Overlaps(tt.otherIn, tt.otherOut); got != tt.want {
				t.Errorf("Overlaps(%s, %s) = %v, want %v",
					tt.otherIn.Format("2006-01-02"), tt.otherOut.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}
