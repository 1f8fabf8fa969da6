// internal/service/booking/domain/stay.go
package domain

import "time"

// Stay 表示一次入住的半开日期区间 [CheckIn, CheckOut)。
// 两个日期都是纯日历日（UTC 零点），退房当天允许其他客人入住。
type Stay struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// NewStay 归一化输入日期并校验区间。
// 退房日期必须严格晚于入住日期，至少住一晚。
func NewStay(checkIn, checkOut time.Time) (Stay, error) {
	s := Stay{
		CheckIn:  DateOnly(checkIn),
		CheckOut: DateOnly(checkOut),
	}
	if !s.CheckOut.After(s.CheckIn) {
		return Stay{}, Validationf("check-out date must be after check-in date")
	}
	return s, nil
}

// Nights 返回入住晚数，按日历日计算。
func (s Stay) Nights() int {
	return int(s.CheckOut.Sub(s.CheckIn).Hours() / 24)
}

// Overlaps 判断本次入住与已有预订 [otherIn, otherOut) 是否重叠。
// 半开区间语义：当天退房、当天入住的背靠背预订不算重叠。
func (s Stay) Overlaps(otherIn, otherOut time.Time) bool {
	return s.CheckIn.Before(otherOut) && otherIn.Before(s.CheckOut)
}

// DateOnly 去掉时间部分，得到 UTC 零点的日历日。
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
