// internal/service/booking/domain/discount.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Discount 是挂在某个房间上的一条百分比折扣，带有生效窗口 [StartDate, EndDate)。
type Discount struct {
	ID         int64
	RoomID     int64
	Percentage decimal.Decimal // 0–100
	StartDate  time.Time
	EndDate    time.Time

	// 可选的 CEL 资格规则，例如 "nights >= 3"。为空则无条件适用。
	Rule string
}

// OverlapsWindow 判断折扣生效窗口是否与入住窗口重叠。
func (d *Discount) OverlapsWindow(stayStart, stayEnd time.Time) bool {
	return d.StartDate.Before(stayEnd) && d.EndDate.After(stayStart)
}

// BestDiscount 在候选折扣中选出适用于该入住窗口的最优一条。
// 只有生效窗口与入住窗口重叠的折扣才参与比较；取百分比最大者，
// 百分比相同时取 ID 最小者，保证选择结果与存储返回顺序无关。
// 没有任何折扣适用时返回 nil。
func BestDiscount(candidates []Discount, stayStart, stayEnd time.Time) *Discount {
	var best *Discount
	for i := range candidates {
		d := &candidates[i]
		if !d.OverlapsWindow(stayStart, stayEnd) {
			continue
		}
		if best == nil {
			best = d
			continue
		}
		switch d.Percentage.Cmp(best.Percentage) {
		case 1:
			best = d
		case 0:
			if d.ID < best.ID {
				best = d
			}
		}
	}
	return best
}
