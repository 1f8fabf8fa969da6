// internal/service/booking/domain/pricing.go
package domain

import "github.com/shopspring/decimal"

var oneHundred = decimal.NewFromInt(100)

// PriceLine 计算一个房间在本次预订中的价格。
// baseTotal = 每晚价格 × 晚数；
// discountedTotal = baseTotal × (1 - 百分比/100)，无折扣时等于 baseTotal。
// 全程使用十进制定点数运算，避免二进制浮点的舍入漂移。
func PriceLine(nightlyPrice decimal.Decimal, nights int, discount *Discount) (baseTotal, discountedTotal decimal.Decimal) {
	baseTotal = nightlyPrice.Mul(decimal.NewFromInt(int64(nights)))
	if discount == nil {
		return baseTotal, baseTotal
	}
	factor := decimal.NewFromInt(1).Sub(discount.Percentage.Div(oneHundred))
	discountedTotal = baseTotal.Mul(factor)
	return baseTotal, discountedTotal
}
