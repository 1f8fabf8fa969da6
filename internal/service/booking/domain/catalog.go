// internal/service/booking/domain/catalog.go
package domain

import "github.com/shopspring/decimal"

// 目录侧的只读实体。预订核心只消费它们，不修改它们。

// User 是发起预订的账户。
type User struct {
	ID    int64
	Name  string
	Email string
}

// Hotel 只携带确认单需要的字段。
type Hotel struct {
	ID      int64
	Name    string
	Address string
}

// Room 是可被预订的房间。
type Room struct {
	ID               int64
	HotelID          int64
	Hotel            *Hotel
	Description      string
	PricePerNight    decimal.Decimal
	AdultCapacity    int
	ChildrenCapacity int
}
