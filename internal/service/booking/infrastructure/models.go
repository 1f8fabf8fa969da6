// internal/service/booking/infrastructure/models.go
package infrastructure

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingModel 是 Booking 聚合在数据库中的表示。
type BookingModel struct {
	ID                  int64 `gorm:"primaryKey;autoIncrement"`
	UserID              int64 `gorm:"index"`
	CheckInDate         time.Time
	CheckOutDate        time.Time
	BookingDate         time.Time
	Remarks             string
	PaymentType         string
	TotalBeforeDiscount decimal.Decimal `gorm:"type:decimal(12,2)"`
	TotalAfterDiscount  decimal.Decimal `gorm:"type:decimal(12,2)"`

	Lines []BookingRoomModel `gorm:"foreignKey:BookingID"`
}

func (BookingModel) TableName() string {
	return "bookings"
}

// BookingRoomModel 是预订-房间关联行，携带结算后的价格。
// 入住窗口在这里冗余一份：可用性查询直接扫这张表，
// 唯一索引让完全相同窗口的并发重复预订在提交时直接失败。
// LineNo 是该房间在本预订内的出现序号：同一预订内重复请求同一房间
// 是允许的（各自独立计价），不能被这个索引误伤。
type BookingRoomModel struct {
	ID              int64     `gorm:"primaryKey;autoIncrement"`
	BookingID       int64     `gorm:"index"`
	RoomID          int64     `gorm:"uniqueIndex:uq_booking_room_window,priority:1"`
	CheckInDate     time.Time `gorm:"uniqueIndex:uq_booking_room_window,priority:2"`
	CheckOutDate    time.Time `gorm:"uniqueIndex:uq_booking_room_window,priority:3"`
	LineNo          int       `gorm:"uniqueIndex:uq_booking_room_window,priority:4"`
	Description     string
	HotelID         int64
	Nights          int
	BaseTotal       decimal.Decimal `gorm:"type:decimal(12,2)"`
	DiscountID      *int64
	DiscountedTotal decimal.Decimal `gorm:"type:decimal(12,2)"`
}

func (BookingRoomModel) TableName() string {
	return "booking_rooms"
}

// RoomModel 属于目录子系统，预订核心只读。
type RoomModel struct {
	ID               int64 `gorm:"primaryKey"`
	HotelID          int64 `gorm:"index"`
	Description      string
	PricePerNight    decimal.Decimal `gorm:"type:decimal(12,2)"`
	AdultCapacity    int
	ChildrenCapacity int

	Hotel HotelModel `gorm:"foreignKey:HotelID"`
}

func (RoomModel) TableName() string {
	return "rooms"
}

type HotelModel struct {
	ID      int64 `gorm:"primaryKey"`
	Name    string
	Address string
}

func (HotelModel) TableName() string {
	return "hotels"
}

type UserModel struct {
	ID    int64 `gorm:"primaryKey"`
	Name  string
	Email string
}

func (UserModel) TableName() string {
	return "users"
}

type DiscountModel struct {
	ID         int64           `gorm:"primaryKey"`
	RoomID     int64           `gorm:"index"`
	Percentage decimal.Decimal `gorm:"type:decimal(5,2)"`
	StartDate  time.Time
	EndDate    time.Time
	Rule       string
	CreatedAt  time.Time
}

func (DiscountModel) TableName() string {
	return "discounts"
}
