// internal/service/booking/infrastructure/gorm_catalog.go
package infrastructure

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"staybook/internal/service/booking/domain"
)

// 目录侧端口的 GORM 实现。这些表由目录子系统拥有，这里只做只读查询。

// GormUserDirectory 实现 port.UserDirectory。
type GormUserDirectory struct {
	db *gorm.DB
}

func NewGormUserDirectory(db *gorm.DB) *GormUserDirectory {
	return &GormUserDirectory{db: db}
}

func (d *GormUserDirectory) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	var model UserModel
	err := d.db.WithContext(ctx).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return ToDomainUser(&model), nil
}

// GormRoomCatalog 实现 port.RoomCatalog。
type GormRoomCatalog struct {
	db *gorm.DB
}

func NewGormRoomCatalog(db *gorm.DB) *GormRoomCatalog {
	return &GormRoomCatalog{db: db}
}

func (c *GormRoomCatalog) GetRoomByID(ctx context.Context, id int64) (*domain.Room, error) {
	var model RoomModel
	err := c.db.WithContext(ctx).Preload("Hotel").First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return ToDomainRoom(&model), nil
}

// GormDiscountCatalog 实现 port.DiscountCatalog。
// 窗口重叠条件下推到 SQL，最优折扣的选择仍在领域层完成。
type GormDiscountCatalog struct {
	db *gorm.DB
}

func NewGormDiscountCatalog(db *gorm.DB) *GormDiscountCatalog {
	return &GormDiscountCatalog{db: db}
}

func (c *GormDiscountCatalog) GetDiscountsForRoom(ctx context.Context, roomID int64, windowStart, windowEnd time.Time) ([]domain.Discount, error) {
	var models []DiscountModel
	err := c.db.WithContext(ctx).
		Where("room_id = ? AND start_date < ? AND end_date > ?", roomID, windowEnd, windowStart).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	discounts := make([]domain.Discount, 0, len(models))
	for i := range models {
		discounts = append(discounts, ToDomainDiscount(&models[i]))
	}
	return discounts, nil
}
