// internal/service/booking/infrastructure/gorm_repository.go
package infrastructure

import (
	"context"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"staybook/internal/service/booking/domain"
)

// GormBookingRepository 是 domain.BookingRepository 的 GORM 实现。
type GormBookingRepository struct {
	db *gorm.DB
}

func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// AutoMigrate 建表并创建可用性查询与唯一约束依赖的索引。
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&HotelModel{},
		&UserModel{},
		&RoomModel{},
		&DiscountModel{},
		&BookingModel{},
		&BookingRoomModel{},
	)
}

// Save 在单个事务内写入预订和房间关联行。
// 可用性检查到提交之间存在时间窗口，这里在事务内对房间行加排他锁后
// 重查一次重叠，把检查-落库竞争收敛到数据库的行锁上；
// 完全相同窗口的重复插入则由 uq_booking_room_window 唯一索引兜底。
// 两种情况都以 Conflict 返回给调用方。
func (r *GormBookingRepository) Save(ctx context.Context, booking *domain.Booking) error {
	model := FromDomainBooking(booking)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		roomIDs := uniqueRoomIDs(booking)

		// 锁定涉及的房间行，串行化同房间的并发提交
		var locked []RoomModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id IN ?", roomIDs).Find(&locked).Error; err != nil {
			return err
		}
		if len(locked) != len(roomIDs) {
			return domain.NotFoundf("one or more rooms no longer exist")
		}

		// 持锁重查重叠，捕获检查之后、提交之前挤进来的预订
		for _, roomID := range roomIDs {
			var overlapping int64
			if err := tx.Model(&BookingRoomModel{}).
				Where("room_id = ? AND check_in_date < ? AND check_out_date > ?",
					roomID, booking.CheckOut, booking.CheckIn).
				Count(&overlapping).Error; err != nil {
				return err
			}
			if overlapping > 0 {
				return domain.Conflictf("room %d was booked concurrently for the selected dates", roomID)
			}
		}

		return tx.Create(model).Error
	})
	if err != nil {
		if domain.KindOf(err) != domain.KindInternal {
			return err
		}
		if isDuplicateKey(err) {
			return domain.Conflictf("booking collides with a concurrent reservation")
		}
		return domain.WrapInternal(err, "failed to save booking")
	}

	booking.ID = model.ID
	return nil
}

// FindByID 根据 ID 查找预订（含房间行）。
func (r *GormBookingRepository) FindByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var model BookingModel
	err := r.db.WithContext(ctx).Preload("Lines").First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFoundf("booking with ID %d not found", id)
		}
		return nil, domain.WrapInternal(err, "failed to load booking")
	}
	return ToDomainBooking(&model), nil
}

// FindByUserID 返回某个用户的全部预订，按预订时间倒序。
func (r *GormBookingRepository) FindByUserID(ctx context.Context, userID int64) ([]*domain.Booking, error) {
	var models []BookingModel
	err := r.db.WithContext(ctx).Preload("Lines").
		Where("user_id = ?", userID).
		Order("booking_date DESC").
		Find(&models).Error
	if err != nil {
		return nil, domain.WrapInternal(err, "failed to load bookings")
	}
	bookings := make([]*domain.Booking, 0, len(models))
	for i := range models {
		bookings = append(bookings, ToDomainBooking(&models[i]))
	}
	return bookings, nil
}

// DeleteByID 删除预订及其关联行。
func (r *GormBookingRepository) DeleteByID(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&BookingModel{}, id)
		if res.Error != nil {
			return domain.WrapInternal(res.Error, "failed to delete booking")
		}
		if res.RowsAffected == 0 {
			return domain.NotFoundf("booking with ID %d not found", id)
		}
		return tx.Where("booking_id = ?", id).Delete(&BookingRoomModel{}).Error
	})
}

// IsRoomAvailable 判断房间在 [checkIn, checkOut) 内是否可用。
// 房间不存在按不可用处理，缺失房间的 NotFound 由装配器负责。
func (r *GormBookingRepository) IsRoomAvailable(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (bool, error) {
	var roomCount int64
	if err := r.db.WithContext(ctx).Model(&RoomModel{}).
		Where("id = ?", roomID).Count(&roomCount).Error; err != nil {
		return false, domain.WrapInternal(err, "failed to check room existence")
	}
	if roomCount == 0 {
		return false, nil
	}

	// 半开区间重叠：existing.check_in < checkOut AND existing.check_out > checkIn
	var overlapping int64
	err := r.db.WithContext(ctx).Model(&BookingRoomModel{}).
		Where("room_id = ? AND check_in_date < ? AND check_out_date > ?", roomID, checkOut, checkIn).
		Count(&overlapping).Error
	if err != nil {
		return false, domain.WrapInternal(err, "failed to check availability")
	}
	return overlapping == 0, nil
}

func uniqueRoomIDs(b *domain.Booking) []int64 {
	seen := make(map[int64]struct{}, len(b.Lines))
	ids := make([]int64, 0, len(b.Lines))
	for _, line := range b.Lines {
		if _, ok := seen[line.RoomID]; ok {
			continue
		}
		seen[line.RoomID] = struct{}{}
		ids = append(ids, line.RoomID)
	}
	return ids
}

// isDuplicateKey 识别 MySQL 1062（唯一键冲突）。
func isDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
