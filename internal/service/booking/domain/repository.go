// internal/service/booking/domain/repository.go
package domain

import (
	"context"
	"time"
)

// BookingRepository 定义了预订聚合的持久化接口。
// 它位于领域层，由基础设施层实现。
type BookingRepository interface {
	// Save 在一个事务内持久化预订及其房间关联行，并回填分配的 ID。
	// 实现必须在同一事务内重查房间可用性（配合行锁或唯一约束），
	// 把提交时才暴露的重复预订竞争以 Conflict 错误返回。
	// 要么全部落库，要么什么都不写。
	Save(ctx context.Context, booking *Booking) error

	// FindByID 根据 ID 查找预订（含房间行）。不存在时返回 NotFound。
	FindByID(ctx context.Context, id int64) (*Booking, error)

	// FindByUserID 返回某个用户的全部预订。
	FindByUserID(ctx context.Context, userID int64) ([]*Booking, error)

	// DeleteByID 删除一条预订。不存在时返回 NotFound。
	DeleteByID(ctx context.Context, id int64) error

	// IsRoomAvailable 判断房间在 [checkIn, checkOut) 内是否没有重叠预订。
	// 房间不存在时返回 false 而不是错误：不存在的房间永远不可预订，
	// 缺失房间的 NotFound 由装配器单独处理。
	IsRoomAvailable(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (bool, error)
}
