// internal/service/booking/domain/port/ports.go
package port

import (
	"context"
	"time"

	"staybook/internal/service/booking/domain"
)

// 预订核心依赖的出站端口。目录、用户、折扣数据由外部子系统拥有，
// 这里只消费读接口。

// UserDirectory 提供账户查询。
type UserDirectory interface {
	// GetUserByID 返回用户；不存在时返回 (nil, nil)。
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
}

// RoomCatalog 提供房间查询。
type RoomCatalog interface {
	// GetRoomByID 返回房间（含所属酒店）；不存在时返回 (nil, nil)。
	GetRoomByID(ctx context.Context, id int64) (*domain.Room, error)
}

// DiscountCatalog 提供某个房间在给定窗口内的候选折扣。
// 最优折扣的选择逻辑在领域层完成，目录只负责取数。
type DiscountCatalog interface {
	GetDiscountsForRoom(ctx context.Context, roomID int64, windowStart, windowEnd time.Time) ([]domain.Discount, error)
}

// ConfirmationProducer 在预订持久化成功后发布 BookingCreated 事件。
// 发布失败不回滚预订。
type ConfirmationProducer interface {
	PublishBookingCreated(ctx context.Context, event *domain.BookingCreated) error
}

// RoomLocker 在 检查可用性 -> 落库 的窗口内对房间加分布式锁，
// 串行化同一房间的并发预订。
type RoomLocker interface {
	// LockRooms 按排序后的房间 ID 依次加锁（避免交叉死锁），
	// 返回释放函数。重复的房间 ID 只加一次锁。
	LockRooms(ctx context.Context, roomIDs []int64) (unlock func(), err error)
}

// RuleEngine 评估折扣上的资格规则。
type RuleEngine interface {
	Evaluate(rule string, fact Fact) (bool, error)
}

// Fact 是规则评估时可见的预订上下文。
type Fact struct {
	Nights      int    `json:"nights"`
	PaymentType string `json:"payment_type"`
	RoomCount   int    `json:"room_count"`
}
