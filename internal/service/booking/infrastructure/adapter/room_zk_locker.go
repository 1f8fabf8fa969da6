// internal/service/booking/infrastructure/adapter/room_zk_locker.go
package adapter

import (
	"context"
	"fmt"
	"sort"
	"time"

	"staybook/internal/pkg/logger"
	"staybook/internal/zookeeper"
)

const defaultLockTimeout = 5 * time.Second

// RoomZkLocker 是 port.RoomLocker 的 ZooKeeper 实现。
// 同一房间的并发预订请求会在这里排队，覆盖 检查可用性 -> 落库 的窗口。
type RoomZkLocker struct {
	conn    *zookeeper.Conn
	timeout time.Duration
}

func NewRoomZkLocker(conn *zookeeper.Conn) *RoomZkLocker {
	return &RoomZkLocker{conn: conn, timeout: defaultLockTimeout}
}

// LockRooms 按升序对去重后的房间 ID 逐个加锁，避免两个请求以相反顺序
// 持锁互等。任何一把锁失败时释放已持有的锁。
func (l *RoomZkLocker) LockRooms(ctx context.Context, roomIDs []int64) (func(), error) {
	seen := make(map[int64]struct{}, len(roomIDs))
	unique := make([]int64, 0, len(roomIDs))
	for _, id := range roomIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	sort.Slice(unique, func(i, j int) bool { return unique[i] < unique[j] })

	held := make([]*zookeeper.RoomLock, 0, len(unique))
	release := func() {
		// 按加锁的相反顺序释放
		for i := len(held) - 1; i >= 0; i-- {
			if err := held[i].Unlock(); err != nil {
				logger.Ctx(ctx).Warn().Err(err).Msg("failed to release room lock")
			}
		}
	}

	for _, roomID := range unique {
		if err := ctx.Err(); err != nil {
			release()
			return nil, err
		}
		lock, err := zookeeper.NewRoomLock(l.conn, roomID)
		if err != nil {
			release()
			return nil, fmt.Errorf("failed to prepare lock for room %d: %w", roomID, err)
		}
		if err := lock.Lock(l.timeout); err != nil {
			release()
			return nil, fmt.Errorf("failed to lock room %d: %w", roomID, err)
		}
		held = append(held, lock)
	}

	return release, nil
}
