// internal/zookeeper/lock.go
package zookeeper

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-zookeeper/zk"
)

const (
	lockRoot = "/staybook/room_locks" // 房间锁的根节点
)

// Conn 封装 ZooKeeper 连接。
type Conn struct {
	*zk.Conn
}

// Connect 建立一个 ZooKeeper 会话并确保锁根节点存在。
func Connect(servers []string, sessionTimeout time.Duration) (*Conn, error) {
	conn, _, err := zk.Connect(servers, sessionTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to zookeeper: %w", err)
	}
	c := &Conn{Conn: conn}
	if err := c.ensurePath(lockRoot); err != nil {
		conn.Close()
		return nil, err
	}
	return c, nil
}

// ensurePath 逐级创建持久节点。
func (c *Conn) ensurePath(path string) error {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	current := ""
	for _, part := range parts {
		current += "/" + part
		_, err := c.Create(current, []byte{}, 0, zk.WorldACL(zk.PermAll))
		if err != nil && !errors.Is(err, zk.ErrNodeExists) {
			return fmt.Errorf("failed to create node %s: %w", current, err)
		}
	}
	return nil
}

// RoomLock 是某一个房间上的分布式锁。
// 预订流程在 检查可用性 -> 落库 的整个窗口内持有该锁，
// 把同一房间的并发预订请求串行化。
type RoomLock struct {
	conn     *Conn
	path     string // 锁的路径，例如 /staybook/room_locks/42
	lockNode string // 成功获取锁后，自己创建的节点路径
}

// NewRoomLock 创建一个针对单个房间的锁实例。
func NewRoomLock(conn *Conn, roomID int64) (*RoomLock, error) {
	lockPath := fmt.Sprintf("%s/%d", lockRoot, roomID)
	if err := conn.ensurePath(lockPath); err != nil {
		return nil, err
	}
	return &RoomLock{conn: conn, path: lockPath}, nil
}

// Lock 尝试获取锁，在 timeout 内获取不到则失败。
func (l *RoomLock) Lock(timeout time.Duration) error {
	// 1. 在锁路径下创建一个临时顺序节点
	nodePath, err := l.conn.CreateProtectedEphemeralSequential(l.path+"/lock-", []byte{}, zk.WorldACL(zk.PermAll))
	if err != nil {
		return fmt.Errorf("failed to create sequential node: %w", err)
	}
	l.lockNode = nodePath

	deadline := time.Now().Add(timeout)
	for {
		// 2. 获取锁路径下的所有子节点并排序
		children, _, err := l.conn.Children(l.path)
		if err != nil {
			l.release()
			return fmt.Errorf("failed to get children nodes: %w", err)
		}
		sort.Strings(children)

		// 3. 自己是最小节点则成功获取锁
		myNodeName := strings.TrimPrefix(l.lockNode, l.path+"/")
		myIndex := -1
		for i, child := range children {
			if child == myNodeName {
				myIndex = i
				break
			}
		}
		if myIndex == 0 {
			return nil
		}
		if myIndex < 0 {
			return errors.New("lock node disappeared, session may have expired")
		}

		// 4. 不是最小节点，监听前一个节点的删除事件
		prevNode := l.path + "/" + children[myIndex-1]
		exists, _, watch, err := l.conn.ExistsW(prevNode)
		if err != nil {
			l.release()
			return fmt.Errorf("failed to watch node %s: %w", prevNode, err)
		}
		if !exists {
			continue // 前一个节点已经释放，重新检查排位
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			l.release()
			return ErrLockTimeout
		}
		select {
		case <-watch:
		case <-time.After(remaining):
			l.release()
			return ErrLockTimeout
		}
	}
}

// Unlock 释放锁。
func (l *RoomLock) Unlock() error {
	if l.lockNode == "" {
		return nil
	}
	return l.release()
}

func (l *RoomLock) release() error {
	err := l.conn.Delete(l.lockNode, -1)
	l.lockNode = ""
	if err != nil && !errors.Is(err, zk.ErrNoNode) {
		return fmt.Errorf("failed to delete lock node: %w", err)
	}
	return nil
}

// ErrLockTimeout 表示在规定时间内没有抢到锁。
var ErrLockTimeout = errors.New("timed out waiting for room lock")
