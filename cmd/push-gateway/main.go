// cmd/push-gateway/main.go
package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"staybook/internal/pkg/logger"
	"staybook/internal/pkg/redis"
)

// 确认处理状态的 Redis 发布频道，与通知服务保持一致
const statusChannel = "confirmation-status"

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
)

var (
	redisAddr  = getEnv("REDIS_ADDR", "localhost:6379")
	listenAddr = getEnv("LISTEN_ADDR", ":8088")
	nodeID     = "push-gateway-" + uuid.New().String()[:8]
	upgrader   = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool { // 简化处理，允许所有跨域
			return true
		},
	}
)

// Hub 维护所有活跃的连接，并按用户 ID 投递消息
type Hub struct {
	clients    map[int64]*Client // 使用UserID作为Key
	register   chan *Client
	unregister chan *Client
	lock       sync.RWMutex
}

func newHub() *Hub {
	return &Hub{
		clients:    make(map[int64]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) run() {
	for {
		select {
		case client := <-h.register:
			h.lock.Lock()
			// 同一用户重复连接时，旧连接让位
			if old, ok := h.clients[client.userID]; ok {
				close(old.send)
			}
			h.clients[client.userID] = client
			h.lock.Unlock()
			log.Printf("Client %d registered on node %s", client.userID, nodeID)
		case client := <-h.unregister:
			h.lock.Lock()
			if current, ok := h.clients[client.userID]; ok && current == client {
				delete(h.clients, client.userID)
				close(client.send)
			}
			h.lock.Unlock()
			log.Printf("Client %d unregistered.", client.userID)
		}
	}
}

// deliver 把消息推给指定用户。用户不在本节点时静默丢弃。
func (h *Hub) deliver(userID int64, message []byte) {
	h.lock.RLock()
	client, ok := h.clients[userID]
	h.lock.RUnlock()
	if !ok {
		return
	}
	select {
	case client.send <- message:
	default:
		// 发送缓冲已满，认为连接不健康
		h.unregister <- client
	}
}

// Client 是一个WebSocket连接的代表
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	userID int64
}

// writePump 把 send channel 中的消息写入 websocket，并维持心跳。
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump 消费客户端消息（只处理心跳），连接断开时触发注销。
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func serveWs(hub *Hub, w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("userId"), 10, 64)
	if err != nil || userID <= 0 {
		http.Error(w, "userId must be a positive integer", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}

	client := &Client{hub: hub, conn: conn, send: make(chan []byte, 256), userID: userID}
	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}

// statusEnvelope 只解析路由所需的字段，消息原样转发。
type statusEnvelope struct {
	UserID int64 `json:"userId"`
}

// subscribeStatuses 订阅确认状态频道，把每条状态路由给对应的在线用户。
func subscribeStatuses(ctx context.Context, client *redis.Client, hub *Hub) {
	pubsub := client.GetClient().Subscribe(ctx, statusChannel)
	defer pubsub.Close()

	for {
		msg, err := pubsub.ReceiveMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Ctx(ctx).Error().Err(err).Msg("pubsub receive failed, retrying")
			time.Sleep(1 * time.Second)
			continue
		}

		var envelope statusEnvelope
		if err := json.Unmarshal([]byte(msg.Payload), &envelope); err != nil {
			logger.Ctx(ctx).Warn().Err(err).Msg("unparseable status message, dropping")
			continue
		}
		hub.deliver(envelope.UserID, []byte(msg.Payload))
	}
}

func main() {
	logger.Init("push-gateway")

	redisClient, err := redis.NewClient(context.Background(), redisAddr)
	if err != nil {
		log.Fatalf("failed to initialize redis client: %v", err)
	}
	defer redisClient.Close()

	hub := newHub()
	go hub.run()
	go subscribeStatuses(context.Background(), redisClient, hub)

	http.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		serveWs(hub, w, r)
	})

	log.Printf("Push Gateway (%s) started on %s", nodeID, listenAddr)
	if err := http.ListenAndServe(listenAddr, nil); err != nil {
		log.Fatal("ListenAndServe: ", err)
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
