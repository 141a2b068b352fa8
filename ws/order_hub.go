package ws

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"takeout/notifier"
	"takeout/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var ErrHubClosed = errors.New("order hub closed")

// ต่อ 1 client ถ้าเขียนไม่ทันก็ตัดทิ้ง ไม่ให้ loop ค้าง
const defaultWriteWait = 2 * time.Second

// OrderHub กระจาย event ของ order ไปยังหน้าจอพนักงานที่เปิด websocket ค้างไว้
type OrderHub struct {
	clients    map[*websocket.Conn]uint // conn -> staff id
	broadcast  chan notifier.Event
	register   chan Subscription
	unregister chan *websocket.Conn
	done       chan struct{}
	mu         sync.Mutex
	writeWait  time.Duration
	log        *slog.Logger
}

// Subscription = 1 connection ของพนักงาน 1 คน
type Subscription struct {
	Conn    *websocket.Conn
	StaffID uint
}

func NewOrderHub(log *slog.Logger) *OrderHub {
	if log == nil {
		log = logger.Discard()
	}
	return &OrderHub{
		clients:    make(map[*websocket.Conn]uint),
		broadcast:  make(chan notifier.Event),
		register:   make(chan Subscription),
		unregister: make(chan *websocket.Conn),
		done:       make(chan struct{}),
		writeWait:  defaultWriteWait,
		log:        log,
	}
}

// คอยฟัง register/unregister/broadcast จนกว่า ctx จะถูกยกเลิก
func (h *OrderHub) Run(ctx context.Context) {
	defer func() {
		close(h.done)
		h.mu.Lock()
		for conn := range h.clients {
			conn.Close()
			delete(h.clients, conn)
		}
		h.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case sub := <-h.register:
			h.mu.Lock()
			h.clients[sub.Conn] = sub.StaffID
			h.mu.Unlock()
			h.log.Debug("ws_staff_connected", "staff_id", sub.StaffID)

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			h.mu.Unlock()

		// event ใหม่ → ส่งให้ทุกคน คนที่เขียนไม่ได้ก็ตัดทิ้ง
		case ev := <-h.broadcast:
			h.mu.Lock()
			for conn, staffID := range h.clients {
				_ = conn.SetWriteDeadline(time.Now().Add(h.writeWait))
				if err := conn.WriteJSON(ev); err != nil {
					h.log.Warn("ws_write_failed", "staff_id", staffID, "error", err)
					conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Notify implements notifier.Notifier.
func (h *OrderHub) Notify(ctx context.Context, ev notifier.Event) error {
	select {
	case h.broadcast <- ev:
		return nil
	case <-h.done:
		return ErrHubClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *OrderHub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS route: /ws/orders (ต้องผ่าน WSAuthMiddleware ก่อน)
func (h *OrderHub) HandleWebSocket(c *gin.Context) {
	staffID := c.GetUint("userId")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("ws_upgrade_failed", "error", err)
		return
	}

	select {
	case h.register <- Subscription{Conn: conn, StaffID: staffID}:
	case <-h.done:
		conn.Close()
		return
	}

	go h.listen(conn)
}

// ฝั่ง client ไม่ได้ส่งอะไรมา อ่านไว้เพื่อรู้ว่า connection ปิดเมื่อไร
func (h *OrderHub) listen(conn *websocket.Conn) {
	defer func() {
		select {
		case h.unregister <- conn:
		case <-h.done:
		}
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
