package controllers

import (
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/franzxzx/roadnet/pkg/concurrent"
	da "github.com/franzxzx/roadnet/pkg/datastructure"
	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
)

// User is one websocket subscriber receiving status-change pushes.
type User struct {
	io   sync.Mutex
	conn io.ReadWriteCloser

	id  uint
	hub *Hub
}

// ConsumeFrame reads and discards one inbound frame. subscribers do not send
// application data; this keeps control frames (ping, close) serviced.
func (u *User) ConsumeFrame() error {
	u.io.Lock()
	defer u.io.Unlock()

	h, r, err := wsutil.NextReader(u.conn, ws.StateServerSide)
	if err != nil {
		return err
	}
	if h.OpCode.IsControl() {
		return wsutil.ControlFrameHandler(u.conn, ws.StateServerSide)(h, r)
	}

	_, err = io.Copy(io.Discard, r)
	return err
}

func (u *User) write(x interface{}) error {
	w := wsutil.NewWriter(u.conn, ws.StateServerSide, ws.OpText)
	encoder := json.NewEncoder(w)

	u.io.Lock()
	defer u.io.Unlock()

	if err := encoder.Encode(x); err != nil {
		return err
	}

	return w.Flush()
}

// Hub tracks websocket subscribers and fans applied status changes out to
// them.
type Hub struct {
	mu  sync.RWMutex
	seq uint
	ns  map[uint]*User

	pool *concurrent.Pool
}

func NewHub(pool *concurrent.Pool) *Hub {
	return &Hub{
		pool: pool,
		ns:   make(map[uint]*User),
	}
}

func (h *Hub) Register(conn io.ReadWriteCloser) *User {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.seq++
	user := &User{
		conn: conn,
		id:   h.seq,
		hub:  h,
	}
	h.ns[user.id] = user
	return user
}

func (h *Hub) Remove(user *User) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.ns[user.id]; !ok {
		return
	}
	delete(h.ns, user.id)
	_ = user.conn.Close()
}

func (h *Hub) RemoveAllUser() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, user := range h.ns {
		_ = user.conn.Close()
		delete(h.ns, id)
	}
}

func (h *Hub) NumUsers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.ns)
}

// Broadcast pushes one applied status change to every subscriber. writes run
// on the goroutine pool; a failed write drops the subscriber.
func (h *Hub) Broadcast(update da.StatusUpdate) {
	push := statusPush{
		SegmentID: update.SegmentID,
		Status:    update.Status.String(),
		UpdatedAt: update.UpdatedAt.Format(time.RFC3339),
		Source:    update.Source,
	}

	h.mu.RLock()
	users := make([]*User, 0, len(h.ns))
	for _, u := range h.ns {
		users = append(users, u)
	}
	h.mu.RUnlock()

	for _, u := range users {
		u := u
		h.pool.Schedule(func() {
			if err := u.write(envelope{"data": push}); err != nil {
				h.Remove(u)
			}
		})
	}
}
