package websocket

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"relief-dispatch/internal/domain/identity"
	"relief-dispatch/internal/general/jwt"
)

const (
	wsWriteTimeout = 5 * time.Second
	wsReadTimeout  = 60 * time.Second
	wsPingInterval = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Hub maintains the set of operations dashboard connections and broadcasts
// incident and assignment updates to all of them. The feed is write-only;
// inbound frames other than pongs are discarded.
type Hub struct {
	log    *logrus.Logger
	jwtMgr *jwt.Manager

	mu    sync.RWMutex
	conns map[*websocket.Conn]*connState
}

type connState struct {
	writeMu sync.Mutex
}

func NewHub(log *logrus.Logger, jwtMgr *jwt.Manager) *Hub {
	return &Hub{
		log:    log,
		jwtMgr: jwtMgr,
		conns:  make(map[*websocket.Conn]*connState),
	}
}

// Connect upgrades the request and keeps the connection registered until the
// client goes away. Only responder and admin tokens may subscribe.
func (h *Hub) Connect(w http.ResponseWriter, r *http.Request) {
	raw, err := jwt.FromAuthorization(r)
	if err != nil {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}
	claims, err := h.jwtMgr.ParseAndValidate(raw)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}
	if err := jwt.RoleAllowed(claims, identity.RoleResponder, identity.RoleAdmin); err != nil {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Error("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	state := &connState{}
	h.mu.Lock()
	h.conns[conn] = state
	h.mu.Unlock()
	defer func() {
		h.mu.Lock()
		delete(h.conns, conn)
		h.mu.Unlock()
	}()

	h.log.WithFields(logrus.Fields{
		"actor_id": claims.Subject,
		"role":     claims.Role.String(),
	}).Info("Dashboard client connected")

	conn.SetReadLimit(1 << 20)
	_ = conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	})

	stop := make(chan struct{})
	defer close(stop)
	go h.pingLoop(conn, state, stop)

	// read loop exists only to notice the close and answer pings
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.WithError(err).WithField("actor_id", claims.Subject).Warn("Dashboard connection closed unexpectedly")
			}
			return
		}
	}
}

func (h *Hub) pingLoop(conn *websocket.Conn, state *connState, stop <-chan struct{}) {
	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			state.writeMu.Lock()
			err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteTimeout))
			state.writeMu.Unlock()
			if err != nil {
				_ = conn.Close()
				return
			}
		}
	}
}

// Broadcast sends the message to every connected client. A failed write drops
// that client; the read loop notices the closed socket and unregisters it.
func (h *Hub) Broadcast(message []byte) {
	h.mu.RLock()
	targets := make(map[*websocket.Conn]*connState, len(h.conns))
	for conn, state := range h.conns {
		targets[conn] = state
	}
	h.mu.RUnlock()

	for conn, state := range targets {
		state.writeMu.Lock()
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		err := conn.WriteMessage(websocket.TextMessage, message)
		state.writeMu.Unlock()
		if err != nil {
			_ = conn.Close()
		}
	}
}
