package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"food-order/internal/common/httpx"
	"food-order/internal/common/logger"
	identity "food-order/internal/microservices/identity/models"
	"food-order/internal/microservices/messaging/service"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// StreamHandler pushes conversation events to the signed-in user over a websocket.
type StreamHandler struct {
	service service.MessagingServiceInterface
	lg      *logger.Logger

	closing   chan struct{}
	closeOnce sync.Once
}

func NewStreamHandler(s service.MessagingServiceInterface) *StreamHandler {
	return &StreamHandler{service: s, lg: logger.New("messaging"), closing: make(chan struct{})}
}

// Close ends every open stream. Hijacked connections are not tracked by
// http.Server.Shutdown, so the server calls this on shutdown.
func (sh *StreamHandler) Close() {
	sh.closeOnce.Do(func() { close(sh.closing) })
}

func (sh *StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	sess, err := identity.RequireSession(r.Context())
	if err != nil {
		httpx.WriteError(w, r, sh.lg, err)
		return
	}
	lg := logger.FromContext(r.Context(), sh.lg)

	// subscribe first so nothing sent right after the handshake is missed
	events, unsubscribe := sh.service.Subscribe(sess.ID, r.URL.Query().Get("with"))
	defer unsubscribe()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already answered the client
		lg.Warn("stream_upgrade_failed", map[string]any{"error": err.Error()})
		return
	}
	defer conn.Close()

	lg.Debug("stream_opened", map[string]any{"user_id": sess.ID})

	// the reader only handles control frames and notices the client leaving
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-gone:
			lg.Debug("stream_closed", map[string]any{"user_id": sess.ID})
			return
		case <-sh.closing:
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(writeWait))
			return
		}
	}
}
