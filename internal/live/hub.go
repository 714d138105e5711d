package live

import (
	"context"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"avaro.dev/internal/catalog"
	"avaro.dev/internal/logger"
	"avaro.dev/internal/render"
)

const maxSessions = 1000

// newUpgrader creates a WebSocket upgrader that respects the configured
// allowed origins. An empty list accepts any origin.
func newUpgrader(allowedOrigins []string) websocket.Upgrader {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}

	return websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if len(allowed) == 0 {
				return true
			}
			_, ok := allowed[r.Header.Get("Origin")]
			return ok
		},
	}
}

// Hub accepts websocket connections and tracks the sessions running on them.
type Hub struct {
	catalog  *catalog.Catalog
	renderer *render.Renderer
	upgrader websocket.Upgrader
	limit    int

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.RWMutex
	sessions map[string]*Session
	wg       sync.WaitGroup
}

// NewHub creates a hub serving pages built from c.
func NewHub(c *catalog.Catalog, r *render.Renderer, origins []string) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		catalog:  c,
		renderer: r,
		upgrader: newUpgrader(origins),
		limit:    maxSessions,
		ctx:      ctx,
		cancel:   cancel,
		sessions: make(map[string]*Session),
	}
}

// Count returns the number of live sessions.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

func (h *Hub) add(s *Session) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.sessions) >= h.limit || h.ctx.Err() != nil {
		return false
	}
	h.sessions[s.ID()] = s
	h.wg.Add(1)
	return true
}

func (h *Hub) remove(s *Session) {
	h.mu.Lock()
	delete(h.sessions, s.ID())
	h.mu.Unlock()
	h.wg.Done()
}

// ServeWS upgrades the request and runs a session until the socket closes.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	log := logger.Get("live")

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	s := NewSession(uuid.NewString(), h.catalog, h.renderer)
	if !h.add(s) {
		log.Warn().Int("sessions", h.Count()).Msg("Live session refused")
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "session unavailable"))
		conn.Close()
		return
	}
	defer h.remove(s)

	log.Info().Str("session", s.ID()).Str("remote", r.RemoteAddr).Msg("Live session started")
	s.Serve(h.ctx, conn)
	log.Info().Str("session", s.ID()).Msg("Live session ended")
}

// Shutdown ends every session and waits for them to finish tearing down,
// or for ctx to expire.
func (h *Hub) Shutdown(ctx context.Context) error {
	h.mu.Lock()
	h.cancel()
	h.mu.Unlock()

	done := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
