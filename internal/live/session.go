package live

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"avaro.dev/internal/catalog"
	"avaro.dev/internal/logger"
	"avaro.dev/internal/render"
	"avaro.dev/internal/ui"
)

const (
	maxMessageSize = 1024
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	writeWait      = 10 * time.Second
	sendBuffer     = 32
)

var (
	ErrUnknownEvent = errors.New("unknown event type")
	ErrUnknownClose = errors.New("unknown close source")
)

type keyBinding struct {
	fn func()
}

// Session is one browser tab's page. It implements ui.Host by queueing
// patches, so everything the tree asks of the browser goes out with the
// response to the event that caused it.
//
// A Session is not safe for concurrent use; Serve drives it from a single
// goroutine.
type Session struct {
	id       string
	root     *ui.Root
	renderer *render.Renderer
	log      zerolog.Logger

	queue    []Patch
	locks    int
	bindings map[string][]*keyBinding
}

// NewSession builds an Idle page for one connection.
func NewSession(id string, c *catalog.Catalog, r *render.Renderer) *Session {
	s := &Session{
		id:       id,
		renderer: r,
		log:      logger.Get("live").With().Str("session", id).Logger(),
		bindings: make(map[string][]*keyBinding),
	}
	s.root = ui.NewRoot(c, s)
	return s
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Root returns the session's component tree.
func (s *Session) Root() *ui.Root { return s.root }

// ScrollLocked reports whether any scroll lock is held.
func (s *Session) ScrollLocked() bool { return s.locks > 0 }

// Bound reports whether key has at least one handler.
func (s *Session) Bound(key string) bool { return len(s.bindings[key]) > 0 }

// ScrollToTop implements ui.Host.
func (s *Session) ScrollToTop() {
	s.emit(Patch{Op: OpScroll, Top: true})
}

// LockScroll implements ui.Host. Locks are counted; the page scrolls again
// once every lock has been released.
func (s *Session) LockScroll() func() {
	s.locks++
	if s.locks == 1 {
		s.emit(Patch{Op: OpScroll, Enabled: boolPtr(false)})
	}
	var once sync.Once
	return func() {
		once.Do(func() {
			s.locks--
			if s.locks == 0 {
				s.emit(Patch{Op: OpScroll, Enabled: boolPtr(true)})
			}
		})
	}
}

// BindKey implements ui.Host. The browser is told to forward key only while
// something is bound to it.
func (s *Session) BindKey(key string, fn func()) func() {
	b := &keyBinding{fn: fn}
	if len(s.bindings[key]) == 0 {
		s.emit(Patch{Op: OpBindKey, Key: key})
	}
	s.bindings[key] = append(s.bindings[key], b)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.bindings[key] = lo.Without(s.bindings[key], b)
			if len(s.bindings[key]) == 0 {
				delete(s.bindings, key)
				s.emit(Patch{Op: OpUnbindKey, Key: key})
			}
		})
	}
}

func (s *Session) press(key string) {
	for _, b := range append([]*keyBinding(nil), s.bindings[key]...) {
		// an earlier handler may have unbound this one
		if lo.Contains(s.bindings[key], b) {
			b.fn()
		}
	}
}

func (s *Session) emit(p Patch) {
	s.queue = append(s.queue, p)
}

// Handle applies one event and returns the patches it produced, in order.
// Bad input becomes an error patch; the session keeps going.
func (s *Session) Handle(ev Event) []Patch {
	s.queue = nil
	before := s.root.State()

	err := s.dispatch(ev)
	if after := s.root.State(); after != before {
		s.transition(after)
	}
	if err != nil {
		s.log.Debug().Err(err).Str("type", ev.Type).Msg("Rejected event")
		s.emit(Patch{Op: OpError, Message: err.Error()})
	}

	out := s.queue
	s.queue = nil
	return out
}

func (s *Session) dispatch(ev Event) error {
	switch ev.Type {
	case EventGlyphEnter, EventGlyphLeave:
		t, err := s.root.Title(ev.Title)
		if err != nil {
			return err
		}
		var changed bool
		if ev.Type == EventGlyphEnter {
			changed = t.Engage(ev.Index)
		} else {
			changed = t.Release(ev.Index)
		}
		if changed {
			style := t.Style(ev.Index)
			s.emit(Patch{Op: OpGlyph, Title: intPtr(ev.Title), Index: intPtr(ev.Index), Style: &style})
		}
		return nil

	case EventCardEnter, EventCardLeave:
		c, err := s.root.Card(ev.Project)
		if err != nil {
			return err
		}
		var changed bool
		if ev.Type == EventCardEnter {
			changed = c.PointerEnter()
		} else {
			changed = c.PointerLeave()
		}
		if changed {
			s.emit(Patch{Op: OpCard, Project: ev.Project, Color: c.CTAColor()})
		}
		return nil

	case EventCardActivate:
		return s.root.ActivateCard(ev.Project)

	case EventClose:
		switch ev.Source {
		case "", "header":
			return s.root.CloseFrom(false)
		case "footer":
			return s.root.CloseFrom(true)
		default:
			return fmt.Errorf("%w: %q", ErrUnknownClose, ev.Source)
		}

	case EventCloseEnter, EventCloseLeave:
		ov := s.root.Overlay()
		if ov == nil {
			return ui.ErrNoOverlay
		}
		var changed bool
		if ev.Type == EventCloseEnter {
			changed = ov.FooterEnter()
		} else {
			changed = ov.FooterLeave()
		}
		if changed {
			s.emit(Patch{Op: OpCloseStyle, Color: ov.FooterColor()})
		}
		return nil

	case EventKey:
		// A key that is no longer bound can still arrive from the browser
		// just after an unbind; it is ignored.
		s.press(ev.Key)
		return nil

	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Type)
	}
}

// transition puts the mount or unmount patch ahead of the scroll and key
// patches the overlay produced while mounting or unmounting.
func (s *Session) transition(to ui.State) {
	p := Patch{Op: OpUnmountOverlay}
	if to == ui.Viewing {
		ov := s.root.Overlay()
		html, err := s.renderer.OverlayHTML(ov.View())
		if err != nil {
			s.log.Error().Err(err).Str("project", ov.Project().ID).Msg("Failed to render overlay")
			_ = s.root.Close()
			s.emit(Patch{Op: OpError, Message: "failed to render project"})
			return
		}
		p = Patch{Op: OpMountOverlay, Project: ov.Project().ID, HTML: html}
	}
	s.queue = append([]Patch{p}, s.queue...)
}

// Serve runs the session over a websocket until the context is cancelled
// or the connection fails. The component tree is torn down on every exit
// path.
func (s *Session) Serve(ctx context.Context, conn *websocket.Conn) {
	send := make(chan []Patch, sendBuffer)
	done := make(chan struct{})
	go s.writePump(conn, send, done)

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer func() {
		stop()
		s.root.Teardown()
		s.queue = nil
		close(send)
		<-done
		conn.Close()
	}()

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil && websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warn().Err(err).Msg("Live session read error")
			}
			return
		}

		var ev Event
		if err := json.Unmarshal(message, &ev); err != nil {
			s.log.Warn().Err(err).Msg("Invalid live event")
			continue
		}

		patches := s.Handle(ev)
		if len(patches) == 0 {
			continue
		}
		select {
		case send <- patches:
		case <-done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (s *Session) writePump(conn *websocket.Conn, send <-chan []Patch, done chan<- struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		close(done)
	}()

	for {
		select {
		case patches, ok := <-send:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			for _, p := range patches {
				if err := conn.WriteJSON(p); err != nil {
					s.log.Debug().Err(err).Msg("Live session write error")
					conn.Close()
					return
				}
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				conn.Close()
				return
			}
		}
	}
}
