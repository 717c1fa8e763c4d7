package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/weft-ui/weft/pkg/component"
	"github.com/weft-ui/weft/pkg/engine"
	"github.com/weft-ui/weft/pkg/scope"
)

// DriveFunc handles one input frame for a session.
type DriveFunc func(ctx context.Context, name scope.Name, value string) error

// Middleware wraps a session's drive path. Used for metrics and tracing.
type Middleware func(DriveFunc) DriveFunc

// Session is one connected client: its own engine, root mount point, and
// event loop. All graph mutation for the session happens on the loop
// goroutine.
type Session struct {
	ID         string
	CreatedAt  time.Time
	lastActive atomic.Int64 // unix nanos

	eng  *engine.Engine
	root *component.Node

	conn   *websocket.Conn
	connMu sync.Mutex // protects conn writes
	closed atomic.Bool

	events     chan *Frame
	dispatchCh chan func()
	done       chan struct{}

	drive  DriveFunc
	config *SessionConfig
	logger *slog.Logger

	eventCount atomic.Uint64
	patchCount atomic.Uint64

	onClose func(*Session)
}

// newSessionID returns a cryptographically random session ID.
func newSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic("weft: session id entropy unavailable: " + err.Error())
	}
	return hex.EncodeToString(b)
}

func newSession(conn *websocket.Conn, config *SessionConfig, logger *slog.Logger, mw []Middleware) *Session {
	eng := engine.New()
	s := &Session{
		ID:         newSessionID(),
		CreatedAt:  time.Now(),
		eng:        eng,
		root:       component.NewRoot(eng),
		conn:       conn,
		events:     make(chan *Frame, config.MaxEventQueue),
		dispatchCh: make(chan func(), 64),
		done:       make(chan struct{}),
		config:     config,
	}
	s.logger = logger.With("session", s.ID)
	s.touch()

	// Innermost drive: the engine itself. Middleware wraps outside in.
	s.drive = func(_ context.Context, name scope.Name, value string) error {
		return eng.Drive(name, value)
	}
	for i := len(mw) - 1; i >= 0; i-- {
		s.drive = mw[i](s.drive)
	}
	return s
}

// Engine returns the session's engine.
func (s *Session) Engine() *engine.Engine {
	return s.eng
}

// Root returns the session's root mount point.
func (s *Session) Root() *component.Node {
	return s.root
}

// Dispatch queues fn to run on the session's event loop. Safe from any
// goroutine; this is how asynchronous work feeds results back into the
// graph.
func (s *Session) Dispatch(fn func()) {
	if s.closed.Load() {
		return
	}
	select {
	case s.dispatchCh <- fn:
	case <-s.done:
	}
}

// touch records client activity for idle tracking.
func (s *Session) touch() {
	s.lastActive.Store(time.Now().UnixNano())
}

// LastActive returns the time of the last client activity.
func (s *Session) LastActive() time.Time {
	return time.Unix(0, s.lastActive.Load())
}

// run is the session event loop. One goroutine per session; every engine
// mutation goes through here.
func (s *Session) run() {
	idle := time.NewTicker(30 * time.Second)
	defer idle.Stop()

	for {
		select {
		case frame := <-s.events:
			s.handleInput(frame)

		case fn := <-s.dispatchCh:
			s.runDispatched(fn)

		case <-idle.C:
			if time.Since(s.LastActive()) > s.config.IdleTimeout {
				s.logger.Info("closing idle session")
				s.Close()
				return
			}

		case <-s.done:
			return
		}
	}
}

// handleInput drives one input frame and flushes resulting patches.
func (s *Session) handleInput(frame *Frame) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic in input handler",
				"name", frame.Name, "panic", r, "stack", string(debug.Stack()))
		}
	}()

	s.eventCount.Add(1)

	if err := s.drive(context.Background(), frame.Name, frame.Value); err != nil {
		s.logger.Warn("input rejected", "name", frame.Name, "error", err)
		s.writeFrame(&Frame{Type: FrameError, Name: frame.Name, Message: err.Error()})
		return
	}

	s.flushPatches()
}

// runDispatched runs a dispatched function and flushes any patches its
// signal writes produced.
func (s *Session) runDispatched(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic in dispatched function",
				"panic", r, "stack", string(debug.Stack()))
		}
	}()

	fn()
	s.eng.Root().Flush()
	s.flushPatches()
}

// flushPatches drains the engine and pushes a patch frame if anything
// changed.
func (s *Session) flushPatches() {
	patches := s.eng.Drain()
	if len(patches) == 0 {
		return
	}
	s.patchCount.Add(uint64(len(patches)))
	s.writeFrame(patchFrame(patches))
}

// writeFrame sends one frame, serialized under the connection write lock.
func (s *Session) writeFrame(f *Frame) {
	if s.closed.Load() || s.conn == nil {
		return
	}

	data, err := EncodeFrame(f)
	if err != nil {
		s.logger.Error("frame encode error", "error", err)
		return
	}

	s.connMu.Lock()
	defer s.connMu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		s.logger.Error("write error", "error", err)
	}
}

// readLoop reads client frames until the connection drops.
func (s *Session) readLoop() {
	defer s.Close()

	s.conn.SetReadLimit(s.config.MaxMessageSize)

	for {
		s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))

		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
			}
			return
		}

		s.touch()

		frame, err := DecodeFrame(msg)
		if err != nil {
			s.logger.Warn("bad frame", "error", err)
			continue
		}
		if frame.Type != FrameInput {
			s.logger.Warn("unexpected frame type", "type", frame.Type)
			continue
		}

		select {
		case s.events <- frame:
		default:
			s.logger.Warn("event queue full, dropping input", "name", frame.Name)
		}
	}
}

// Close tears the session down: stops the loop, disposes every mounted
// component through the root owner, and closes the socket. Idempotent.
func (s *Session) Close() {
	if s.closed.Swap(true) {
		return
	}
	close(s.done)

	// The close hook runs before disposal so the server can snapshot the
	// engine's input state while it is still intact.
	if s.onClose != nil {
		s.onClose(s)
	}

	s.eng.Root().Dispose()

	if s.conn != nil {
		s.conn.Close()
	}
	s.logger.Info("session closed",
		"events", s.eventCount.Load(), "patches", s.patchCount.Load())
}
