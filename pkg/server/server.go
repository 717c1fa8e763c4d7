package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/weft-ui/weft/pkg/component"
	"github.com/weft-ui/weft/pkg/session"
)

// MountFunc builds the component tree for a fresh session. It receives the
// session's root node and mounts whatever the application needs under it.
type MountFunc func(root *component.Node) error

// Server accepts websocket clients and runs one Session per connection.
type Server struct {
	config *Config
	mount  MountFunc
	logger *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session

	middleware []Middleware

	store    session.Store
	storeTTL time.Duration

	upgrader websocket.Upgrader
	router   chi.Router
	httpSrv  *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server's logger. Defaults to slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithMiddleware appends middleware to the session drive chain. The first
// middleware given is outermost.
func WithMiddleware(mw ...Middleware) Option {
	return func(s *Server) { s.middleware = append(s.middleware, mw...) }
}

// WithHandler mounts an extra HTTP handler on the server's router, for
// serving the client shell or static assets alongside /ws.
func WithHandler(pattern string, h http.Handler) Option {
	return func(s *Server) { s.router.Mount(pattern, h) }
}

// WithSessionStore persists input snapshots to store when a session
// closes, kept for ttl. A client reconnecting with ?session=<id> gets
// its input state restored into the freshly mounted tree.
func WithSessionStore(store session.Store, ttl time.Duration) Option {
	return func(s *Server) {
		s.store = store
		s.storeTTL = ttl
	}
}

// New builds a Server that mounts each session's components with mount.
func New(config *Config, mount MountFunc, opts ...Option) *Server {
	config = config.withDefaults()

	s := &Server{
		config:   config,
		mount:    mount,
		logger:   slog.Default(),
		sessions: make(map[string]*Session),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// Session state lives server-side only; cross-origin pages
			// cannot read anything through this socket.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		router: chi.NewRouter(),
	}

	s.router.Use(chimw.RequestID)
	s.router.Use(chimw.Recoverer)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/ws", s.handleWS)

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the server's HTTP handler, for embedding in an existing
// mux or for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// SessionCount returns the number of live sessions.
func (s *Server) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Session returns the live session with the given ID, if any.
func (s *Server) Session(id string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("ok"))
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	// The session always gets a fresh random ID. The resume token only
	// selects which snapshot to restore; adopting it as the ID would let
	// a second connection shadow a live session's registry entry.
	resumeID := r.URL.Query().Get("session")

	sess := newSession(conn, s.config.Session, s.logger, s.middleware)
	sess.onClose = s.dropSession

	if err := s.mount(sess.Root()); err != nil {
		s.logger.Error("mount failed", "session", sess.ID, "error", err)
		sess.writeFrame(&Frame{Type: FrameError, Message: "mount failed"})
		sess.Close()
		return
	}

	if resumeID != "" {
		s.restoreSession(r.Context(), sess, resumeID)
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	s.logger.Info("session opened", "session", sess.ID, "remote", r.RemoteAddr)

	go sess.run()

	sess.writeFrame(&Frame{Type: FrameSession, Session: sess.ID})

	// Push the initial render before reading any input.
	sess.Dispatch(func() {})

	sess.readLoop()
}

// restoreSession loads the snapshot the resume token names into a
// freshly mounted tree. A missing or unreadable snapshot means the
// client simply starts fresh. A consumed snapshot is deleted so the old
// token cannot be replayed.
func (s *Server) restoreSession(ctx context.Context, sess *Session, resumeID string) {
	if s.store == nil {
		return
	}

	data, err := s.store.Load(ctx, resumeID)
	if err != nil {
		s.logger.Error("snapshot load failed", "session", sess.ID, "error", err)
		return
	}
	if data == nil {
		return
	}

	snap, err := session.Deserialize(data)
	if err != nil {
		s.logger.Warn("discarding unreadable snapshot", "session", sess.ID, "error", err)
		return
	}
	snap.Restore(sess.Engine())

	if err := s.store.Delete(ctx, resumeID); err != nil {
		s.logger.Warn("consumed snapshot not deleted", "session", sess.ID, "error", err)
	}

	s.logger.Info("session restored",
		"session", sess.ID, "resumed_from", resumeID, "inputs", len(snap.Inputs))
}

// dropSession unregisters a closing session and persists its snapshot.
func (s *Server) dropSession(sess *Session) {
	s.mu.Lock()
	delete(s.sessions, sess.ID)
	s.mu.Unlock()

	if s.store == nil {
		return
	}

	snap := session.Capture(sess.ID, sess.Engine())
	data, err := session.Serialize(snap)
	if err != nil {
		s.logger.Error("snapshot serialize failed", "session", sess.ID, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.store.Save(ctx, sess.ID, data, time.Now().Add(s.storeTTL)); err != nil {
		s.logger.Error("snapshot save failed", "session", sess.ID, "error", err)
	}
}

// ListenAndServe runs the HTTP server until ctx is canceled, then shuts
// down gracefully, closing every live session.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.httpSrv = &http.Server{
		Addr:    s.config.Address,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "address", s.config.Address)
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	return s.Shutdown()
}

// Shutdown closes all sessions and stops the HTTP listener.
func (s *Server) Shutdown() error {
	s.mu.Lock()
	sessions := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.Close()
	}

	if s.httpSrv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	return s.httpSrv.Shutdown(ctx)
}
