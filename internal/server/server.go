// Package server hosts pendulums for browsers over websockets. Every
// connection gets its own pendulum, driven at a fixed frame rate by a single
// session goroutine.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/pendulab/internal/pendulum"
)

var (
	ErrTooManySessions = errors.New("server: too many sessions")
	ErrBadMessage      = errors.New("server: bad message")
)

const shutdownTimeout = 5 * time.Second

type Options struct {
	Addr string
	// MaxSessions caps concurrent connections. Zero means no limit.
	MaxSessions int
	FPS         int
	// NewPendulum builds the pendulum for each new session.
	NewPendulum func() *pendulum.Pendulum
	Logger      *zap.Logger
}

type Server struct {
	opts     Options
	logger   *zap.Logger
	upgrader websocket.Upgrader

	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
}

func New(opts Options) *Server {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.NewPendulum == nil {
		opts.NewPendulum = pendulum.NewDefault
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Server{
		opts:   opts,
		logger: opts.Logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		sessions: make(map[uuid.UUID]*Session),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", s.handleWebSocket)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

// Sessions returns the number of live sessions.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// ListenAndServe serves until ctx is cancelled, then closes every session
// and shuts the listener down.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", zap.String("addr", s.opts.Addr), zap.Int("max_sessions", s.opts.MaxSessions))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		s.logger.Info("shutting down", zap.Int("sessions", s.Sessions()))
		s.closeSessions()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) register(ctx context.Context) (*Session, context.Context, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.opts.MaxSessions > 0 && len(s.sessions) >= s.opts.MaxSessions {
		return nil, nil, ErrTooManySessions
	}
	ctx, cancel := context.WithCancel(ctx)
	sess := newSession(s.opts.NewPendulum(), s.logger, cancel)
	s.sessions[sess.ID] = sess
	return sess, ctx, nil
}

func (s *Server) unregister(sess *Session) {
	s.mu.Lock()
	delete(s.sessions, sess.ID)
	s.mu.Unlock()
	sess.cancel()
}

func (s *Server) closeSessions() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sess := range s.sessions {
		sess.cancel()
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sess, ctx, err := s.register(context.WithoutCancel(r.Context()))
	if err != nil {
		s.logger.Warn("connection refused", zap.String("remote", r.RemoteAddr), zap.Error(err))
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	defer s.unregister(sess)

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		sess.logger.Warn("upgrade failed", zap.Error(err))
		return
	}

	sess.logger.Info("session started", zap.String("remote", r.RemoteAddr))
	err = sess.run(ctx, conn, time.Second/time.Duration(s.opts.FPS))
	switch {
	case err == nil, errors.Is(err, context.Canceled),
		websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway):
		sess.logger.Info("session ended", zap.Uint64("frames", sess.seq))
	default:
		sess.logger.Warn("session ended", zap.Uint64("frames", sess.seq), zap.Error(err))
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":   "ok",
		"sessions": s.Sessions(),
	})
}
