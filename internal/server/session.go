package server

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/pendulab/internal/controls"
	"github.com/san-kum/pendulab/internal/interact"
	"github.com/san-kum/pendulab/internal/pendulum"
)

const writeTimeout = 5 * time.Second

type inbound struct {
	msg Message
	err error
}

// Session is one browser connection and the pendulum it owns. Only the
// session's actor goroutine touches the controller; the reader goroutine
// hands messages over a channel.
type Session struct {
	ID      uuid.UUID
	ctrl    *interact.Controller
	surface *controls.Surface
	logger  *zap.Logger
	cancel  context.CancelFunc
	seq     uint64
}

func newSession(p *pendulum.Pendulum, logger *zap.Logger, cancel context.CancelFunc) *Session {
	id := uuid.New()
	logger = logger.With(zap.String("session", id.String()))
	s := &Session{
		ID:      id,
		surface: controls.NewSurface(p),
		logger:  logger,
		cancel:  cancel,
	}
	s.ctrl = interact.New(p, interact.WithTransitionHook(func(from, to interact.DragState) {
		logger.Debug("drag transition", zap.Stringer("from", from), zap.Stringer("to", to))
	}))
	return s
}

// run drives the session until the connection fails or ctx is cancelled.
func (s *Session) run(ctx context.Context, conn *websocket.Conn, interval time.Duration) error {
	g, ctx := errgroup.WithContext(ctx)
	in := make(chan inbound)

	g.Go(func() error {
		<-ctx.Done()
		return conn.Close()
	})

	g.Go(func() error {
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return err
			}
			msg, err := decodeMessage(data)
			select {
			case in <- inbound{msg: msg, err: err}:
			case <-ctx.Done():
				return nil
			}
		}
	})

	g.Go(func() error {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case m := <-in:
				err := m.err
				if err == nil {
					err = s.apply(m.msg)
				}
				if err != nil {
					s.logger.Debug("message rejected", zap.Error(err))
					if err := s.write(conn, Frame{Type: MsgError, Session: s.ID.String(), Seq: s.seq, Error: err.Error()}); err != nil {
						return err
					}
				}
			case <-ticker.C:
				s.ctrl.Frame()
				s.seq++
				if err := s.write(conn, snapshot(s.ID.String(), s.seq, s.ctrl)); err != nil {
					return err
				}
			}
		}
	})

	return g.Wait()
}

func (s *Session) apply(msg Message) error {
	switch msg.Type {
	case MsgDown:
		s.ctrl.PointerDown(msg.point())
	case MsgMove:
		s.ctrl.PointerMove(msg.point())
	case MsgUp:
		s.ctrl.PointerUp()
	case MsgSet:
		v, err := s.surface.Set(msg.Name, msg.Value)
		if err != nil {
			return err
		}
		s.logger.Debug("control changed", zap.String("control", msg.Name), zap.Float64("value", v))
	case MsgReset:
		s.ctrl.Reset()
	default:
		return fmt.Errorf("%w: unknown type %q", ErrBadMessage, msg.Type)
	}
	return nil
}

func (s *Session) write(conn *websocket.Conn, f Frame) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteJSON(f)
}
