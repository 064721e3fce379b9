// Package interact implements the pointer-driven drag state machine that
// decides, frame by frame, whether the pendulum integrates or holds still
// while the user repositions a bob.
package interact

import "github.com/san-kum/pendulab/internal/pendulum"

type DragState int

const (
	Idle DragState = iota
	DraggingBob1
	DraggingBob2
)

func (s DragState) String() string {
	switch s {
	case Idle:
		return "idle"
	case DraggingBob1:
		return "dragging_bob1"
	case DraggingBob2:
		return "dragging_bob2"
	default:
		return "unknown"
	}
}

// TransitionFunc is called after every state change.
type TransitionFunc func(from, to DragState)

type Option func(*Controller)

func WithHitRadius(r float64) Option {
	return func(c *Controller) { c.hitRadius = r }
}

func WithTransitionHook(fn TransitionFunc) Option {
	return func(c *Controller) { c.onTransition = fn }
}

// Controller owns the drag session for one pendulum. While a bob is being
// dragged the controller is the only writer of that bob's angle and
// velocity, and Frame does not integrate at all.
//
// A Controller is driven by a single owner: pointer events and frames must
// not be delivered concurrently.
type Controller struct {
	p            *pendulum.Pendulum
	state        DragState
	hitRadius    float64
	onTransition TransitionFunc
}

func New(p *pendulum.Pendulum, opts ...Option) *Controller {
	c := &Controller{
		p:         p,
		state:     Idle,
		hitRadius: HitRadius,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) Pendulum() *pendulum.Pendulum { return c.p }
func (c *Controller) State() DragState             { return c.state }
func (c *Controller) Dragging() bool               { return c.state != Idle }

// PointerDown starts a drag session if pt is within the hit radius of a bob.
// It is ignored while a session is already active.
func (c *Controller) PointerDown(pt pendulum.Vec2) DragState {
	if c.state != Idle {
		return c.state
	}
	if next := HitTest(c.p, pt, c.hitRadius); next != Idle {
		c.transition(next)
	}
	return c.state
}

// PointerMove repositions the dragged bob. Outside a session it is a no-op.
func (c *Controller) PointerMove(pt pendulum.Vec2) {
	m := &c.p.Motion
	switch c.state {
	case DraggingBob1:
		m.Theta1 = pendulum.AngleFrom(c.p.Origin(), pt)
		m.Omega1 = 0
	case DraggingBob2:
		m.Theta2 = pendulum.AngleFrom(c.p.Bob1(), pt)
		m.Omega2 = 0
	}
}

// PointerUp ends the session. The released bob resumes from rest.
func (c *Controller) PointerUp() {
	if c.state != Idle {
		c.transition(Idle)
	}
}

// Frame runs one frame of the simulation: a fixed integration step when
// idle, nothing while a drag is active.
func (c *Controller) Frame() {
	if c.state != Idle {
		return
	}
	c.p.Advance(pendulum.FrameDt)
}

// Reset zeroes the pendulum's motion. An active drag session survives and
// keeps ownership of its bob.
func (c *Controller) Reset() {
	c.p.Reset()
}

func (c *Controller) transition(to DragState) {
	from := c.state
	c.state = to
	if c.onTransition != nil {
		c.onTransition(from, to)
	}
}
