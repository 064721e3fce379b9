package sim

import (
	"errors"

	"github.com/san-kum/pendulab/internal/dynamo"
	"github.com/san-kum/pendulab/internal/interact"
	"github.com/san-kum/pendulab/internal/pendulum"
)

var ErrInvalidRun = errors.New("sim: invalid run configuration")

type EventKind int

const (
	PointerDown EventKind = iota
	PointerMove
	PointerUp
	Reset
)

func (k EventKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	case Reset:
		return "reset"
	default:
		return "unknown"
	}
}

// Event is a host input delivered before the frame with the same index.
type Event struct {
	Frame int
	Kind  EventKind
	Point pendulum.Vec2
}

// Script is a list of events ordered by frame. Events sharing a frame are
// delivered in slice order.
type Script []Event

type Config struct {
	Frames int
	Script Script
	// StopOnInvalid ends the run at the first non-finite sample with a
	// *dynamo.FrameError wrapping dynamo.ErrInvalidState.
	StopOnInvalid bool
}

type Result struct {
	States   []dynamo.State
	Times    []float64
	Dragging []interact.DragState
	Metrics  map[string]float64

	// FirstInvalid is the first frame whose state holds NaN or Inf, or -1.
	FirstInvalid int
}
