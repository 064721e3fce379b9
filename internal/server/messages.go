package server

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/san-kum/pendulab/internal/interact"
	"github.com/san-kum/pendulab/internal/pendulum"
)

// Inbound message types.
const (
	MsgDown  = "down"
	MsgMove  = "move"
	MsgUp    = "up"
	MsgSet   = "set"
	MsgReset = "reset"
)

// Outbound message types.
const (
	MsgFrame = "frame"
	MsgError = "error"
)

// Message is a browser event. Pointer messages carry X and Y in the
// session's rendering space; set messages carry a control name and value.
type Message struct {
	Type  string  `json:"type"`
	X     float64 `json:"x,omitempty"`
	Y     float64 `json:"y,omitempty"`
	Name  string  `json:"name,omitempty"`
	Value float64 `json:"value,omitempty"`
}

func (m Message) point() pendulum.Vec2 { return pendulum.Vec2{X: m.X, Y: m.Y} }

func decodeMessage(data []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return Message{}, fmt.Errorf("%w: %v", ErrBadMessage, err)
	}
	return msg, nil
}

// Frame is what the session sends after every frame, and in reply to a
// message it could not apply (Type "error"). Once the state is no longer
// finite, Valid is false and the angles and positions are zero.
type Frame struct {
	Type    string          `json:"type"`
	Session string          `json:"session"`
	Seq     uint64          `json:"seq"`
	Valid   bool            `json:"valid"`
	Theta1  float64         `json:"theta1"`
	Theta2  float64         `json:"theta2"`
	Bob1    pendulum.Vec2   `json:"bob1"`
	Bob2    pendulum.Vec2   `json:"bob2"`
	Mass1   float64         `json:"mass1"`
	Mass2   float64         `json:"mass2"`
	Origin  pendulum.Vec2   `json:"origin"`
	State   string          `json:"state"`
	Config  pendulum.Config `json:"config"`
	Error   string          `json:"error,omitempty"`
}

func snapshot(id string, seq uint64, ctrl *interact.Controller) Frame {
	p := ctrl.Pendulum()
	f := Frame{
		Type:    MsgFrame,
		Session: id,
		Seq:     seq,
		Mass1:   p.Config.Mass1,
		Mass2:   p.Config.Mass2,
		Origin:  p.Origin(),
		State:   ctrl.State().String(),
		Config:  p.Config,
	}
	bob1, bob2 := p.Bobs()
	if finite(p.Motion.Theta1, p.Motion.Theta2, bob1.X, bob1.Y, bob2.X, bob2.Y) {
		f.Valid = true
		f.Theta1, f.Theta2 = p.Motion.Theta1, p.Motion.Theta2
		f.Bob1, f.Bob2 = bob1, bob2
	}
	return f
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
