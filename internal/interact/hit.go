package interact

import "github.com/san-kum/pendulab/internal/pendulum"

// HitRadius is how close, in rendering units, a pointer-down must land to a
// bob's centre to grab it. It does not depend on the bob's rendered size.
const HitRadius = 30.0

// HitCircle is a circular grab area around a bob.
type HitCircle struct {
	Center pendulum.Vec2
	Radius float64
}

// Contains reports whether p lies strictly inside the circle.
func (c HitCircle) Contains(p pendulum.Vec2) bool {
	dx := p.X - c.Center.X
	dy := p.Y - c.Center.Y
	return dx*dx+dy*dy < c.Radius*c.Radius
}

// HitTest returns the bob a pointer-down at p would grab, or Idle. Bob 1 is
// tested first and wins when both circles contain p.
func HitTest(p *pendulum.Pendulum, pt pendulum.Vec2, radius float64) DragState {
	bob1, bob2 := p.Bobs()
	switch {
	case HitCircle{Center: bob1, Radius: radius}.Contains(pt):
		return DraggingBob1
	case HitCircle{Center: bob2, Radius: radius}.Contains(pt):
		return DraggingBob2
	default:
		return Idle
	}
}
