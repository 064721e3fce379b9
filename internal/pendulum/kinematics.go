package pendulum

import "math"

// Vec2 is a point in rendering space. Y grows downward.
type Vec2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func (v Vec2) Sub(w Vec2) Vec2 { return Vec2{v.X - w.X, v.Y - w.Y} }

func (v Vec2) Dist(w Vec2) float64 {
	return math.Hypot(v.X-w.X, v.Y-w.Y)
}

// Hang returns the end of a rod of the given length hanging from pivot at
// angle theta. Zero points straight down; positive angles swing toward +X.
func Hang(pivot Vec2, length, theta float64) Vec2 {
	return Vec2{
		X: pivot.X + length*math.Sin(theta),
		Y: pivot.Y + length*math.Cos(theta),
	}
}

// Positions is the forward kinematics of the double pendulum.
func Positions(theta1, theta2, length1, length2 float64, origin Vec2) (bob1, bob2 Vec2) {
	bob1 = Hang(origin, length1, theta1)
	bob2 = Hang(bob1, length2, theta2)
	return bob1, bob2
}

// AngleFrom is the inverse of Hang for the direction only: the angle from
// the downward vertical of the ray pivot→p. atan2 takes dx first because the
// angle is measured from the vertical.
func AngleFrom(pivot, p Vec2) float64 {
	return math.Atan2(p.X-pivot.X, p.Y-pivot.Y)
}
