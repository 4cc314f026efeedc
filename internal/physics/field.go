package physics

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/jude-mbroh/n-body-gravity-simulation/internal/dynamo"
)

// StateDim is the length of a single body's state vector.
const StateDim = 4

// Field is the equation of motion of bodies[Self] with every other body held
// where it is in Bodies:
//
//	dx/dt = vx, dy/dt = vy, dvx/dt = ax(x, y), dvy/dt = ay(x, y)
//
// Only the state handed to Derive moves between integrator stages.
type Field struct {
	Self   int
	Bodies []Body
	G      float64
	Policy ZeroSeparation
}

func (f Field) StateDim() int { return StateDim }

func (f Field) Derive(x dynamo.State, t float64) dynamo.State {
	a := Acceleration(r2.Vec{X: x[0], Y: x[1]}, f.Self, f.Bodies, f.G, f.Policy)
	return dynamo.State{x[2], x[3], a.X, a.Y}
}
