package physics

import (
	"fmt"
	"math"

	"github.com/jude-mbroh/n-body-gravity-simulation/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r2"
)

// Body is a point mass moving in the plane. The mass is fixed at
// construction; position and velocity are advanced in place by the driver.
type Body struct {
	mass float64
	Pos  r2.Vec
	Vel  r2.Vec
}

// NewBody returns a body with the given initial conditions. The mass must be
// positive and every component finite.
func NewBody(pos, vel r2.Vec, mass float64) (Body, error) {
	if !finite(pos.X, pos.Y, vel.X, vel.Y, mass) {
		return Body{}, dynamo.ErrInvalidState
	}
	if mass <= 0 {
		return Body{}, fmt.Errorf("%w, got %g", dynamo.ErrNonPositiveMass, mass)
	}
	return Body{mass: mass, Pos: pos, Vel: vel}, nil
}

func (b Body) Mass() float64 { return b.mass }

// State returns the body's phase-space vector [x, y, vx, vy].
func (b Body) State() dynamo.State {
	return dynamo.State{b.Pos.X, b.Pos.Y, b.Vel.X, b.Vel.Y}
}

// SetState overwrites position and velocity from a [x, y, vx, vy] vector.
// A non-finite vector is rejected and leaves the body unchanged.
func (b *Body) SetState(s dynamo.State) error {
	if len(s) != StateDim {
		return fmt.Errorf("%w: want %d components, got %d", dynamo.ErrDimensionMismatch, StateDim, len(s))
	}
	if !s.IsValid() {
		return dynamo.ErrInvalidState
	}
	b.Pos = r2.Vec{X: s[0], Y: s[1]}
	b.Vel = r2.Vec{X: s[2], Y: s[3]}
	return nil
}

// Acceleration evaluates the net acceleration at the body's current
// position. self is the body's index in bodies.
func (b Body) Acceleration(self int, bodies []Body, g float64, policy ZeroSeparation) r2.Vec {
	return Acceleration(b.Pos, self, bodies, g, policy)
}

func (b Body) String() string {
	return fmt.Sprintf("m=%g pos=(%g, %g) vel=(%g, %g)", b.mass, b.Pos.X, b.Pos.Y, b.Vel.X, b.Vel.Y)
}

// Clone returns an independent copy of the collection.
func Clone(bodies []Body) []Body {
	c := make([]Body, len(bodies))
	copy(c, bodies)
	return c
}

// DuplicatePositions reports the first pair of bodies (0-based, i < j) that
// share exactly the same position.
func DuplicatePositions(bodies []Body) (i, j int, ok bool) {
	for i = 0; i < len(bodies); i++ {
		for j = i + 1; j < len(bodies); j++ {
			if bodies[i].Pos.X == bodies[j].Pos.X && bodies[i].Pos.Y == bodies[j].Pos.Y {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
