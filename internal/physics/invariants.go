package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Energy returns kinetic plus pairwise potential energy. Coincident pairs
// contribute no potential.
func Energy(bodies []Body, g float64) float64 {
	ke := 0.0
	pe := 0.0

	for i := range bodies {
		ke += 0.5 * bodies[i].mass * r2.Norm2(bodies[i].Vel)

		for j := i + 1; j < len(bodies); j++ {
			r := r2.Norm(r2.Sub(bodies[j].Pos, bodies[i].Pos))
			if r > 0 {
				pe -= g * bodies[i].mass * bodies[j].mass / r
			}
		}
	}

	return ke + pe
}

func Momentum(bodies []Body) r2.Vec {
	var p r2.Vec
	for _, b := range bodies {
		p = r2.Add(p, r2.Scale(b.mass, b.Vel))
	}
	return p
}

// AngularMomentum returns the z component of the total angular momentum
// about the origin.
func AngularMomentum(bodies []Body) float64 {
	l := 0.0
	for _, b := range bodies {
		l += b.mass * r2.Cross(b.Pos, b.Vel)
	}
	return l
}

func CenterOfMass(bodies []Body) r2.Vec {
	var c r2.Vec
	m := 0.0
	for _, b := range bodies {
		c = r2.Add(c, r2.Scale(b.mass, b.Pos))
		m += b.mass
	}
	if m == 0 {
		return r2.Vec{}
	}
	return r2.Scale(1/m, c)
}

// CircularSpeed is the speed of a circular orbit of radius r around a
// central mass m.
func CircularSpeed(g, m, r float64) float64 {
	return math.Sqrt(g * m / r)
}
