package metrics

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/jude-mbroh/n-body-gravity-simulation/internal/physics"
)

// Stability is the fraction of observations in which every body stayed
// within radius of the centre of mass. A value below 1 usually means a body
// escaped or a close encounter flung it out.
type Stability struct {
	name       string
	radius     float64
	violations int
	samples    int
}

func NewStability(radius float64) *Stability {
	return &Stability{
		name:   "stability",
		radius: radius,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(t float64, bodies []physics.Body) {
	s.samples++
	com := physics.CenterOfMass(bodies)
	for _, b := range bodies {
		if r2.Norm(r2.Sub(b.Pos, com)) > s.radius {
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
