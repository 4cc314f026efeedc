package physics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// ZeroSeparation selects how the force evaluator treats another body lying
// exactly on the sample position.
type ZeroSeparation int

const (
	// ZeroReset discards everything accumulated so far in the summation when
	// a zero separation is met. Bodies after the coincident one still
	// contribute. This is the default and matches existing output files.
	ZeroReset ZeroSeparation = iota
	// ZeroSkip drops only the coincident pair's term.
	ZeroSkip
)

func (z ZeroSeparation) String() string {
	switch z {
	case ZeroReset:
		return "reset"
	case ZeroSkip:
		return "skip"
	default:
		return fmt.Sprintf("ZeroSeparation(%d)", int(z))
	}
}

func ParseZeroSeparation(s string) (ZeroSeparation, error) {
	switch s {
	case "", "reset":
		return ZeroReset, nil
	case "skip":
		return ZeroSkip, nil
	default:
		return 0, fmt.Errorf("unknown zero-separation policy: %s (want reset or skip)", s)
	}
}

// Acceleration returns the net gravitational acceleration at sample due to
// every body except bodies[self]:
//
//	a = sum_j G * m_j * (pos_j - sample) / |pos_j - sample|^3
//
// The sample is usually the owning body's position or an intermediate
// integrator stage, so the owner is excluded by index, never by comparing
// positions. Bodies is only read.
func Acceleration(sample r2.Vec, self int, bodies []Body, g float64, policy ZeroSeparation) r2.Vec {
	ax, ay := 0.0, 0.0

	for j := range bodies {
		if j == self {
			continue
		}

		dx := bodies[j].Pos.X - sample.X
		dy := bodies[j].Pos.Y - sample.Y
		r := math.Sqrt(dx*dx + dy*dy)

		if r == 0 {
			if policy == ZeroReset {
				ax, ay = 0, 0
			}
			continue
		}

		ax += g * bodies[j].mass * dx / (r * r * r)
		ay += g * bodies[j].mass * dy / (r * r * r)
	}

	return r2.Vec{X: ax, Y: ay}
}
