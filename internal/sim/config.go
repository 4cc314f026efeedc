package sim

import (
	"fmt"
	"math"

	"github.com/jude-mbroh/n-body-gravity-simulation/internal/dynamo"
	"github.com/jude-mbroh/n-body-gravity-simulation/internal/physics"
)

// UpdateMode selects which positions of the other bodies a body sees while
// it is being advanced.
type UpdateMode int

const (
	// Sequential advances bodies in index order and commits each one in
	// place before the next is integrated: body i sees bodies before it at
	// their end-of-step positions and bodies after it at start-of-step
	// positions. This is the default and matches existing output files.
	Sequential UpdateMode = iota
	// Synchronized integrates every body against a snapshot of the
	// start-of-step collection and commits all of them together.
	Synchronized
)

func (m UpdateMode) String() string {
	switch m {
	case Sequential:
		return "sequential"
	case Synchronized:
		return "synchronized"
	default:
		return fmt.Sprintf("UpdateMode(%d)", int(m))
	}
}

func ParseUpdateMode(s string) (UpdateMode, error) {
	switch s {
	case "", "sequential":
		return Sequential, nil
	case "synchronized", "sync":
		return Synchronized, nil
	default:
		return 0, fmt.Errorf("unknown update mode: %s (want sequential or synchronized)", s)
	}
}

// HorizonBound selects the last timestep label of a run.
type HorizonBound int

const (
	// BoundExtended runs while t <= T + dt, one step past the horizon.
	// This is the default and matches existing output files.
	BoundExtended HorizonBound = iota
	// BoundExact runs while t <= T.
	BoundExact
)

func (b HorizonBound) String() string {
	switch b {
	case BoundExtended:
		return "extended"
	case BoundExact:
		return "exact"
	default:
		return fmt.Sprintf("HorizonBound(%d)", int(b))
	}
}

func ParseHorizonBound(s string) (HorizonBound, error) {
	switch s {
	case "", "extended":
		return BoundExtended, nil
	case "exact":
		return BoundExact, nil
	default:
		return 0, fmt.Errorf("unknown horizon bound: %s (want extended or exact)", s)
	}
}

// Config holds the constants of a run. They are fixed once the simulator is
// created.
type Config struct {
	G       float64
	Horizon float64
	Dt      float64

	Update         UpdateMode
	Bound          HorizonBound
	ZeroSeparation physics.ZeroSeparation
}

func (c Config) Validate() error {
	for _, v := range []struct {
		name  string
		value float64
	}{
		{"G", c.G},
		{"T", c.Horizon},
		{"dt", c.Dt},
	} {
		if math.IsNaN(v.value) || math.IsInf(v.value, 0) || v.value <= 0 {
			return fmt.Errorf("%w: %s = %g", dynamo.ErrNonPositiveConstant, v.name, v.value)
		}
	}
	if c.Update != Sequential && c.Update != Synchronized {
		return fmt.Errorf("invalid update mode %v", c.Update)
	}
	if c.Bound != BoundExtended && c.Bound != BoundExact {
		return fmt.Errorf("invalid horizon bound %v", c.Bound)
	}
	if c.ZeroSeparation != physics.ZeroReset && c.ZeroSeparation != physics.ZeroSkip {
		return fmt.Errorf("invalid zero-separation policy %v", c.ZeroSeparation)
	}
	return nil
}

// End returns the largest timestep label the run will emit records for.
func (c Config) End() float64 {
	if c.Bound == BoundExact {
		return c.Horizon
	}
	return c.Horizon + c.Dt
}
