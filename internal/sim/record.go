package sim

import "github.com/jude-mbroh/n-body-gravity-simulation/internal/physics"

// Record is one body's state at one timestep. Index is 1-based and restarts
// at every timestep.
type Record struct {
	Index int
	T     float64
	X, Y  float64
	VX    float64
	VY    float64
}

func newRecord(index int, t float64, b physics.Body) Record {
	return Record{
		Index: index,
		T:     t,
		X:     b.Pos.X,
		Y:     b.Pos.Y,
		VX:    b.Vel.X,
		VY:    b.Vel.Y,
	}
}

// Sink receives records in emission order. A returned error aborts the run.
type Sink interface {
	Emit(r Record) error
}

type SinkFunc func(r Record) error

func (f SinkFunc) Emit(r Record) error { return f(r) }

// Observer is notified after every completed timestep with the committed
// collection. Observers must not retain or modify bodies.
type Observer interface {
	OnStep(t float64, bodies []physics.Body)
}

// Metric summarises a run into a single value.
type Metric interface {
	Name() string
	Observe(t float64, bodies []physics.Body)
	Value() float64
	Reset()
}
