package integrators

import (
	"math"
	"testing"

	"github.com/jude-mbroh/n-body-gravity-simulation/internal/dynamo"
	"github.com/jude-mbroh/n-body-gravity-simulation/internal/physics"
	"gonum.org/v1/gonum/spatial/r2"
)

// oscillator is x” = -x laid out as [x, v].
type oscillator struct{}

func (o oscillator) StateDim() int { return 2 }
func (o oscillator) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{x[1], -x[0]}
}

// counting records every state it is evaluated at.
type counting struct {
	seen []dynamo.State
}

func (c *counting) StateDim() int { return 1 }
func (c *counting) Derive(x dynamo.State, t float64) dynamo.State {
	c.seen = append(c.seen, x.Clone())
	return dynamo.State{1}
}

func TestRK4Accuracy(t *testing.T) {
	integ := NewRK4()
	x := dynamo.State{1.0, 0.0}
	dt := 0.01
	steps := 100

	for i := 0; i < steps; i++ {
		x = integ.Step(oscillator{}, x, float64(i)*dt, dt)
	}

	expectedX := math.Cos(float64(steps) * dt)
	expectedV := -math.Sin(float64(steps) * dt)

	if math.Abs(x[0]-expectedX) > 1e-8 {
		t.Errorf("position error too large: got %.10f, expected %.10f", x[0], expectedX)
	}
	if math.Abs(x[1]-expectedV) > 1e-8 {
		t.Errorf("velocity error too large: got %.10f, expected %.10f", x[1], expectedV)
	}
}

func TestRK4StageOffsets(t *testing.T) {
	sys := &counting{}
	next := NewRK4().Step(sys, dynamo.State{0}, 0, 0.2)

	want := []float64{0, 0.1, 0.1, 0.2}
	if len(sys.seen) != len(want) {
		t.Fatalf("expected %d evaluations, got %d", len(want), len(sys.seen))
	}
	for i, w := range want {
		if math.Abs(sys.seen[i][0]-w) > 1e-15 {
			t.Errorf("stage %d evaluated at %g, expected %g", i+1, sys.seen[i][0], w)
		}
	}
	if math.Abs(next[0]-0.2) > 1e-15 {
		t.Errorf("expected 0.2 after one step of unit slope, got %g", next[0])
	}
}

func TestRK4DoesNotMutateInput(t *testing.T) {
	x := dynamo.State{1, 0}
	NewRK4().Step(oscillator{}, x, 0, 0.1)
	if x[0] != 1 || x[1] != 0 {
		t.Errorf("input state modified: %v", x)
	}
}

func TestRK4CircularOrbit(t *testing.T) {
	sun, _ := physics.NewBody(r2.Vec{}, r2.Vec{}, 1)
	planet, _ := physics.NewBody(r2.Vec{X: 1}, r2.Vec{Y: 1}, 1e-9)
	bodies := []physics.Body{sun, planet}

	field := physics.Field{Self: 1, Bodies: bodies, G: 1}
	integ := NewRK4()

	steps := 6283
	dt := 2 * math.Pi / float64(steps)
	x := planet.State()
	for i := 0; i < steps; i++ {
		x = integ.Step(field, x, float64(i)*dt, dt)
	}

	if math.Abs(x[0]-1) > 1e-6 || math.Abs(x[1]) > 1e-6 {
		t.Errorf("expected planet back at (1, 0), got (%.8f, %.8f)", x[0], x[1])
	}
}

func TestFixedStepIntegratorsConverge(t *testing.T) {
	tests := []struct {
		name string
		tol  float64
	}{
		{"rk4", 1e-8},
		{"verlet", 1e-4},
		{"leapfrog", 1e-4},
		{"euler", 2e-2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			integ, err := New(tt.name)
			if err != nil {
				t.Fatal(err)
			}
			x := dynamo.State{1.0, 0.0}
			dt := 0.01
			for i := 0; i < 100; i++ {
				x = integ.Step(oscillator{}, x, float64(i)*dt, dt)
			}
			if math.Abs(x[0]-math.Cos(1)) > tt.tol {
				t.Errorf("position error %.3e exceeds %.0e", math.Abs(x[0]-math.Cos(1)), tt.tol)
			}
		})
	}
}

func TestRegistry(t *testing.T) {
	integ, err := New("")
	if err != nil {
		t.Fatalf("default integrator: %v", err)
	}
	if _, ok := integ.(*RK4); !ok {
		t.Errorf("expected RK4 by default, got %T", integ)
	}

	if _, err := New("rk45"); err == nil {
		t.Error("expected error for unknown integrator")
	}

	names := Names()
	want := []string{"euler", "leapfrog", "rk4", "verlet"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("expected %v, got %v", want, names)
			break
		}
	}
}
