package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/jude-mbroh/n-body-gravity-simulation/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestNewBodyValidation(t *testing.T) {
	tests := []struct {
		name    string
		mass    float64
		pos     r2.Vec
		wantErr error
	}{
		{"positive mass", 1, r2.Vec{}, nil},
		{"zero mass", 0, r2.Vec{}, dynamo.ErrNonPositiveMass},
		{"negative mass", -2, r2.Vec{}, dynamo.ErrNonPositiveMass},
		{"NaN position", 1, r2.Vec{X: math.NaN()}, dynamo.ErrInvalidState},
		{"Inf mass", math.Inf(1), r2.Vec{}, dynamo.ErrInvalidState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewBody(tt.pos, r2.Vec{}, tt.mass)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if b.Mass() != tt.mass {
					t.Errorf("expected mass %g, got %g", tt.mass, b.Mass())
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestBodyState(t *testing.T) {
	b := mustBody(t, 1, 2, 3, 4, 5)

	s := b.State()
	if len(s) != 4 || s[0] != 1 || s[1] != 2 || s[2] != 3 || s[3] != 4 {
		t.Fatalf("unexpected state %v", s)
	}

	if err := b.SetState(dynamo.State{-1, -2, -3, -4}); err != nil {
		t.Fatalf("SetState: %v", err)
	}
	if b.Pos != (r2.Vec{X: -1, Y: -2}) || b.Vel != (r2.Vec{X: -3, Y: -4}) {
		t.Errorf("SetState not applied: %v", b)
	}
	if b.Mass() != 5 {
		t.Errorf("mass changed to %g", b.Mass())
	}

	if err := b.SetState(dynamo.State{1, 2}); !errors.Is(err, dynamo.ErrDimensionMismatch) {
		t.Errorf("expected dimension mismatch, got %v", err)
	}
	if err := b.SetState(dynamo.State{0, math.Inf(1), 0, 0}); !errors.Is(err, dynamo.ErrInvalidState) {
		t.Errorf("expected invalid state, got %v", err)
	}
	if b.Pos != (r2.Vec{X: -1, Y: -2}) {
		t.Errorf("rejected state was applied: %v", b)
	}
}

func TestDuplicatePositions(t *testing.T) {
	bodies := []Body{
		mustBody(t, 0, 0, 0, 0, 1),
		mustBody(t, 1, 0, 0, 0, 1),
		mustBody(t, 0, 1, 0, 0, 1),
	}
	if _, _, ok := DuplicatePositions(bodies); ok {
		t.Error("expected no duplicates")
	}

	bodies = append(bodies, mustBody(t, 1, 0, 5, 5, 2))
	i, j, ok := DuplicatePositions(bodies)
	if !ok || i != 1 || j != 3 {
		t.Errorf("expected duplicate pair (1, 3), got (%d, %d, %v)", i, j, ok)
	}
}

func TestClone(t *testing.T) {
	bodies := []Body{mustBody(t, 0, 0, 0, 0, 1)}
	c := Clone(bodies)
	c[0].Pos.X = 10
	if bodies[0].Pos.X != 0 {
		t.Error("Clone did not create independent copy")
	}
}

func TestInvariants(t *testing.T) {
	bodies := []Body{
		mustBody(t, 1, 0, 0, 1, 1),
		mustBody(t, -1, 0, 0, -1, 1),
	}

	// ke = 2 * 0.5 * 1 * 1, pe = -1 * 1 * 1 / 2
	if e := Energy(bodies, 1); math.Abs(e-0.5) > 1e-15 {
		t.Errorf("expected energy 0.5, got %g", e)
	}

	if p := Momentum(bodies); p.X != 0 || p.Y != 0 {
		t.Errorf("expected zero momentum, got %v", p)
	}

	if l := AngularMomentum(bodies); math.Abs(l-2) > 1e-15 {
		t.Errorf("expected angular momentum 2, got %g", l)
	}

	if c := CenterOfMass(bodies); c.X != 0 || c.Y != 0 {
		t.Errorf("expected centre of mass at origin, got %v", c)
	}

	if v := CircularSpeed(1, 4, 1); v != 2 {
		t.Errorf("expected circular speed 2, got %g", v)
	}
}
