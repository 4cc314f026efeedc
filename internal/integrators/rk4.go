package integrators

import "github.com/jude-mbroh/n-body-gravity-simulation/internal/dynamo"

// RK4 is the classical fourth-order Runge-Kutta scheme. Each stage
// evaluates the system at x plus a fraction of the previous stage's
// increment; the system decides what else it holds fixed across stages.
//
// An RK4 keeps scratch buffers between calls and must not be shared between
// goroutines.
type RK4 struct {
	k1, k2, k3, k4 dynamo.State
	stage          dynamo.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Name() string { return "rk4" }

func (r *RK4) ensureScratch(n int) {
	if len(r.stage) == n {
		return
	}
	r.k1 = make(dynamo.State, n)
	r.k2 = make(dynamo.State, n)
	r.k3 = make(dynamo.State, n)
	r.k4 = make(dynamo.State, n)
	r.stage = make(dynamo.State, n)
}

// offset writes x + h*k into the stage buffer.
func (r *RK4) offset(x, k dynamo.State, h float64) dynamo.State {
	for i := range x {
		r.stage[i] = x[i] + h*k[i]
	}
	return r.stage
}

// increment stores the stage increment dt*f into k.
func increment(k, f dynamo.State, dt float64) {
	for i := range k {
		k[i] = f[i] * dt
	}
}

// Step scales each slope by dt before it is used, so the stages are
// increments rather than slopes. Rounding then follows the existing
// trajectory files to the last printed digit.
func (r *RK4) Step(sys dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	n := len(x)
	r.ensureScratch(n)
	half := 0.5 * dt

	increment(r.k1, sys.Derive(x, t), dt)
	increment(r.k2, sys.Derive(r.offset(x, r.k1, 0.5), t+half), dt)
	increment(r.k3, sys.Derive(r.offset(x, r.k2, 0.5), t+half), dt)
	increment(r.k4, sys.Derive(r.offset(x, r.k3, 1), t+dt), dt)

	next := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		next[i] = x[i] + (r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])/6
	}
	return next
}
