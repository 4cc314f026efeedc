package integrators

import "github.com/jude-mbroh/n-body-gravity-simulation/internal/dynamo"

// Verlet is velocity Verlet. The state is split in half: positions first,
// velocities second, so the derivative's second half is the acceleration.
type Verlet struct {
	scratch dynamo.State
}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (v *Verlet) Name() string { return "verlet" }

func (v *Verlet) Step(sys dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	n := len(x)
	half := n / 2
	if len(v.scratch) != n {
		v.scratch = make(dynamo.State, n)
	}

	next := make(dynamo.State, n)
	a0 := sys.Derive(x, t)

	for i := 0; i < half; i++ {
		next[i] = x[i] + x[half+i]*dt + 0.5*a0[half+i]*dt*dt
		v.scratch[i] = next[i]
		v.scratch[half+i] = x[half+i]
	}

	a1 := sys.Derive(v.scratch, t+dt)
	for i := 0; i < half; i++ {
		next[half+i] = x[half+i] + 0.5*(a0[half+i]+a1[half+i])*dt
	}

	return next
}

// Leapfrog is the kick-drift-kick form of the leapfrog scheme with the same
// state layout as Verlet.
type Leapfrog struct {
	scratch dynamo.State
}

func NewLeapfrog() *Leapfrog {
	return &Leapfrog{}
}

func (l *Leapfrog) Name() string { return "leapfrog" }

func (l *Leapfrog) Step(sys dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	n := len(x)
	half := n / 2
	if len(l.scratch) != n {
		l.scratch = make(dynamo.State, n)
	}

	next := make(dynamo.State, n)
	a0 := sys.Derive(x, t)

	// kick, drift
	for i := 0; i < half; i++ {
		l.scratch[half+i] = x[half+i] + 0.5*a0[half+i]*dt
		next[i] = x[i] + l.scratch[half+i]*dt
		l.scratch[i] = next[i]
	}

	// kick
	a1 := sys.Derive(l.scratch, t+dt)
	for i := 0; i < half; i++ {
		next[half+i] = l.scratch[half+i] + 0.5*a1[half+i]*dt
	}

	return next
}
