// Package dynamo provides the core primitives shared by the N-body simulator.
//
// The package defines the fundamental interfaces and types used to integrate
// the equations of motion of a single body:
//
//   - [State]: flat vector representing a body's phase-space state
//   - [System]: interface for autonomous ODE systems (dX/dt = f(X, t))
//   - [Integrator]: fixed-step numerical integrator interface
//
// It also defines the error taxonomy surfaced to the command line:
// [ErrInput] for anything wrong with the initial conditions and [ErrOutput]
// for failures producing the trajectory sink.
//
// # Example
//
//	field := physics.Field{Self: 0, Bodies: bodies, G: 1}
//	integ := integrators.NewRK4()
//	next := integ.Step(field, bodies[0].State(), 0, 0.01)
package dynamo
