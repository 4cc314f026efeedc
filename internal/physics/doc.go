// Package physics provides the gravitational model of the N-body simulator.
//
// It defines the point-mass [Body], the direct-summation force evaluator
// [Acceleration] and the per-body [Field] that adapts the force evaluator to
// the [dynamo.System] interface so any [dynamo.Integrator] can advance one
// body against a read-only view of the others:
//
//   - [Body]: mass, position and velocity of one point mass
//   - [Acceleration]: net gravitational acceleration at a sample position
//   - [ZeroSeparation]: what to do when a separation is exactly zero
//   - [Field]: dX/dt = (vx, vy, ax(x, y), ay(x, y)) for a single body
//
// # Conserved quantities
//
// [Energy], [Momentum] and [AngularMomentum] compute the invariants of the
// unsoftened two-dimensional problem and are used by the drift metrics:
//
//	e0 := physics.Energy(bodies, g)
//	// ... advance ...
//	drift := math.Abs(physics.Energy(bodies, g)-e0) / math.Abs(e0)
package physics
