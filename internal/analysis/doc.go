// Package analysis characterises trajectories produced by the simulator.
//
//   - [Lyapunov]: largest Lyapunov exponent from two nearby runs
//   - [PhasePortrait]: one body's trajectory in a chosen pair of coordinates
//   - [PoincareSection]: states recorded at upward crossings of a threshold
//   - [DominantPeriod]: strongest period in a sampled coordinate
//
// # Chaos Detection
//
// A clearly positive exponent marks sensitive dependence on initial
// conditions:
//
//	lambda, err := analysis.Lyapunov(bodies, cfg, integ, 1e-8)
//	if lambda > 0 {
//	    // nearby trajectories diverge
//	}
package analysis
