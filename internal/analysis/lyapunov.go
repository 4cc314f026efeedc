package analysis

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/jude-mbroh/n-body-gravity-simulation/internal/dynamo"
	"github.com/jude-mbroh/n-body-gravity-simulation/internal/physics"
	"github.com/jude-mbroh/n-body-gravity-simulation/internal/sim"
)

// Lyapunov estimates the largest Lyapunov exponent of a configuration by
// running it alongside a copy whose first body is displaced by
// perturbation along x. The separation is measured over every body's
// phase-space vector and renormalised back to perturbation after each
// step, so the estimate is the mean logarithmic growth rate per unit time.
func Lyapunov(bodies []physics.Body, cfg sim.Config, integ dynamo.Integrator, perturbation float64) (float64, error) {
	if perturbation <= 0 {
		return 0, errors.New("perturbation must be positive")
	}
	if len(bodies) == 0 {
		return 0, dynamo.ErrNoBodies
	}

	shifted := physics.Clone(bodies)
	shifted[0].Pos = r2.Add(shifted[0].Pos, r2.Vec{X: perturbation})

	ref, err := sim.New(bodies, cfg, integ)
	if err != nil {
		return 0, err
	}
	pert, err := sim.New(shifted, cfg, integ)
	if err != nil {
		return 0, err
	}

	sumLog := 0.0
	elapsed := 0.0
	for !ref.Done() {
		if _, _, err := ref.Next(nil); err != nil {
			return 0, err
		}
		if _, _, err := pert.Next(nil); err != nil {
			return 0, err
		}
		elapsed += cfg.Dt

		a, b := ref.Bodies(), pert.Bodies()
		sep := separation(a, b)
		if sep == 0 {
			continue
		}
		sumLog += math.Log(sep / perturbation)

		// pull the shadow trajectory back along the separation direction
		scale := perturbation / sep
		for i := range b {
			b[i].Pos = r2.Add(a[i].Pos, r2.Scale(scale, r2.Sub(b[i].Pos, a[i].Pos)))
			b[i].Vel = r2.Add(a[i].Vel, r2.Scale(scale, r2.Sub(b[i].Vel, a[i].Vel)))
		}
		if err := pert.SetBodies(b); err != nil {
			return 0, err
		}
	}

	if elapsed == 0 {
		return 0, nil
	}
	return sumLog / elapsed, nil
}

func separation(a, b []physics.Body) float64 {
	sum := 0.0
	for i := range a {
		dp := r2.Sub(b[i].Pos, a[i].Pos)
		dv := r2.Sub(b[i].Vel, a[i].Vel)
		sum += r2.Norm2(dp) + r2.Norm2(dv)
	}
	return math.Sqrt(sum)
}
