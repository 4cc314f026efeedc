package sim_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/jude-mbroh/n-body-gravity-simulation/internal/integrators"
	"github.com/jude-mbroh/n-body-gravity-simulation/internal/physics"
	"github.com/jude-mbroh/n-body-gravity-simulation/internal/sim"
)

func newBody(x, y, vx, vy, m float64) physics.Body {
	b, err := physics.NewBody(r2.Vec{X: x, Y: y}, r2.Vec{X: vx, Y: vy}, m)
	Expect(err).NotTo(HaveOccurred())
	return b
}

func runAll(bodies []physics.Body, cfg sim.Config) []sim.Record {
	s, err := sim.New(bodies, cfg, integrators.NewRK4())
	Expect(err).NotTo(HaveOccurred())

	var records []sim.Record
	_, err = s.Run(sim.SinkFunc(func(r sim.Record) error {
		records = append(records, r)
		return nil
	}))
	Expect(err).NotTo(HaveOccurred())
	return records
}

// pairs groups records of a two-body run by timestep.
func pairs(records []sim.Record) [][2]sim.Record {
	Expect(len(records) % 2).To(Equal(0))
	out := make([][2]sim.Record, 0, len(records)/2)
	for i := 0; i < len(records); i += 2 {
		Expect(records[i].Index).To(Equal(1))
		Expect(records[i+1].Index).To(Equal(2))
		out = append(out, [2]sim.Record{records[i], records[i+1]})
	}
	return out
}

var _ = Describe("Simulator", func() {
	Describe("a lone body", func() {
		It("moves uniformly", func() {
			dt := 0.125
			records := runAll(
				[]physics.Body{newBody(1, -2, 0.75, 1.5, 3)},
				sim.Config{G: 1, Horizon: 5, Dt: dt},
			)

			Expect(records).To(HaveLen(42))
			for _, r := range records {
				// the record labelled t holds the state after the step starting at t
				elapsed := r.T + dt
				Expect(r.X).To(BeNumerically("~", 1+0.75*elapsed, 1e-12))
				Expect(r.Y).To(BeNumerically("~", -2+1.5*elapsed, 1e-12))
				Expect(r.VX).To(Equal(0.75))
				Expect(r.VY).To(Equal(1.5))
			}
		})
	})

	Describe("two equal masses in point-symmetric orbit", func() {
		var bodies []physics.Body
		var cfg sim.Config

		BeforeEach(func() {
			bodies = []physics.Body{
				newBody(1, 0, 0, 0.5, 1),
				newBody(-1, 0, 0, -0.5, 1),
			}
			cfg = sim.Config{G: 1, Horizon: 2, Dt: 0.01}
		})

		It("stay symmetric about the origin when updated synchronously", func() {
			cfg.Update = sim.Synchronized
			for _, p := range pairs(runAll(bodies, cfg)) {
				Expect(p[0].X).To(BeNumerically("~", -p[1].X, 1e-12))
				Expect(p[0].Y).To(BeNumerically("~", -p[1].Y, 1e-12))
				Expect(p[0].VX).To(BeNumerically("~", -p[1].VX, 1e-12))
				Expect(p[0].VY).To(BeNumerically("~", -p[1].VY, 1e-12))
			}
		})

		It("lose symmetry when updated sequentially", func() {
			ps := pairs(runAll(bodies, cfg))
			last := ps[len(ps)-1]

			asym := math.Abs(last[0].X+last[1].X) + math.Abs(last[0].Y+last[1].Y)
			Expect(asym).To(BeNumerically(">", 1e-6))
		})

		It("keep the first body identical across update modes for the first step", func() {
			seq := runAll(bodies, cfg)
			cfg.Update = sim.Synchronized
			syn := runAll(bodies, cfg)

			Expect(seq[0]).To(Equal(syn[0]))
			Expect(seq[1]).NotTo(Equal(syn[1]))
		})
	})

	Describe("a light body in a circular orbit", func() {
		DescribeTable("returns to its starting point after one period",
			func(update sim.UpdateMode) {
				const (
					g     = 1.0
					big   = 1.0
					small = 1e-3
					steps = 6000
				)
				total := big + small
				vRel := physics.CircularSpeed(g, total, 1)
				period := 2 * math.Pi / vRel

				// centre-of-mass frame, so the pair does not drift
				bodies := []physics.Body{
					newBody(0, 0, 0, -vRel*small/total, big),
					newBody(1, 0, 0, vRel*big/total, small),
				}
				cfg := sim.Config{G: g, Horizon: period, Dt: period / steps, Update: update}

				s, err := sim.New(bodies, cfg, integrators.NewRK4())
				Expect(err).NotTo(HaveOccurred())
				for i := 0; i < steps; i++ {
					Expect(s.Step(float64(i) * cfg.Dt)).To(Succeed())
				}

				b := s.Bodies()[1]
				Expect(b.Pos.X).To(BeNumerically("~", 1, 1e-3))
				Expect(b.Pos.Y).To(BeNumerically("~", 0, 1e-3))
			},
			Entry("sequential", sim.Sequential),
			Entry("synchronized", sim.Synchronized),
		)
	})

	Describe("reproducibility", func() {
		It("produces identical trajectories for identical input", func() {
			bodies := []physics.Body{
				newBody(0.97000436, -0.24308753, 0.466203685, 0.43236573, 1),
				newBody(-0.97000436, 0.24308753, 0.466203685, 0.43236573, 1),
				newBody(0, 0, -0.93240737, -0.86473146, 1),
			}
			cfg := sim.Config{G: 1, Horizon: 1, Dt: 0.001}

			Expect(runAll(bodies, cfg)).To(Equal(runAll(bodies, cfg)))
		})
	})

	Describe("stepping", func() {
		It("stops after the horizon and does nothing more", func() {
			s, err := sim.New([]physics.Body{newBody(0, 0, 1, 0, 1)}, sim.Config{G: 1, Horizon: 0.5, Dt: 0.25, Bound: sim.BoundExact}, integrators.NewRK4())
			Expect(err).NotTo(HaveOccurred())

			_, err = s.Run(nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Steps()).To(Equal(3))

			before := s.Bodies()
			_, ok, err := s.Next(nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
			Expect(s.Bodies()).To(Equal(before))
		})
	})
})
