package config

import (
	"sort"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/jude-mbroh/n-body-gravity-simulation/internal/physics"
)

// Preset is a named set of initial conditions. Each body row is
// x, y, vx, vy, mass.
type Preset struct {
	Description string
	G, T, Dt    float64
	Bodies      [][5]float64
}

var Presets = map[string]Preset{
	"binary": {
		Description: "two equal masses on a shared circular orbit",
		G:           1, T: 12.566, Dt: 0.01,
		Bodies: [][5]float64{
			{1, 0, 0, 0.5, 1},
			{-1, 0, 0, -0.5, 1},
		},
	},
	"orbit": {
		Description: "light planet on a near-circular orbit around a heavy star",
		G:           1, T: 6.283185307179586, Dt: 0.001,
		Bodies: [][5]float64{
			{0, 0, 0, 0, 1},
			{1, 0, 0, 1, 0.001},
		},
	},
	"figure8": {
		Description: "three equal masses chasing each other along a figure eight",
		G:           1, T: 6.3259, Dt: 0.001,
		Bodies: [][5]float64{
			{0.97000436, -0.24308753, 0.466203685, 0.43236573, 1},
			{-0.97000436, 0.24308753, 0.466203685, 0.43236573, 1},
			{0, 0, -0.93240737, -0.86473146, 1},
		},
	},
	"trio": {
		Description: "Pythagorean three-body problem, masses 3, 4 and 5 released from rest",
		G:           1, T: 10, Dt: 0.001,
		Bodies: [][5]float64{
			{1, 3, 0, 0, 3},
			{-2, -1, 0, 0, 4},
			{1, -1, 0, 0, 5},
		},
	},
}

// GetPreset returns the named preset as parameters, or nil when it does not
// exist.
func GetPreset(name string) *Parameters {
	preset, ok := Presets[name]
	if !ok {
		return nil
	}

	p := &Parameters{G: preset.G, T: preset.T, Dt: preset.Dt}
	for _, row := range preset.Bodies {
		b, err := physics.NewBody(r2.Vec{X: row[0], Y: row[1]}, r2.Vec{X: row[2], Y: row[3]}, row[4])
		if err != nil {
			// presets are compiled in; a bad row is a programming error
			panic("config: invalid preset " + name + ": " + err.Error())
		}
		p.Bodies = append(p.Bodies, b)
	}
	return p
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
