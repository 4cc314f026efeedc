package export

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/jude-mbroh/n-body-gravity-simulation/internal/sim"
	"github.com/jude-mbroh/n-body-gravity-simulation/internal/viz"
)

// CanvasToSVG renders every set braille dot of canvas as a circle. scale
// is the size of one sub-pixel.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#00ff00">
`, width, height, width, height))

	pixelMap := [4][2]int{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}

	dotRadius := scale * 0.4

	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r < 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, dotRadius))
					}
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// Palette colours the first body paths in order.
var Palette = []string{"#ffcc6f", "#9db4ff", "#ff6b6b", "#7cffb2", "#ff9ff3", "#00ccff", "#feca57", "#ffffff"}

// BodyColor returns the stroke colour of the n-th path (0-based). Past the
// palette, hues advance by the golden angle so neighbours stay distinct.
func BodyColor(n int) string {
	if n < len(Palette) {
		return Palette[n]
	}
	hue := math.Mod(float64(n-len(Palette))*137.508, 360)
	return colorful.Hcl(hue, 0.6, 0.75).Clamped().Hex()
}

// TrajectoriesToSVG draws one path per body from records. All bodies share
// one scale so relative distances are preserved. The start of each path is
// marked with a dot.
func TrajectoriesToSVG(records []sim.Record, width, height int) string {
	if len(records) == 0 {
		return ""
	}

	paths := make(map[int][]sim.Record)
	minX, maxX := records[0].X, records[0].X
	minY, maxY := records[0].Y, records[0].Y
	for _, r := range records {
		paths[r.Index] = append(paths[r.Index], r)
		minX, maxX = math.Min(minX, r.X), math.Max(maxX, r.X)
		minY, maxY = math.Min(minY, r.Y), math.Max(maxY, r.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	scale := math.Min(float64(width)/rangeX, float64(height)/rangeY)
	offX := (float64(width) - rangeX*scale) / 2
	offY := (float64(height) - rangeY*scale) / 2
	project := func(x, y float64) (float64, float64) {
		return offX + (x-minX)*scale, float64(height) - offY - (y-minY)*scale
	}

	indices := make([]int, 0, len(paths))
	for idx := range paths {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#05060f"/>
`, width, height, width, height))

	for n, idx := range indices {
		color := BodyColor(n)
		pts := paths[idx]

		sb.WriteString(fmt.Sprintf(`<path id="body-%d" fill="none" stroke="%s" stroke-width="1.5" d="M`, idx, color))
		for i, r := range pts {
			x, y := project(r.X, r.Y)
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")

		x, y := project(pts[0].X, pts[0].Y)
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="3" fill="%s"/>
`, x, y, color))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// TrajectoriesToCanvas plots every record as a dot on a braille canvas of
// w x h cells.
func TrajectoriesToCanvas(records []sim.Record, w, h int) *viz.Canvas {
	canvas := viz.NewCanvas(w, h)
	if len(records) == 0 {
		return canvas
	}

	xs := make([]float64, len(records))
	ys := make([]float64, len(records))
	for i, r := range records {
		xs[i], ys[i] = r.X, r.Y
	}
	proj := viz.Fit(xs, ys, canvas.SubWidth(), canvas.SubHeight(), 0.05)
	for _, r := range records {
		if px, py, ok := proj.Project(r.X, r.Y); ok {
			canvas.Set(px, py)
		}
	}
	return canvas
}
