package analysis

import (
	"fmt"
	"strings"

	"github.com/jude-mbroh/n-body-gravity-simulation/internal/sim"
)

// Coordinate selects one component of a record.
type Coordinate string

const (
	CoordX  Coordinate = "x"
	CoordY  Coordinate = "y"
	CoordVX Coordinate = "vx"
	CoordVY Coordinate = "vy"
)

func (c Coordinate) value(r sim.Record) (float64, error) {
	switch c {
	case CoordX:
		return r.X, nil
	case CoordY:
		return r.Y, nil
	case CoordVX:
		return r.VX, nil
	case CoordVY:
		return r.VY, nil
	}
	return 0, fmt.Errorf("unknown coordinate %q (want x, y, vx or vy)", string(c))
}

type Point struct{ X, Y float64 }

// Portrait is one body's trajectory projected onto two coordinates.
type Portrait struct {
	Body   int
	XAxis  Coordinate
	YAxis  Coordinate
	Points []Point
}

// Series extracts one coordinate of one body, in record order.
func Series(records []sim.Record, body int, c Coordinate) ([]float64, error) {
	var out []float64
	for _, r := range records {
		if r.Index != body {
			continue
		}
		v, err := c.value(r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// PhasePortrait projects the records of body (1-based) onto the xAxis and
// yAxis coordinates.
func PhasePortrait(records []sim.Record, body int, xAxis, yAxis Coordinate) (*Portrait, error) {
	xs, err := Series(records, body, xAxis)
	if err != nil {
		return nil, err
	}
	ys, err := Series(records, body, yAxis)
	if err != nil {
		return nil, err
	}

	p := &Portrait{Body: body, XAxis: xAxis, YAxis: yAxis, Points: make([]Point, len(xs))}
	for i := range xs {
		p.Points[i] = Point{X: xs[i], Y: ys[i]}
	}
	return p, nil
}

// PoincareSection records body's (xAxis, yAxis) state each time the cross
// coordinate passes upward through threshold.
func PoincareSection(records []sim.Record, body int, cross Coordinate, threshold float64, xAxis, yAxis Coordinate) (*Portrait, error) {
	full, err := PhasePortrait(records, body, xAxis, yAxis)
	if err != nil {
		return nil, err
	}
	trigger, err := Series(records, body, cross)
	if err != nil {
		return nil, err
	}

	section := &Portrait{Body: body, XAxis: xAxis, YAxis: yAxis}
	for i := 1; i < len(trigger); i++ {
		if trigger[i-1] < threshold && trigger[i] >= threshold {
			section.Points = append(section.Points, full.Points[i])
		}
	}
	return section, nil
}

// ToASCII plots the portrait on a width x height character grid, with axes
// drawn where zero is in range.
func (p *Portrait) ToASCII(width, height int) string {
	if p == nil || len(p.Points) == 0 {
		return "no points\n"
	}

	minX, maxX := p.Points[0].X, p.Points[0].X
	minY, maxY := p.Points[0].Y, p.Points[0].Y
	for _, pt := range p.Points {
		minX, maxX = min(minX, pt.X), max(maxX, pt.X)
		minY, maxY = min(minY, pt.Y), max(maxY, pt.Y)
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
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}

	for _, pt := range p.Points {
		col := int((pt.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((pt.Y-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			grid[row][col] = '•'
		}
	}

	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if grid[row][col] == ' ' {
				grid[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if grid[row][col] == ' ' {
				grid[row][col] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, row := range grid {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
