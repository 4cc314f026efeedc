package viz

import (
	"math"
	"strings"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800 // Empty braille char
		}
	}
	return c
}

// SubWidth and SubHeight are the canvas size in sub-pixels.
func (c *Canvas) SubWidth() int  { return c.Width * 2 }
func (c *Canvas) SubHeight() int { return c.Height * 4 }

// Set sets a pixel at (x, y) where x,y are in "sub-pixel" coordinates.
// The canvas size in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	// Early bounds check for negative coordinates
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	subX := x % 2
	subY := y % 4

	c.Grid[row][col] |= rune(pixelMap[subY][subX])
}

// Unset clears a pixel
func (c *Canvas) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	subX := x % 2
	subY := y % 4

	mask := ^rune(pixelMap[subY][subX])
	c.Grid[row][col] &= mask
	if c.Grid[row][col] < 0x2800 {
		c.Grid[row][col] = 0x2800
	}
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Projection maps world coordinates onto canvas sub-pixels with equal
// scale on both axes. The world y axis points up.
type Projection struct {
	CenterX, CenterY float64
	Scale            float64 // sub-pixels per world unit
	W, H             int
}

// Fit returns a projection showing the box spanned by xs and ys, enlarged
// by margin (0.25 adds a quarter of the extent on every side).
func Fit(xs, ys []float64, w, h int, margin float64) Projection {
	p := Projection{Scale: 1, W: w, H: h}
	if len(xs) == 0 || len(xs) != len(ys) {
		return p
	}

	minX, maxX := xs[0], xs[0]
	minY, maxY := ys[0], ys[0]
	for i := range xs {
		minX, maxX = math.Min(minX, xs[i]), math.Max(maxX, xs[i])
		minY, maxY = math.Min(minY, ys[i]), math.Max(maxY, ys[i])
	}

	p.CenterX = (minX + maxX) / 2
	p.CenterY = (minY + maxY) / 2

	spanX := (maxX - minX) * (1 + 2*margin)
	spanY := (maxY - minY) * (1 + 2*margin)
	if spanX == 0 && spanY == 0 {
		spanX, spanY = 1, 1
	}

	sx, sy := math.Inf(1), math.Inf(1)
	if spanX > 0 {
		sx = float64(w-1) / spanX
	}
	if spanY > 0 {
		sy = float64(h-1) / spanY
	}
	p.Scale = math.Min(sx, sy)
	return p
}

// Project returns the sub-pixel of world point (x, y). ok is false when it
// falls outside the canvas.
func (p Projection) Project(x, y float64) (px, py int, ok bool) {
	px = int(math.Round(float64(p.W-1)/2 + (x-p.CenterX)*p.Scale))
	py = int(math.Round(float64(p.H-1)/2 - (y-p.CenterY)*p.Scale))
	ok = px >= 0 && py >= 0 && px < p.W && py < p.H
	return px, py, ok
}

// Zoom scales the view about its centre.
func (p Projection) Zoom(factor float64) Projection {
	p.Scale *= factor
	return p
}
