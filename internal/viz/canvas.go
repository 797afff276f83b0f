package viz

import (
	"math"
	"strings"
)

// Braille cells are 2x4 dots:
//
//	1 4
//	2 5
//	3 6
//	7 8
//
// offset from U+2800.
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

// Canvas is a Width x Height grid of Braille cells, addressed in dots:
// (Width*2) x (Height*4).
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
			c.Grid[i][j] = brailleBlank
		}
	}
	return c
}

// Set lights the dot at (x, y). Out of range dots are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// IsSet reports whether the dot at (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

// DrawLine draws a line using Bresenham's algorithm.
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

// PlotFunction draws f over [lo, hi], scaled vertically to the range of f
// on that interval, and returns the y range used. The x axis is drawn when
// zero lies inside the range and each root in roots is marked with a tick.
func (c *Canvas) PlotFunction(f func(float64) float64, lo, hi float64, roots []float64) (ymin, ymax float64) {
	w, h := c.Width*2, c.Height*4
	if w < 2 || h < 2 || hi <= lo {
		return 0, 0
	}

	ys := make([]float64, w)
	ymin, ymax = math.Inf(1), math.Inf(-1)
	for i := range ys {
		ys[i] = f(lo + (hi-lo)*float64(i)/float64(w-1))
		if math.IsNaN(ys[i]) || math.IsInf(ys[i], 0) {
			continue
		}
		ymin = math.Min(ymin, ys[i])
		ymax = math.Max(ymax, ys[i])
	}
	if math.IsInf(ymin, 1) {
		return 0, 0
	}
	if ymax == ymin {
		ymin, ymax = ymin-1, ymax+1
	}

	row := func(v float64) int {
		return int(math.Round(float64(h-1) * (ymax - v) / (ymax - ymin)))
	}

	if ymin <= 0 && ymax >= 0 {
		y0 := row(0)
		for x := 0; x < w; x += 2 {
			c.Set(x, y0)
		}
		for _, r := range roots {
			if r < lo || r > hi {
				continue
			}
			x := int(math.Round(float64(w-1) * (r - lo) / (hi - lo)))
			for dy := -2; dy <= 2; dy++ {
				c.Set(x, y0+dy)
			}
		}
	}

	prev := -1
	for x, v := range ys {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			prev = -1
			continue
		}
		y := row(v)
		if prev >= 0 {
			c.DrawLine(x-1, prev, x, y)
		} else {
			c.Set(x, y)
		}
		prev = y
	}
	return ymin, ymax
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
