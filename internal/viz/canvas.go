package viz

import (
	"math"
	"strings"

	"github.com/san-kum/rigidsim/internal/metrics"
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

const blank = 0x2800

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
	}
	c.Clear()
	return c
}

// Set lights the dot at (x, y) in sub-pixel coordinates, where the canvas
// is Width*2 dots wide and Height*4 dots tall.
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

func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
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

// Point is a position in the x-z plane.
type Point struct {
	X, Y float64
}

// Bounds is the smallest box holding every point of every path. An empty
// set of paths gives the unit box.
func Bounds(paths [][]Point) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, path := range paths {
		for _, p := range path {
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		}
	}
	if math.IsInf(minX, 1) {
		return 0, 0, 1, 1
	}
	if maxX == minX {
		maxX = minX + 1
	}
	if maxY == minY {
		maxY = minY + 1
	}
	return minX, minY, maxX, maxY
}

// Plot draws each path as connected segments, scaled to fill the canvas
// with y pointing up.
func (c *Canvas) Plot(paths [][]Point) {
	minX, minY, maxX, maxY := Bounds(paths)
	w, h := float64(c.Width*2-1), float64(c.Height*4-1)

	project := func(p Point) (int, int) {
		x := (p.X - minX) / (maxX - minX) * w
		y := h - (p.Y-minY)/(maxY-minY)*h
		return int(math.Round(x)), int(math.Round(y))
	}

	for _, path := range paths {
		for i, p := range path {
			x, y := project(p)
			if i == 0 {
				c.Set(x, y)
				continue
			}
			px, py := project(path[i-1])
			c.DrawLine(px, py, x, y)
		}
	}
}

// PathsXZ splits a recording into one x-z path per body.
func PathsXZ(rec *metrics.Recording) [][]Point {
	paths := make([][]Point, rec.Bodies())
	for _, sample := range rec.Positions {
		for i, p := range sample {
			if i < len(paths) {
				paths[i] = append(paths[i], Point{X: p.X(), Y: p.Z()})
			}
		}
	}
	return paths
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
