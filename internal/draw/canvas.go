package draw

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
)

// maxChunkSize bounds a single write so frames stream smoothly over SSH.
const maxChunkSize = 1400

// Canvas is a pixel buffer with two sub-pixels per terminal row. Drawing
// calls take logical coordinates, which are scaled to the terminal size.
type Canvas struct {
	cols, rows int
	pixH       int    // rows * 2
	pixels     []bool // [y*cols + x]

	logicalW, logicalH float64
	scaleX, scaleY     float64

	offsetCol, offsetRow int

	renderBuf strings.Builder
	scaled    []Point
	xs        []float64
}

// NewCanvas creates a canvas of cols x rows terminal cells mapping a logical
// area of logicalW x logicalH.
func NewCanvas(cols, rows int, logicalW, logicalH float64) *Canvas {
	c := &Canvas{logicalW: logicalW, logicalH: logicalH}
	c.Resize(cols, rows)
	return c
}

// Resize adapts the canvas to a new terminal size, keeping the logical area.
func (c *Canvas) Resize(cols, rows int) {
	if cols != c.cols || rows != c.rows {
		c.cols, c.rows, c.pixH = cols, rows, rows*2
		c.pixels = make([]bool, c.pixH*cols)
	}
	c.scaleX = float64(cols) / c.logicalW
	c.scaleY = float64(c.pixH) / c.logicalH
}

// SetOffset places the canvas origin at terminal cell (col+1, row+1).
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol, c.offsetRow = col, row
}

// Clear resets all pixels.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// Columns returns the terminal column count.
func (c *Canvas) Columns() int { return c.cols }

// Rows returns the terminal row count.
func (c *Canvas) Rows() int { return c.rows }

// Pixel reports whether the pixel at terminal sub-pixel (x, y) is set.
func (c *Canvas) Pixel(x, y int) bool {
	if x < 0 || x >= c.cols || y < 0 || y >= c.pixH {
		return false
	}
	return c.pixels[y*c.cols+x]
}

func (c *Canvas) setPixel(x, y int) {
	if x >= 0 && x < c.cols && y >= 0 && y < c.pixH {
		c.pixels[y*c.cols+x] = true
	}
}

func (c *Canvas) toPixel(p Point) (int, int) {
	return int(math.Round(p.X * c.scaleX)), int(math.Round(p.Y * c.scaleY))
}

// Plot sets the pixel under a logical point.
func (c *Canvas) Plot(p Point) {
	c.setPixel(c.toPixel(p))
}

// DrawLine draws a segment with Bresenham's algorithm.
func (c *Canvas) DrawLine(p1, p2 Point) {
	x1, y1 := c.toPixel(p1)
	x2, y2 := c.toPixel(p2)

	dx, dy := abs(x2-x1), abs(y2-y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy
	for {
		c.setPixel(x1, y1)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawPolygon draws the closed outline of points, filling it when filled is
// set. Fewer than two points draw a single dot.
func (c *Canvas) DrawPolygon(points []Point, filled bool) {
	switch len(points) {
	case 0:
		return
	case 1:
		c.Plot(points[0])
		return
	}
	if filled && len(points) >= 3 {
		c.fillPolygon(points)
	}
	for i := range points {
		c.DrawLine(points[i], points[(i+1)%len(points)])
	}
}

// DrawCircle draws a circle outline, or a disc when filled is set.
func (c *Canvas) DrawCircle(center Point, radius float64, filled bool) {
	if filled {
		cx, cy := c.toPixel(center)
		rx := radius * c.scaleX
		ry := radius * c.scaleY
		for y := int(math.Floor(-ry)); y <= int(math.Ceil(ry)); y++ {
			for x := int(math.Floor(-rx)); x <= int(math.Ceil(rx)); x++ {
				fx, fy := float64(x)/rx, float64(y)/ry
				if fx*fx+fy*fy <= 1 {
					c.setPixel(cx+x, cy+y)
				}
			}
		}
		return
	}

	// Segment count grows with the on-screen circumference.
	steps := max(12, int(2*math.Pi*radius*max(c.scaleX, c.scaleY)))
	prev := Point{X: center.X + radius, Y: center.Y}
	for i := 1; i <= steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		next := Point{X: center.X + radius*math.Cos(a), Y: center.Y + radius*math.Sin(a)}
		c.DrawLine(prev, next)
		prev = next
	}
}

// DrawArrow draws a segment from -> to with a small head at to.
func (c *Canvas) DrawArrow(from, to Point) {
	c.DrawLine(from, to)
	dx, dy := to.X-from.X, to.Y-from.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	dx, dy = dx/l, dy/l
	head := min(2.0, l/2)
	for _, side := range [2]float64{1, -1} {
		c.DrawLine(to, Point{
			X: to.X - head*(dx-side*dy*0.5),
			Y: to.Y - head*(dy+side*dx*0.5),
		})
	}
}

// fillPolygon fills points with a scanline pass in pixel space.
func (c *Canvas) fillPolygon(points []Point) {
	if cap(c.scaled) < len(points) {
		c.scaled = make([]Point, len(points))
	}
	scaled := c.scaled[:len(points)]
	minY, maxY := math.Inf(1), math.Inf(-1)
	for i, p := range points {
		scaled[i] = Point{X: p.X * c.scaleX, Y: p.Y * c.scaleY}
		minY = min(minY, scaled[i].Y)
		maxY = max(maxY, scaled[i].Y)
	}

	for y := int(math.Floor(minY)); y <= int(math.Ceil(maxY)); y++ {
		scanY := float64(y) + 0.5
		xs := c.xs[:0]
		for i := range scaled {
			p1, p2 := scaled[i], scaled[(i+1)%len(scaled)]
			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				xs = append(xs, p1.X+t*(p2.X-p1.X))
			}
		}
		c.xs = xs
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for x := int(math.Ceil(xs[i])); x <= int(math.Floor(xs[i+1])); x++ {
				c.setPixel(x, y)
			}
		}
	}
}

// Render writes the set pixels as half-block characters. Empty cells are
// skipped, so the screen must be cleared beforehand.
func (c *Canvas) Render(w io.Writer) error {
	c.renderBuf.Reset()
	for row := 0; row < c.rows; row++ {
		top := row * 2 * c.cols
		bottom := top + c.cols
		for col := 0; col < c.cols; col++ {
			var ch rune
			switch t, b := c.pixels[top+col], c.pixels[bottom+col]; {
			case t && b:
				ch = BlockFull
			case t:
				ch = BlockUpperHalf
			case b:
				ch = BlockLowerHalf
			default:
				continue
			}
			fmt.Fprintf(&c.renderBuf, "\033[%d;%dH%c", row+1+c.offsetRow, col+1+c.offsetCol, ch)
		}
	}
	return writeChunked(w, c.renderBuf.String())
}

// RenderBorder frames the canvas when it is offset inside a larger terminal.
func (c *Canvas) RenderBorder(w io.Writer) error {
	if c.offsetCol < 1 || c.offsetRow < 1 {
		return nil
	}
	left, right := c.offsetCol, c.offsetCol+c.cols+1
	top, bottom := c.offsetRow, c.offsetRow+c.rows+1
	line := strings.Repeat("─", c.cols)

	var b strings.Builder
	fmt.Fprintf(&b, "\033[%d;%dH┌%s┐", top, left, line)
	fmt.Fprintf(&b, "\033[%d;%dH└%s┘", bottom, left, line)
	for row := top + 1; row < bottom; row++ {
		fmt.Fprintf(&b, "\033[%d;%dH│\033[%d;%dH│", row, left, row, right)
	}
	return writeChunked(w, b.String())
}

func writeChunked(w io.Writer, data string) error {
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := io.WriteString(w, data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}
