// Package draw renders shapes to a terminal using half-block characters.
package draw

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/tomz197/collide/internal/vector"
)

// Point is a 2D coordinate in logical canvas space.
type Point struct {
	X, Y float64
}

// FromVector converts a geometry vector to a canvas point.
func FromVector(v vector.Vector2D) Point {
	return Point{X: float64(v.X), Y: float64(v.Y)}
}

// Block characters used by Render.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// TermSizeFunc returns the terminal dimensions in columns and rows.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc reads the size of os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// ClearScreen clears the terminal and moves the cursor to the top-left.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25h")
}

// ClampTermSize limits the render area to maxWidth x maxHeight and returns
// the offsets that center it in the terminal.
func ClampTermSize(termWidth, termHeight, maxWidth, maxHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, maxWidth)
	renderHeight = min(termHeight, maxHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
