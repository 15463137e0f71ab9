package object

import (
	"github.com/tomz197/collide/internal/draw"
)

// Text is a line of overlay text at a 1-based canvas cell.
type Text struct {
	Col, Row int
	Value    string
}

// Draw writes the text, clamping the position to the canvas origin.
func (t Text) Draw(w *draw.ChunkWriter) {
	if t.Value == "" {
		return
	}
	w.WriteAt(max(t.Col, 1), max(t.Row, 1), t.Value)
}
