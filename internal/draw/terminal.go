package draw

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// ChunkWriter batches a frame of terminal output and flushes it in chunks.
// Cursor positions passed to MoveCursor and WriteAt are 1-based canvas cells;
// the canvas offset is added automatically.
type ChunkWriter struct {
	buf    strings.Builder
	out    *bufio.Writer
	num    [20]byte
	offCol int
	offRow int
}

var _ io.Writer = (*ChunkWriter)(nil)

// NewChunkWriter returns a ChunkWriter writing to w.
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		out:    bufio.NewWriterSize(w, 8192),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset updates the cursor offset after a resize.
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol, cw.offRow = offsetCol, offsetRow
}

// MoveCursor appends a cursor position sequence.
func (cw *ChunkWriter) MoveCursor(col, row int) {
	cw.buf.WriteString("\033[")
	cw.buf.Write(strconv.AppendInt(cw.num[:0], int64(row+cw.offRow), 10))
	cw.buf.WriteByte(';')
	cw.buf.Write(strconv.AppendInt(cw.num[:0], int64(col+cw.offCol), 10))
	cw.buf.WriteByte('H')
}

// WriteAt writes s starting at the given canvas cell.
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.MoveCursor(col, row)
	cw.buf.WriteString(s)
}

func (cw *ChunkWriter) Write(p []byte) (int, error) {
	return cw.buf.Write(p)
}

// Len returns the number of buffered bytes.
func (cw *ChunkWriter) Len() int {
	return cw.buf.Len()
}

// Flush writes the buffered frame and resets the buffer.
func (cw *ChunkWriter) Flush() error {
	data := cw.buf.String()
	cw.buf.Reset()
	if err := writeChunked(cw.out, data); err != nil {
		return err
	}
	return cw.out.Flush()
}
