package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/collide/internal/vector"
)

func TestClampTermSize(t *testing.T) {
	tests := []struct {
		name                   string
		w, h                   int
		wantW, wantH, col, row int
	}{
		{"fits", 100, 40, 100, 40, 0, 0},
		{"wide", 200, 40, 160, 40, 20, 0},
		{"both", 200, 70, 160, 60, 20, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, col, row := ClampTermSize(tt.w, tt.h, 160, 60)
			assert.Equal(t, []int{tt.wantW, tt.wantH, tt.col, tt.row}, []int{w, h, col, row})
		})
	}
}

func TestFromVector(t *testing.T) {
	assert.Equal(t, Point{X: 1.5, Y: -2}, FromVector(vector.New(1.5, -2)))
}

func TestCanvasDrawLine(t *testing.T) {
	// 10 columns x 5 rows maps 1:1 onto a 10x10 logical area.
	c := NewCanvas(10, 5, 10, 10)
	c.DrawLine(Point{X: 0, Y: 0}, Point{X: 9, Y: 0})
	for x := range 10 {
		assert.True(t, c.Pixel(x, 0), "x=%d", x)
	}
	assert.False(t, c.Pixel(0, 1))

	c.Clear()
	assert.False(t, c.Pixel(0, 0))
}

func TestCanvasOutOfBounds(t *testing.T) {
	c := NewCanvas(4, 2, 4, 4)
	c.DrawLine(Point{X: -10, Y: -10}, Point{X: 20, Y: 20})
	assert.False(t, c.Pixel(-1, 0))
	assert.False(t, c.Pixel(4, 0))
	assert.True(t, c.Pixel(0, 0))
}

func TestCanvasFilledPolygon(t *testing.T) {
	c := NewCanvas(20, 10, 20, 20)
	square := []Point{{X: 2, Y: 2}, {X: 12, Y: 2}, {X: 12, Y: 12}, {X: 2, Y: 12}}
	c.DrawPolygon(square, true)
	assert.True(t, c.Pixel(7, 7))
	assert.False(t, c.Pixel(15, 15))

	c.Clear()
	c.DrawPolygon(square, false)
	assert.False(t, c.Pixel(7, 7))
	assert.True(t, c.Pixel(2, 7))
}

func TestCanvasCircle(t *testing.T) {
	c := NewCanvas(20, 10, 20, 20)
	c.DrawCircle(Point{X: 10, Y: 10}, 5, true)
	assert.True(t, c.Pixel(10, 10))
	assert.False(t, c.Pixel(1, 1))

	c.Clear()
	c.DrawCircle(Point{X: 10, Y: 10}, 5, false)
	assert.False(t, c.Pixel(10, 10))
	assert.True(t, c.Pixel(15, 10))
}

func TestCanvasRender(t *testing.T) {
	c := NewCanvas(2, 1, 2, 2)
	c.Plot(Point{X: 0, Y: 0})
	c.Plot(Point{X: 0, Y: 1})
	c.Plot(Point{X: 1, Y: 1})

	var buf bytes.Buffer
	require.NoError(t, c.Render(&buf))
	assert.Equal(t, "\033[1;1H█\033[1;2H▄", buf.String())
}

func TestCanvasBorderNeedsOffset(t *testing.T) {
	c := NewCanvas(3, 2, 3, 4)
	var buf bytes.Buffer
	require.NoError(t, c.RenderBorder(&buf))
	assert.Empty(t, buf.String())

	c.SetOffset(1, 1)
	require.NoError(t, c.RenderBorder(&buf))
	assert.True(t, strings.HasPrefix(buf.String(), "\033[1;1H┌───┐"))
}

func TestChunkWriter(t *testing.T) {
	var buf bytes.Buffer
	cw := NewChunkWriter(&buf, 2, 3)
	cw.WriteAt(1, 1, "hi")
	assert.Equal(t, 0, buf.Len())

	require.NoError(t, cw.Flush())
	assert.Equal(t, "\033[4;3Hhi", buf.String())
	assert.Zero(t, cw.Len())
}

func TestChunkWriterLargeFrame(t *testing.T) {
	var buf bytes.Buffer
	cw := NewChunkWriter(&buf, 0, 0)
	big := strings.Repeat("x", 3*maxChunkSize+7)
	_, err := cw.Write([]byte(big))
	require.NoError(t, err)
	require.NoError(t, cw.Flush())
	assert.Equal(t, big, buf.String())
}
