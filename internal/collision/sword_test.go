package collision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/collide/internal/polygon"
	"github.com/tomz197/collide/internal/vector"
)

func TestSword(t *testing.T) {
	// Edge 0->1 runs along +x, so its outward normal points up (-y).
	blade := poly(t, 0, 0, 1, 0, 1, 1, 0, 1)

	tests := []struct {
		name   string
		center vector.Vector2D
		radius float32
		depth  float32
	}{
		{name: "clear of the edge", center: vector.New(0.5, -2), radius: 1, depth: -1},
		{name: "touching", center: vector.New(0.5, -1), radius: 1, depth: 0},
		{name: "crossed", center: vector.New(0.5, -0.5), radius: 1, depth: 0.5},
		{name: "beyond the edge span", center: vector.New(10, -0.5), radius: 1, depth: 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Sword(tt.center, tt.radius, blade)
			require.NoError(t, err)
			assert.InDelta(t, tt.depth, res.Depth, tolerance)
			assert.InDelta(t, 0.0, res.Dir.X, tolerance)
			assert.InDelta(t, 1.0, res.Dir.Y, tolerance)
		})
	}
}

func TestSwordOnlyUsesFirstEdge(t *testing.T) {
	// Rotating the vertex order changes which edge the probe measures.
	a := poly(t, 0, 0, 1, 0, 1, 1, 0, 1)
	b := poly(t, 1, 0, 1, 1, 0, 1, 0, 0)
	center := vector.New(0.5, 0.5)

	ra, err := Sword(center, 0.25, a)
	require.NoError(t, err)
	rb, err := Sword(center, 0.25, b)
	require.NoError(t, err)

	assert.InDelta(t, 0.0, ra.Dir.X, tolerance)
	assert.InDelta(t, -1.0, rb.Dir.X, tolerance)
	assert.InDelta(t, ra.Depth, rb.Depth, tolerance)
	assert.InDelta(t, 0.75, ra.Depth, tolerance)
}

func TestSwordNeedsAnEdge(t *testing.T) {
	p, err := polygon.New(1)
	require.NoError(t, err)
	_, err = Sword(vector.New(0, 0), 1, p)
	assert.ErrorIs(t, err, ErrTooFewVertices)
}
