package polygon

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/collide/internal/vector"
)

var approx = cmpopts.EquateApprox(0, 1e-5)

func square(t *testing.T) *Polygon {
	t.Helper()
	p, err := FromCoords(0, 0, 2, 0, 2, 2, 0, 2)
	require.NoError(t, err)
	return p
}

func TestNew(t *testing.T) {
	p, err := New(3)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Len())
	for i := 0; i < p.Len(); i++ {
		v, ok := p.VertexAt(i)
		require.True(t, ok)
		assert.True(t, v.IsZero())
	}
}

func TestNewRejectsEmpty(t *testing.T) {
	for _, n := range []int{0, -2} {
		_, err := New(n)
		assert.ErrorIs(t, err, ErrInvalidCount)
	}
}

func TestFromCoords(t *testing.T) {
	tests := []struct {
		name    string
		coords  []float32
		want    []vector.Vector2D
		wantErr error
	}{
		{
			name:   "triangle",
			coords: []float32{0, 0, 1, 0, 0, 1},
			want:   []vector.Vector2D{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}},
		},
		{
			name:   "single vertex",
			coords: []float32{4, 5},
			want:   []vector.Vector2D{{X: 4, Y: 5}},
		},
		{name: "odd", coords: []float32{1, 2, 3}, wantErr: ErrOddCoords},
		{name: "empty", coords: nil, wantErr: ErrInvalidCount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := FromCoords(tt.coords...)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, p)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, p.Vertices(), approx); diff != "" {
				t.Errorf("vertices mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFromVertices(t *testing.T) {
	verts := []vector.Vector2D{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}}
	p, err := FromVertices(verts...)
	require.NoError(t, err)
	if diff := cmp.Diff(square(t).Vertices(), p.Vertices()); diff != "" {
		t.Errorf("vertices mismatch (-want +got):\n%s", diff)
	}

	// The polygon does not alias the caller's slice.
	verts[0] = vector.New(9, 9)
	assert.Equal(t, vector.New(0, 0), p.Vertex(0))

	_, err = FromVertices()
	require.ErrorIs(t, err, ErrInvalidCount)
}

func TestVertexAtOutOfRange(t *testing.T) {
	p := square(t)
	for _, i := range []int{-1, 4, 100} {
		_, ok := p.VertexAt(i)
		assert.False(t, ok, "index %d", i)
	}
	v, ok := p.VertexAt(2)
	assert.True(t, ok)
	assert.Equal(t, vector.New(2, 2), v)
}

func TestSet(t *testing.T) {
	p := square(t)
	require.NoError(t, p.Set(1, 1, 3, 1, 3, 3, 1, 3))
	want := []vector.Vector2D{{X: 1, Y: 1}, {X: 3, Y: 1}, {X: 3, Y: 3}, {X: 1, Y: 3}}
	if diff := cmp.Diff(want, p.Vertices(), approx); diff != "" {
		t.Errorf("vertices mismatch (-want +got):\n%s", diff)
	}
}

func TestSetMismatchLeavesPolygonUntouched(t *testing.T) {
	p := square(t)
	before := p.Vertices()

	err := p.Set(9, 9, 9, 9)
	assert.ErrorIs(t, err, ErrCoordMismatch)
	err = p.Set(9, 9, 9, 9, 9, 9, 9, 9, 9, 9)
	assert.ErrorIs(t, err, ErrCoordMismatch)

	assert.Equal(t, before, p.Vertices())
}

func TestSetVertex(t *testing.T) {
	p := square(t)
	require.NoError(t, p.SetVertex(1, vector.New(5, 0)))
	v, _ := p.VertexAt(1)
	assert.Equal(t, vector.New(5, 0), v)
	assert.ErrorIs(t, p.SetVertex(4, vector.New(0, 0)), ErrIndexOutOfRange)
}

func TestAddScaled(t *testing.T) {
	p := square(t)
	p.AddScaled(vector.New(1, -2), 0.5)
	want := []vector.Vector2D{{X: 0.5, Y: -1}, {X: 2.5, Y: -1}, {X: 2.5, Y: 1}, {X: 0.5, Y: 1}}
	if diff := cmp.Diff(want, p.Vertices(), approx); diff != "" {
		t.Errorf("vertices mismatch (-want +got):\n%s", diff)
	}
}

func TestVerticesIsCopy(t *testing.T) {
	p := square(t)
	vs := p.Vertices()
	vs[0] = vector.New(100, 100)
	v, _ := p.VertexAt(0)
	assert.Equal(t, vector.New(0, 0), v)

	c := p.Clone()
	c.AddScaled(vector.New(1, 0), 1)
	v, _ = p.VertexAt(0)
	assert.Equal(t, vector.New(0, 0), v)
}

func TestBoundingCircle(t *testing.T) {
	p := square(t)
	center, radius := p.BoundingCircle()
	assert.Equal(t, vector.New(1, 1), center)
	assert.InDelta(t, 1.41421356, radius, 1e-5)
}

func TestBoundingCircleUsesVertexMean(t *testing.T) {
	// A right triangle: the minimal enclosing circle is centered on the
	// hypotenuse midpoint (2, 2) with radius 2.83, the vertex mean is not.
	p, err := FromCoords(0, 0, 4, 0, 0, 4)
	require.NoError(t, err)

	center, radius := p.BoundingCircle()
	assert.InDelta(t, 4.0/3.0, center.X, 1e-5)
	assert.InDelta(t, 4.0/3.0, center.Y, 1e-5)
	// Farthest vertex is (4, 0) or (0, 4): sqrt((8/3)^2 + (4/3)^2).
	assert.InDelta(t, 2.98142397, radius, 1e-5)
}

func TestString(t *testing.T) {
	p, err := FromCoords(0, 0, 1, 0.5)
	require.NoError(t, err)
	assert.Equal(t, "((0.00, 0.00), (1.00, 0.50))", p.String())
}
