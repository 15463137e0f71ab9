package vector

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const eps = 1e-5

func TestLength(t *testing.T) {
	v := New(3, 4)
	assert.InDelta(t, 5, Length(v), eps)
	assert.InDelta(t, 25, LengthSquared(v), eps)
	assert.InDelta(t, 5, v.Length(), eps)
}

func TestDot(t *testing.T) {
	assert.InDelta(t, 11, Dot(New(1, 2), New(3, 4)), eps)
	assert.Zero(t, Dot(New(1, 0), New(0, 1)))
}

func TestNormalize(t *testing.T) {
	v := New(0, -7)
	v.Normalize()
	assert.Equal(t, New(0, -1), v)

	v = New(3, 4)
	v.Normalize()
	assert.InDelta(t, 0.6, v.X, eps)
	assert.InDelta(t, 0.8, v.Y, eps)
	assert.InDelta(t, 1, v.Length(), eps)
}

func TestNormalizeZeroIsNoop(t *testing.T) {
	var v Vector2D
	v.Normalize()
	assert.True(t, v.IsZero())
	assert.False(t, math.IsNaN(float64(v.X)))
}

func TestNormals(t *testing.T) {
	edge := New(1, 0)
	assert.Equal(t, New(0, -1), LeftNormal(edge))
	assert.Equal(t, New(0, 1), RightNormal(edge))
	assert.Equal(t, LeftNormal(edge).Neg(), RightNormal(edge))

	// Left normal is perpendicular to its source.
	src := New(2.5, -1.25)
	assert.Zero(t, Dot(src, LeftNormal(src)))
}

func TestDirectionNormalized(t *testing.T) {
	d := DirectionNormalized(New(3, 0), New(0, 0))
	assert.Equal(t, New(1, 0), d)

	d = DirectionNormalized(New(1, 1), New(4, 5))
	assert.InDelta(t, -0.6, d.X, eps)
	assert.InDelta(t, -0.8, d.Y, eps)
}

func TestDirectionNormalizedCoincident(t *testing.T) {
	d := DirectionNormalized(New(2, 2), New(2, 2))
	assert.True(t, d.IsZero())
}

func TestAddScaled(t *testing.T) {
	v := New(1, 1)
	v.AddScaled(New(2, -1), 0.5)
	assert.Equal(t, New(2, 0.5), v)

	v.AddScaledPairs(
		Scaled{V: New(1, 0), Scale: 2},
		Scaled{V: New(0, 1), Scale: -0.5},
	)
	assert.Equal(t, New(4, 0), v)
}

func TestArithmetic(t *testing.T) {
	a, b := New(1, 2), New(3, 5)
	assert.Equal(t, New(4, 7), a.Add(b))
	assert.Equal(t, New(-2, -3), a.Sub(b))
	assert.Equal(t, New(2, 4), a.Scale(2))
	assert.InDelta(t, 13, DistanceSquared(a, b), eps)
	assert.InDelta(t, math.Sqrt(13), Distance(a, b), eps)

	x, y := b.XY()
	assert.Equal(t, float32(3), x)
	assert.Equal(t, float32(5), y)
}

func TestString(t *testing.T) {
	assert.Equal(t, "(1.50, -2.00)", New(1.5, -2).String())
}
