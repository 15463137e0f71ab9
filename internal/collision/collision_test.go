package collision

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/collide/internal/polygon"
	"github.com/tomz197/collide/internal/vector"
)

const tolerance = 1e-3

func poly(t *testing.T, coords ...float32) *polygon.Polygon {
	t.Helper()
	p, err := polygon.FromCoords(coords...)
	require.NoError(t, err)
	return p
}

// regular builds a regular n-gon around (cx, cy).
func regular(t *testing.T, n int, cx, cy, r, rot float64) *polygon.Polygon {
	t.Helper()
	coords := make([]float32, 0, 2*n)
	for i := 0; i < n; i++ {
		a := rot + 2*math.Pi*float64(i)/float64(n)
		coords = append(coords, float32(cx+r*math.Cos(a)), float32(cy+r*math.Sin(a)))
	}
	return poly(t, coords...)
}

func unitSquare(t *testing.T, cx, cy float32) *polygon.Polygon {
	return poly(t,
		cx-0.5, cy-0.5,
		cx+0.5, cy-0.5,
		cx+0.5, cy+0.5,
		cx-0.5, cy+0.5,
	)
}

func TestCircleCircleOverlapping(t *testing.T) {
	a, b := vector.New(0, 0), vector.New(3, 0)

	assert.True(t, CircleCircleCheck(a, 2, b, 2))

	res, ok := CircleCircle(a, 2, b, 2)
	require.True(t, ok)
	assert.InDelta(t, 1.0, res.Depth, tolerance)
	assert.InDelta(t, 1.0, res.Dir.X, tolerance)
	assert.InDelta(t, 0.0, res.Dir.Y, tolerance)
}

func TestCircleCircleTangentIsNotColliding(t *testing.T) {
	a, b := vector.New(0, 0), vector.New(4, 0)
	assert.False(t, CircleCircleCheck(a, 2, b, 2))
	_, ok := CircleCircle(a, 2, b, 2)
	assert.False(t, ok)
}

func TestCircleCircleCoincidentCenters(t *testing.T) {
	c := vector.New(1, 1)
	res, ok := CircleCircle(c, 1, c, 2)
	require.True(t, ok)
	assert.True(t, res.Dir.IsZero())
	assert.InDelta(t, 3.0, res.Depth, tolerance)
}

func TestCircleCircleResolutionMakesTangent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		a := vector.New(rng.Float32()*10, rng.Float32()*10)
		b := vector.New(rng.Float32()*10, rng.Float32()*10)
		ra, rb := 0.5+rng.Float32()*4, 0.5+rng.Float32()*4

		dist := vector.Distance(a, b)
		check := CircleCircleCheck(a, ra, b, rb)
		assert.Equal(t, dist < ra+rb, check)

		res, ok := CircleCircle(a, ra, b, rb)
		assert.Equal(t, check, ok)
		if !ok || dist == 0 {
			continue
		}
		assert.InDelta(t, 1.0, res.Dir.Length(), tolerance)

		moved := b
		moved.AddScaled(res.Dir, res.Depth)
		assert.InDelta(t, ra+rb, vector.Distance(a, moved), tolerance)
	}
}

func TestPolyPolyTouchingSquares(t *testing.T) {
	a := unitSquare(t, 0, 0)
	b := unitSquare(t, 1, 0)

	assert.True(t, PolyPolyCheck(a, b))

	res, ok := PolyPoly(a, b)
	require.True(t, ok)
	assert.InDelta(t, 0.0, res.Depth, tolerance)
	assert.InDelta(t, 1.0, res.Dir.X, tolerance)
	assert.InDelta(t, 0.0, res.Dir.Y, tolerance)
}

func TestPolyPolyOverlapping(t *testing.T) {
	a := unitSquare(t, 0, 0)
	b := unitSquare(t, 0.25, 0.9)

	res, ok := PolyPoly(a, b)
	require.True(t, ok)
	assert.InDelta(t, 0.1, res.Depth, tolerance)
	assert.InDelta(t, 0.0, res.Dir.X, tolerance)
	assert.InDelta(t, 1.0, res.Dir.Y, tolerance)

	// Swapping the shapes flips the direction.
	res, ok = PolyPoly(b, a)
	require.True(t, ok)
	assert.InDelta(t, 0.1, res.Depth, tolerance)
	assert.InDelta(t, -1.0, res.Dir.Y, tolerance)
}

func TestPolyPolySeparated(t *testing.T) {
	a := unitSquare(t, 0, 0)
	b := unitSquare(t, 1.01, 0)
	assert.False(t, PolyPolyCheck(a, b))
	_, ok := PolyPoly(a, b)
	assert.False(t, ok)
}

func TestPolyPolyProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	hits := 0
	for i := 0; i < 500; i++ {
		a := regular(t, 3+rng.Intn(6), rng.Float64()*6, rng.Float64()*6, 0.5+rng.Float64()*2, rng.Float64()*math.Pi)
		b := regular(t, 3+rng.Intn(6), rng.Float64()*6, rng.Float64()*6, 0.5+rng.Float64()*2, rng.Float64()*math.Pi)

		check := PolyPolyCheck(a, b)
		assert.Equal(t, check, PolyPolyCheck(b, a), "symmetry")

		res, ok := PolyPoly(a, b)
		assert.Equal(t, check, ok, "check and resolve agree")
		if !ok {
			continue
		}
		hits++

		assert.GreaterOrEqual(t, res.Depth, float32(0))
		assert.InDelta(t, 1.0, res.Dir.Length(), tolerance)

		moved := b.Clone()
		moved.AddScaled(res.Dir, res.Depth)
		minA, maxA := ProjectPolygon(a, res.Dir)
		minB, maxB := ProjectPolygon(moved, res.Dir)
		overlap := min(maxA-minB, maxB-minA)
		assert.InDelta(t, 0.0, overlap, tolerance)
	}
	assert.Positive(t, hits)
}

func TestPolyPolyDuplicateVertexIsIgnored(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		cx, cy := rng.Float32()*4, rng.Float32()*4
		a := poly(t, 0, 0, 2, 0, 2, 2, 0, 2)
		b := poly(t, cx, cy, cx+1, cy, cx+1, cy+1, cx, cy+1)
		dup := poly(t, cx, cy, cx+1, cy, cx+1, cy, cx+1, cy+1, cx, cy+1)

		assert.Equal(t, PolyPolyCheck(a, b), PolyPolyCheck(a, dup))
		assert.Equal(t, PolyPolyCheck(b, a), PolyPolyCheck(dup, a))

		r1, ok1 := PolyPoly(a, b)
		r2, ok2 := PolyPoly(a, dup)
		require.Equal(t, ok1, ok2)
		if ok1 {
			assert.InDelta(t, r1.Depth, r2.Depth, tolerance)
		}
	}
}

func TestCirclePolySeparatedByGap(t *testing.T) {
	sq := poly(t, 2, -0.5, 3, -0.5, 3, 0.5, 2, 0.5)
	assert.False(t, CirclePolyCheck(vector.New(0, 0), 1, sq))
	_, ok := CirclePoly(vector.New(0, 0), 1, sq)
	assert.False(t, ok)
}

func TestCirclePolyResolve(t *testing.T) {
	sq := poly(t, 0.5, -0.5, 1.5, -0.5, 1.5, 0.5, 0.5, 0.5)
	center := vector.New(0, 0)

	assert.True(t, CirclePolyCheck(center, 1, sq))

	res, ok := CirclePoly(center, 1, sq)
	require.True(t, ok)
	assert.InDelta(t, 0.5, res.Depth, tolerance)
	assert.InDelta(t, 1.0, res.Dir.X, tolerance)
	assert.InDelta(t, 0.0, res.Dir.Y, tolerance)

	sq.AddScaled(res.Dir, res.Depth)
	_, ok = CirclePoly(center, 1, sq)
	// Pushed out exactly to the boundary, which still counts as touching.
	assert.True(t, ok)
	sq.AddScaled(res.Dir, 0.01)
	assert.False(t, CirclePolyCheck(center, 1, sq))
}

func TestCirclePolyCornerAxis(t *testing.T) {
	// Circle approaching the corner (1, 1) diagonally: edge normals overlap
	// but the closest-vertex axis separates.
	sq := poly(t, 0, 0, 1, 0, 1, 1, 0, 1)
	center := vector.New(1.8, 1.8)
	assert.False(t, CirclePolyCheck(center, 1, sq))

	center = vector.New(1.5, 1.5)
	res, ok := CirclePoly(center, 1, sq)
	require.True(t, ok)
	// The diagonal axis has the least overlap: 1 - sqrt(0.5).
	assert.InDelta(t, 1-math.Sqrt(0.5), res.Depth, tolerance)
	assert.InDelta(t, -math.Sqrt(0.5), res.Dir.X, tolerance)
	assert.InDelta(t, -math.Sqrt(0.5), res.Dir.Y, tolerance)
}

func TestCirclePolyCenterOnVertex(t *testing.T) {
	sq := poly(t, 0, 0, 1, 0, 1, 1, 0, 1)
	res, ok := CirclePoly(vector.New(1, 1), 0.25, sq)
	require.True(t, ok)
	assert.InDelta(t, 0.25, res.Depth, tolerance)
	assert.InDelta(t, 1.0, res.Dir.Length(), tolerance)
}

func TestCirclePolyCheckAgreesWithResolve(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 500; i++ {
		p := regular(t, 3+rng.Intn(6), 3, 3, 0.5+rng.Float64()*2, rng.Float64()*math.Pi)
		c := vector.New(rng.Float32()*6, rng.Float32()*6)
		r := 0.2 + rng.Float32()*2

		_, ok := CirclePoly(c, r, p)
		assert.Equal(t, CirclePolyCheck(c, r, p), ok)
	}
}

func TestCirclePolyCheckUsesUnitEdgeNormals(t *testing.T) {
	tests := []struct {
		name   string
		p      *polygon.Polygon
		center vector.Vector2D
		radius float32
		want   bool
	}{
		// A long edge must not stretch the radius across the gap.
		{"long edges gap", poly(t, 0, 0, 10, 0, 10, 10, 0, 10), vector.New(5, -3), 2, false},
		// A short edge must not shrink the radius below the overlap.
		{"short edges overlap", poly(t, 0, 0, 0.5, 0, 0.5, 0.5, 0, 0.5), vector.New(0.25, -0.5), 0.6, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CirclePolyCheck(tt.center, tt.radius, tt.p))
			res, ok := CirclePoly(tt.center, tt.radius, tt.p)
			assert.Equal(t, tt.want, ok)
			if ok {
				assert.InDelta(t, 0.1, res.Depth, tolerance)
			}
		})
	}
}

func TestPolyPolySingleVertices(t *testing.T) {
	a := poly(t, 1, 1)
	b := poly(t, 50, 50)
	assert.True(t, PolyPolyCheck(a, b))
	res, ok := PolyPoly(a, b)
	require.True(t, ok)
	assert.True(t, res.Dir.IsZero())
	assert.Equal(t, float32(math.MaxFloat32), res.Depth)
}

func TestClosestVertexIndexTies(t *testing.T) {
	sq := poly(t, 0, 0, 2, 0, 2, 2, 0, 2)
	assert.Equal(t, 0, ClosestVertexIndex(vector.New(1, -5), sq))
	assert.Equal(t, 1, ClosestVertexIndex(vector.New(3, 1), sq))
	assert.Equal(t, 2, ClosestVertexIndex(vector.New(1, 7), sq))
	assert.Equal(t, 0, ClosestVertexIndex(vector.New(1, 1), sq))
	assert.Equal(t, 2, ClosestVertexIndex(vector.New(2.1, 1.9), sq))
}

func TestProjectCircleSortsExtremes(t *testing.T) {
	lo, hi := ProjectCircle(vector.New(2, 0), 1, vector.New(-1, 0))
	assert.InDelta(t, -3.0, lo, tolerance)
	assert.InDelta(t, -1.0, hi, tolerance)
}

func TestProjectPolygon(t *testing.T) {
	p := poly(t, 0, 0, 2, 0, 2, 1)
	lo, hi := ProjectPolygon(p, vector.New(1, 1))
	assert.InDelta(t, 0.0, lo, tolerance)
	assert.InDelta(t, 3.0, hi, tolerance)
}

func TestEdgeWraps(t *testing.T) {
	p := poly(t, 0, 0, 2, 0, 2, 1)
	assert.Equal(t, vector.New(2, 0), Edge(p, 0))
	assert.Equal(t, vector.New(-2, -1), Edge(p, 2))
}

func TestResultTranslation(t *testing.T) {
	r := Result{Dir: vector.New(0, -1), Depth: 2}
	assert.Equal(t, vector.New(0, -2), r.Translation())
}
