package collision

import (
	"math"

	"github.com/tomz197/collide/internal/polygon"
	"github.com/tomz197/collide/internal/vector"
)

// Edge returns the directed edge from vertex i to vertex (i+1) mod Len().
func Edge(p *polygon.Polygon, i int) vector.Vector2D {
	j := (i + 1) % p.Len()
	return p.Vertex(j).Sub(p.Vertex(i))
}

// ProjectPolygon returns the interval covered by the vertices of p projected
// onto axis. The axis does not need to be normalized, but intervals are only
// comparable in real distance units when it is.
func ProjectPolygon(p *polygon.Polygon, axis vector.Vector2D) (lo, hi float32) {
	lo = math.MaxFloat32
	hi = -math.MaxFloat32
	for i := 0; i < p.Len(); i++ {
		d := vector.Dot(axis, p.Vertex(i))
		if d < lo {
			lo = d
		}
		if d > hi {
			hi = d
		}
	}
	return lo, hi
}

// ProjectCircle returns the interval covered by a circle projected onto a
// unit axis.
func ProjectCircle(center vector.Vector2D, radius float32, axis vector.Vector2D) (lo, hi float32) {
	near := center
	near.AddScaled(axis, -radius)
	far := center
	far.AddScaled(axis, radius)

	lo = vector.Dot(axis, near)
	hi = vector.Dot(axis, far)
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi
}

// ClosestVertexIndex returns the index of the vertex of p nearest to point.
// Ties resolve to the lowest index.
func ClosestVertexIndex(point vector.Vector2D, p *polygon.Polygon) int {
	best := float32(math.MaxFloat32)
	idx := 0
	for i := 0; i < p.Len(); i++ {
		if d := vector.DistanceSquared(p.Vertex(i), point); d < best {
			best = d
			idx = i
		}
	}
	return idx
}

// separated reports whether the intervals [minA, maxA] and [minB, maxB] are
// disjoint. Touching intervals are not separated.
func separated(minA, maxA, minB, maxB float32) bool {
	return maxA < minB || maxB < minA
}

// mtv tracks the axis of least overlap while axes are tested.
type mtv struct {
	depth  float32
	axis   vector.Vector2D
	invert bool
}

func newMTV() mtv {
	return mtv{depth: math.MaxFloat32}
}

// consider records axis if its overlap is smaller than the current best.
func (m *mtv) consider(axis vector.Vector2D, minA, maxA, minB, maxB float32) {
	depth := min(maxA-minB, maxB-minA)
	if depth < m.depth {
		m.depth = depth
		m.axis = axis
		m.invert = maxB-minA < maxA-minB
	}
}

// result returns the best axis oriented from A toward B.
func (m *mtv) result() Result {
	dir := m.axis
	if m.invert {
		dir = dir.Neg()
	}
	return Result{Dir: dir, Depth: m.depth}
}
