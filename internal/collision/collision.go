// Package collision implements Separating Axis Theorem tests between circles
// and convex polygons.
//
// Check functions only report whether two shapes intersect. Resolve functions
// additionally return the minimum translation: the unit direction in which
// shape B must move to separate from shape A, and the overlap depth along it.
// Every function is pure and safe for concurrent use on shapes that are not
// being mutated.
package collision

import (
	"github.com/tomz197/collide/internal/polygon"
	"github.com/tomz197/collide/internal/vector"
)

// Result is the minimum translation found by a resolve function.
// Moving shape B by Dir*Depth separates it from shape A.
type Result struct {
	Dir   vector.Vector2D
	Depth float32
}

// Translation returns Dir*Depth.
func (r Result) Translation() vector.Vector2D {
	return r.Dir.Scale(r.Depth)
}

// CircleCircleCheck reports whether two circles overlap. Tangent circles do
// not overlap.
func CircleCircleCheck(centerA vector.Vector2D, radiusA float32, centerB vector.Vector2D, radiusB float32) bool {
	sum := radiusA + radiusB
	return vector.DistanceSquared(centerA, centerB) < sum*sum
}

// CircleCircle resolves two overlapping circles. Dir points from A's center
// toward B's center; coincident centers produce a zero Dir.
func CircleCircle(centerA vector.Vector2D, radiusA float32, centerB vector.Vector2D, radiusB float32) (Result, bool) {
	sum := radiusA + radiusB
	distSq := vector.DistanceSquared(centerA, centerB)
	if distSq >= sum*sum {
		return Result{}, false
	}
	dist := vector.Length(centerB.Sub(centerA))
	return Result{
		Dir:   vector.DirectionNormalized(centerB, centerA),
		Depth: sum - dist,
	}, true
}

// PolyPolyCheck reports whether two convex polygons overlap. Touching
// polygons count as overlapping. Like PolyPoly, it is always true for two
// single-vertex polygons.
func PolyPolyCheck(a, b *polygon.Polygon) bool {
	for _, owner := range [2]*polygon.Polygon{a, b} {
		for i := 0; i < owner.Len(); i++ {
			edge := Edge(owner, i)
			if edge.IsZero() {
				continue
			}
			axis := vector.LeftNormal(edge)

			minA, maxA := ProjectPolygon(a, axis)
			minB, maxB := ProjectPolygon(b, axis)
			if separated(minA, maxA, minB, maxB) {
				return false
			}
		}
	}
	return true
}

// PolyPoly resolves two overlapping convex polygons using the edge normals of
// both as candidate axes. Polygons with a single vertex have no edges and
// therefore no axes, so two of them always report a hit with a zero Dir and
// a Depth of math.MaxFloat32.
func PolyPoly(a, b *polygon.Polygon) (Result, bool) {
	best := newMTV()
	for _, owner := range [2]*polygon.Polygon{a, b} {
		for i := 0; i < owner.Len(); i++ {
			edge := Edge(owner, i)
			if edge.IsZero() {
				continue
			}
			axis := vector.LeftNormal(edge)
			axis.Normalize()

			minA, maxA := ProjectPolygon(a, axis)
			minB, maxB := ProjectPolygon(b, axis)
			if separated(minA, maxA, minB, maxB) {
				return Result{}, false
			}
			best.consider(axis, minA, maxA, minB, maxB)
		}
	}
	return best.result(), true
}

// CirclePolyCheck reports whether a circle overlaps a convex polygon. The
// axis set is the direction from the polygon's nearest vertex to the circle
// center plus every polygon edge normal.
//
// Edge normals are normalized before projecting, exactly as in CirclePoly.
// This deliberately differs from the original check, which projected the
// radius onto unnormalized normals and so scaled it by the edge length;
// here the check always agrees with CirclePoly.
func CirclePolyCheck(center vector.Vector2D, radius float32, p *polygon.Polygon) bool {
	if axis := closestVertexAxis(center, p); !axis.IsZero() {
		minA, maxA := ProjectCircle(center, radius, axis)
		minB, maxB := ProjectPolygon(p, axis)
		if separated(minA, maxA, minB, maxB) {
			return false
		}
	}

	for i := 0; i < p.Len(); i++ {
		edge := Edge(p, i)
		if edge.IsZero() {
			continue
		}
		axis := vector.LeftNormal(edge)
		axis.Normalize()

		minA, maxA := ProjectCircle(center, radius, axis)
		minB, maxB := ProjectPolygon(p, axis)
		if separated(minA, maxA, minB, maxB) {
			return false
		}
	}
	return true
}

// CirclePoly resolves a circle (shape A) overlapping a convex polygon
// (shape B) over the same axis set as CirclePolyCheck.
func CirclePoly(center vector.Vector2D, radius float32, p *polygon.Polygon) (Result, bool) {
	best := newMTV()

	if axis := closestVertexAxis(center, p); !axis.IsZero() {
		minA, maxA := ProjectCircle(center, radius, axis)
		minB, maxB := ProjectPolygon(p, axis)
		if separated(minA, maxA, minB, maxB) {
			return Result{}, false
		}
		best.consider(axis, minA, maxA, minB, maxB)
	}

	for i := 0; i < p.Len(); i++ {
		edge := Edge(p, i)
		if edge.IsZero() {
			continue
		}
		axis := vector.LeftNormal(edge)
		axis.Normalize()

		minA, maxA := ProjectCircle(center, radius, axis)
		minB, maxB := ProjectPolygon(p, axis)
		if separated(minA, maxA, minB, maxB) {
			return Result{}, false
		}
		best.consider(axis, minA, maxA, minB, maxB)
	}
	return best.result(), true
}

// closestVertexAxis is the unit direction from the circle center toward the
// polygon vertex nearest to it. It is zero when the center sits on that
// vertex, in which case callers skip the axis.
func closestVertexAxis(center vector.Vector2D, p *polygon.Polygon) vector.Vector2D {
	idx := ClosestVertexIndex(center, p)
	return vector.DirectionNormalized(p.Vertex(idx), center)
}
