package collision

import (
	"errors"
	"fmt"

	"github.com/tomz197/collide/internal/polygon"
	"github.com/tomz197/collide/internal/vector"
)

// ErrTooFewVertices is returned by Sword for polygons without a first edge.
var ErrTooFewVertices = errors.New("collision: polygon needs at least 2 vertices")

// Sword measures how far a circle reaches past the boundary edge running from
// vertex 0 to vertex 1 of p.
//
// Dir is the inward normal of that edge and Depth is the signed gap between
// the edge and the near side of the circle along the outward normal; a
// positive Depth means the circle crossed the edge. Only that one edge is
// considered, so this is not a collision test.
func Sword(center vector.Vector2D, radius float32, p *polygon.Polygon) (Result, error) {
	if p.Len() < 2 {
		return Result{}, fmt.Errorf("sword probe on %d vertices: %w", p.Len(), ErrTooFewVertices)
	}

	v0, v1 := p.Vertex(0), p.Vertex(1)
	outward := vector.LeftNormal(vector.DirectionNormalized(v1, v0))

	near, _ := ProjectCircle(center, radius, outward)
	edgePos := vector.Dot(outward, v0)

	return Result{Dir: outward.Neg(), Depth: edgePos - near}, nil
}
