// Package polygon provides an ordered, mutable vertex loop used as a convex
// collision shape.
//
// Convexity and consistent winding are the caller's responsibility; nothing
// in this package validates them.
package polygon

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/tomz197/collide/internal/vector"
)

var (
	// ErrInvalidCount is returned when a polygon would have no vertices.
	ErrInvalidCount = errors.New("polygon: vertex count must be at least 1")
	// ErrOddCoords is returned when a flat coordinate list has odd length.
	ErrOddCoords = errors.New("polygon: coordinate list must be x,y pairs")
	// ErrCoordMismatch is returned when Set receives a coordinate count
	// different from 2*Len().
	ErrCoordMismatch = errors.New("polygon: coordinate count does not match vertex count")
	// ErrIndexOutOfRange is returned by SetVertex for an index outside [0, Len()).
	ErrIndexOutOfRange = errors.New("polygon: vertex index out of range")
)

// Polygon is an ordered vertex loop. The edge i runs from vertex i to
// vertex (i+1) mod Len(). A Polygon owns its vertex slice.
type Polygon struct {
	verts []vector.Vector2D
}

// New creates a polygon with count zero-initialized vertices.
func New(count int) (*Polygon, error) {
	if count < 1 {
		return nil, fmt.Errorf("new polygon with %d vertices: %w", count, ErrInvalidCount)
	}
	return &Polygon{verts: make([]vector.Vector2D, count)}, nil
}

// FromCoords creates a polygon from a flat [x1, y1, x2, y2, ...] list.
func FromCoords(coords ...float32) (*Polygon, error) {
	if len(coords)%2 != 0 {
		return nil, fmt.Errorf("new polygon from %d coordinates: %w", len(coords), ErrOddCoords)
	}
	if len(coords) == 0 {
		return nil, fmt.Errorf("new polygon from 0 coordinates: %w", ErrInvalidCount)
	}
	p := &Polygon{verts: make([]vector.Vector2D, len(coords)/2)}
	p.fill(coords)
	return p, nil
}

// FromVertices creates a polygon holding a copy of verts.
func FromVertices(verts ...vector.Vector2D) (*Polygon, error) {
	if len(verts) == 0 {
		return nil, fmt.Errorf("new polygon from 0 vertices: %w", ErrInvalidCount)
	}
	p := &Polygon{verts: make([]vector.Vector2D, len(verts))}
	copy(p.verts, verts)
	return p, nil
}

// Len returns the number of vertices.
func (p *Polygon) Len() int {
	return len(p.verts)
}

// VertexAt returns vertex i. ok is false when i is outside [0, Len()).
func (p *Polygon) VertexAt(i int) (v vector.Vector2D, ok bool) {
	if i < 0 || i >= len(p.verts) {
		return vector.Vector2D{}, false
	}
	return p.verts[i], true
}

// Vertex returns vertex i without a bounds report. Callers inside the
// module iterate [0, Len()) and use this on the hot path.
func (p *Polygon) Vertex(i int) vector.Vector2D {
	return p.verts[i]
}

// Vertices returns a copy of the vertex loop.
func (p *Polygon) Vertices() []vector.Vector2D {
	out := make([]vector.Vector2D, len(p.verts))
	copy(out, p.verts)
	return out
}

// Set overwrites every vertex from a flat [x1, y1, ...] list. The list must
// hold exactly 2*Len() values; on mismatch the polygon is left untouched.
func (p *Polygon) Set(coords ...float32) error {
	if len(coords) != 2*len(p.verts) {
		return fmt.Errorf("set %d coordinates on %d vertices: %w", len(coords), len(p.verts), ErrCoordMismatch)
	}
	p.fill(coords)
	return nil
}

// SetVertex overwrites vertex i.
func (p *Polygon) SetVertex(i int, v vector.Vector2D) error {
	if i < 0 || i >= len(p.verts) {
		return fmt.Errorf("set vertex %d of %d: %w", i, len(p.verts), ErrIndexOutOfRange)
	}
	p.verts[i] = v
	return nil
}

// AddScaled translates every vertex by offset*scale.
func (p *Polygon) AddScaled(offset vector.Vector2D, scale float32) {
	for i := range p.verts {
		p.verts[i].AddScaled(offset, scale)
	}
}

// Centroid returns the arithmetic mean of the vertices. This is the vertex
// average, not the area centroid.
func (p *Polygon) Centroid() vector.Vector2D {
	var sumX, sumY float32
	for _, v := range p.verts {
		sumX += v.X
		sumY += v.Y
	}
	n := float32(len(p.verts))
	return vector.Vector2D{X: sumX / n, Y: sumY / n}
}

// BoundingCircle returns a circle enclosing every vertex, centered on
// Centroid. The circle is not the minimal enclosing circle.
func (p *Polygon) BoundingCircle() (center vector.Vector2D, radius float32) {
	center = p.Centroid()
	var maxSq float32
	for _, v := range p.verts {
		if d := vector.DistanceSquared(v, center); d > maxSq {
			maxSq = d
		}
	}
	return center, float32(math.Sqrt(float64(maxSq)))
}

// Clone returns a deep copy.
func (p *Polygon) Clone() *Polygon {
	return &Polygon{verts: p.Vertices()}
}

// String formats the polygon as "((x1, y1), (x2, y2), ...)".
func (p *Polygon) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, v := range p.verts {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(v.String())
	}
	b.WriteByte(')')
	return b.String()
}

func (p *Polygon) fill(coords []float32) {
	for i := range p.verts {
		p.verts[i] = vector.Vector2D{X: coords[2*i], Y: coords[2*i+1]}
	}
}
