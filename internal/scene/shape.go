// Package scene groups circles and polygons into named shapes that can be
// loaded from YAML and tested against each other.
package scene

import (
	"errors"
	"fmt"

	"github.com/tomz197/collide/internal/collision"
	"github.com/tomz197/collide/internal/polygon"
	"github.com/tomz197/collide/internal/vector"
)

// ErrNotCirclePolygon is returned by Sword when the probe is not a circle
// or the target is not a polygon.
var ErrNotCirclePolygon = errors.New("scene: sword needs a circle probe and a polygon target")

// Kind tells which geometry a Shape carries.
type Kind int

const (
	KindCircle Kind = iota
	KindPolygon
)

func (k Kind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	case KindPolygon:
		return "polygon"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Shape is a named circle or polygon.
type Shape struct {
	Name string
	Kind Kind

	// Circle geometry, valid when Kind == KindCircle.
	Center vector.Vector2D
	Radius float32

	// Polygon geometry, valid when Kind == KindPolygon.
	Poly *polygon.Polygon
}

// NewCircle returns a circle shape.
func NewCircle(name string, center vector.Vector2D, radius float32) *Shape {
	return &Shape{Name: name, Kind: KindCircle, Center: center, Radius: radius}
}

// NewPolygon returns a polygon shape owning p.
func NewPolygon(name string, p *polygon.Polygon) *Shape {
	return &Shape{Name: name, Kind: KindPolygon, Poly: p}
}

// Translate moves the shape by offset*scale.
func (s *Shape) Translate(offset vector.Vector2D, scale float32) {
	switch s.Kind {
	case KindCircle:
		s.Center.AddScaled(offset, scale)
	case KindPolygon:
		s.Poly.AddScaled(offset, scale)
	}
}

// Bounds returns a circle enclosing the shape.
func (s *Shape) Bounds() (center vector.Vector2D, radius float32) {
	if s.Kind == KindPolygon {
		return s.Poly.BoundingCircle()
	}
	return s.Center, s.Radius
}

// Clone returns a deep copy of s.
func (s *Shape) Clone() *Shape {
	c := *s
	if s.Poly != nil {
		c.Poly = s.Poly.Clone()
	}
	return &c
}

// Check reports whether a and b overlap.
func Check(a, b *Shape) bool {
	switch {
	case a.Kind == KindCircle && b.Kind == KindCircle:
		return collision.CircleCircleCheck(a.Center, a.Radius, b.Center, b.Radius)
	case a.Kind == KindPolygon && b.Kind == KindPolygon:
		return collision.PolyPolyCheck(a.Poly, b.Poly)
	case a.Kind == KindCircle:
		return collision.CirclePolyCheck(a.Center, a.Radius, b.Poly)
	default:
		return collision.CirclePolyCheck(b.Center, b.Radius, a.Poly)
	}
}

// Resolve returns the translation that moves b out of a.
func Resolve(a, b *Shape) (collision.Result, bool) {
	switch {
	case a.Kind == KindCircle && b.Kind == KindCircle:
		return collision.CircleCircle(a.Center, a.Radius, b.Center, b.Radius)
	case a.Kind == KindPolygon && b.Kind == KindPolygon:
		return collision.PolyPoly(a.Poly, b.Poly)
	case a.Kind == KindCircle:
		return collision.CirclePoly(a.Center, a.Radius, b.Poly)
	default:
		// CirclePoly treats the circle as A; flip so b (the circle) moves.
		res, ok := collision.CirclePoly(b.Center, b.Radius, a.Poly)
		res.Dir = res.Dir.Neg()
		return res, ok
	}
}

// Sword runs the directional probe of a circle against the first edge of a
// polygon.
func Sword(probe, target *Shape) (collision.Result, error) {
	if probe.Kind != KindCircle || target.Kind != KindPolygon {
		return collision.Result{}, fmt.Errorf("sword %s (%s) against %s (%s): %w",
			probe.Name, probe.Kind, target.Name, target.Kind, ErrNotCirclePolygon)
	}
	return collision.Sword(probe.Center, probe.Radius, target.Poly)
}
