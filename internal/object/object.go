// Package object holds the drawable, updatable entities of the sandbox.
package object

import (
	"time"

	"github.com/tomz197/collide/internal/draw"
	"github.com/tomz197/collide/internal/input"
	"github.com/tomz197/collide/internal/scene"
)

// Input is an alias for the input package's Input type.
type Input = input.Input

// UpdateContext is what an object sees during update.
type UpdateContext struct {
	Delta     time.Duration
	Input     Input
	Obstacles []*scene.Shape
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas *draw.Canvas      // shapes, in logical coordinates
	Text   *draw.ChunkWriter // overlay text, in terminal cells
}

// Object is a drawable and updatable sandbox entity.
type Object interface {
	Update(ctx UpdateContext) error
	Draw(ctx DrawContext) error
}

// ShapePoints returns the polygon vertices of s as canvas points, or nil for
// a circle.
func ShapePoints(s *scene.Shape) []draw.Point {
	if s.Kind != scene.KindPolygon {
		return nil
	}
	pts := make([]draw.Point, s.Poly.Len())
	for i := range pts {
		pts[i] = draw.FromVector(s.Poly.Vertex(i))
	}
	return pts
}

// DrawShape outlines s on the canvas, filling it when filled is set.
func DrawShape(c *draw.Canvas, s *scene.Shape, filled bool) {
	switch s.Kind {
	case scene.KindCircle:
		c.DrawCircle(draw.FromVector(s.Center), float64(s.Radius), filled)
	case scene.KindPolygon:
		c.DrawPolygon(ShapePoints(s), filled)
	}
}
