package object

import (
	"github.com/tomz197/collide/internal/scene"
)

// Body is a static obstacle. It is drawn filled while the probe touches it.
type Body struct {
	Shape    *scene.Shape
	Touching bool
}

// NewBody wraps a scene shape.
func NewBody(s *scene.Shape) *Body {
	return &Body{Shape: s}
}

// Update is a no-op; bodies never move.
func (b *Body) Update(UpdateContext) error {
	return nil
}

func (b *Body) Draw(ctx DrawContext) error {
	DrawShape(ctx.Canvas, b.Shape, b.Touching)
	return nil
}
