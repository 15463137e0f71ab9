package object

import (
	"github.com/tomz197/collide/internal/collision"
	"github.com/tomz197/collide/internal/draw"
	"github.com/tomz197/collide/internal/polygon"
	"github.com/tomz197/collide/internal/scene"
	"github.com/tomz197/collide/internal/vector"
)

// Probe is the user-controlled shape. Held movement keys slide it around and
// every obstacle it penetrates pushes it back out along the minimum
// translation.
type Probe struct {
	Shape    *scene.Shape
	Speed    float64 // logical units per second
	SubSteps int

	// Size is the circle radius, or the half-width of the square form.
	Size float32

	SwordOn  bool
	Sword    *SwordReading
	Contacts []scene.Contact // A is the obstacle, B the probe

	home *scene.Shape
}

// SwordReading is the sword probe against the nearest polygon obstacle.
type SwordReading struct {
	Target *scene.Shape
	Result collision.Result
}

// NewProbe returns a probe starting as s.
func NewProbe(s *scene.Shape, speed float64, subSteps int) *Probe {
	_, size := s.Bounds()
	return &Probe{
		Shape:    s.Clone(),
		Speed:    speed,
		SubSteps: max(subSteps, 1),
		Size:     size,
		home:     s.Clone(),
	}
}

func (p *Probe) Update(ctx UpdateContext) error {
	in := ctx.Input
	if in.Reset {
		p.Shape = p.home.Clone()
	}
	if in.ToggleShape {
		morphed, err := Morph(p.Shape, p.Size)
		if err != nil {
			return err
		}
		p.Shape = morphed
	}
	if in.ToggleSword {
		p.SwordOn = !p.SwordOn
	}

	dir := heading(in)
	step := float32(p.Speed * ctx.Delta.Seconds() / float64(p.SubSteps))
	for range p.SubSteps {
		p.Shape.Translate(dir, step)
		p.pushOut(ctx.Obstacles)
	}

	p.Contacts = p.Contacts[:0]
	for _, obs := range ctx.Obstacles {
		if res, ok := scene.Resolve(obs, p.Shape); ok {
			p.Contacts = append(p.Contacts, scene.Contact{A: obs, B: p.Shape, Result: res})
		}
	}

	p.Sword = nil
	if p.SwordOn {
		p.Sword = p.nearestSword(ctx.Obstacles)
	}
	return nil
}

// pushOut separates the probe from each obstacle in turn.
func (p *Probe) pushOut(obstacles []*scene.Shape) {
	for _, obs := range obstacles {
		res, ok := scene.Resolve(obs, p.Shape)
		if !ok || res.Depth <= 0 {
			continue
		}
		if res.Dir.IsZero() {
			// Concentric circles have no separating direction.
			res.Dir = vector.New(0, -1)
		}
		p.Shape.Translate(res.Dir, res.Depth)
	}
}

func (p *Probe) nearestSword(obstacles []*scene.Shape) *SwordReading {
	if p.Shape.Kind != scene.KindCircle {
		return nil
	}
	var (
		best   *scene.Shape
		bestSq float32
	)
	for _, obs := range obstacles {
		if obs.Kind != scene.KindPolygon || obs.Poly.Len() < 2 {
			continue
		}
		c, _ := obs.Bounds()
		if d := vector.DistanceSquared(c, p.Shape.Center); best == nil || d < bestSq {
			best, bestSq = obs, d
		}
	}
	if best == nil {
		return nil
	}
	res, err := scene.Sword(p.Shape, best)
	if err != nil {
		return nil
	}
	return &SwordReading{Target: best, Result: res}
}

func (p *Probe) Draw(ctx DrawContext) error {
	DrawShape(ctx.Canvas, p.Shape, true)
	if p.Sword != nil {
		from, _ := p.Shape.Bounds()
		to := from
		to.AddScaled(p.Sword.Result.Dir, max(p.Size, p.Sword.Result.Depth))
		ctx.Canvas.DrawArrow(draw.FromVector(from), draw.FromVector(to))
	}
	return nil
}

// Morph swaps a circle for the square of half-width size around its center,
// and a polygon for the circle of radius size around its centroid.
func Morph(s *scene.Shape, size float32) (*scene.Shape, error) {
	if s.Kind == scene.KindPolygon {
		return scene.NewCircle(s.Name, s.Poly.Centroid(), size), nil
	}
	c := s.Center
	sq, err := polygon.FromVertices(
		c.Add(vector.New(-size, -size)),
		c.Add(vector.New(size, -size)),
		c.Add(vector.New(size, size)),
		c.Add(vector.New(-size, size)),
	)
	if err != nil {
		return nil, err
	}
	return scene.NewPolygon(s.Name, sq), nil
}

func heading(in Input) vector.Vector2D {
	var v vector.Vector2D
	if in.Left {
		v.X--
	}
	if in.Right {
		v.X++
	}
	if in.Up {
		v.Y--
	}
	if in.Down {
		v.Y++
	}
	v.Normalize()
	return v
}
