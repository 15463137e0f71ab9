package scene

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tomz197/collide/internal/polygon"
	"github.com/tomz197/collide/internal/vector"
)

var (
	// ErrInvalidShape is returned for a shape entry that is not exactly one
	// of circle or polygon, or whose geometry is unusable.
	ErrInvalidShape = errors.New("scene: invalid shape")
	// ErrDuplicateName is returned when two shapes share a name.
	ErrDuplicateName = errors.New("scene: duplicate shape name")
	// ErrUnknownShape is returned by Find for a missing name.
	ErrUnknownShape = errors.New("scene: unknown shape")
)

// minPolygonVertices is the smallest polygon a scene accepts. Fewer
// vertices leave no separating axes, so the shape would collide with
// every other polygon.
const minPolygonVertices = 3

//go:embed default.yaml
var defaultScene []byte

// Scene is a set of static shapes plus an optional probe shape driven by a
// user or a query.
type Scene struct {
	Shapes []*Shape
	Probe  *Shape
}

type circleDoc struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
	R float32 `yaml:"r"`
}

type shapeDoc struct {
	Name    string     `yaml:"name"`
	Circle  *circleDoc `yaml:"circle"`
	Polygon []float32  `yaml:"polygon"`
}

type sceneDoc struct {
	Shapes []shapeDoc `yaml:"shapes"`
	Probe  *shapeDoc  `yaml:"probe"`
}

// Load decodes a YAML scene.
func Load(r io.Reader) (*Scene, error) {
	var doc sceneDoc
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &Scene{}, nil
		}
		return nil, fmt.Errorf("decode scene: %w", err)
	}

	sc := &Scene{Shapes: make([]*Shape, 0, len(doc.Shapes))}
	seen := make(map[string]bool, len(doc.Shapes))
	for i, sd := range doc.Shapes {
		if sd.Name == "" {
			sd.Name = fmt.Sprintf("shape%d", i)
		}
		if seen[sd.Name] {
			return nil, fmt.Errorf("shape %q: %w", sd.Name, ErrDuplicateName)
		}
		seen[sd.Name] = true

		s, err := sd.build()
		if err != nil {
			return nil, err
		}
		sc.Shapes = append(sc.Shapes, s)
	}

	if doc.Probe != nil {
		if doc.Probe.Name == "" {
			doc.Probe.Name = "probe"
		}
		if seen[doc.Probe.Name] {
			return nil, fmt.Errorf("probe %q: %w", doc.Probe.Name, ErrDuplicateName)
		}
		p, err := doc.Probe.build()
		if err != nil {
			return nil, err
		}
		sc.Probe = p
	}
	return sc, nil
}

// LoadFile decodes the YAML scene at path.
func LoadFile(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Default returns the built-in demo scene.
func Default() *Scene {
	sc, err := Load(bytes.NewReader(defaultScene))
	if err != nil {
		panic(fmt.Sprintf("embedded scene: %v", err))
	}
	return sc
}

// Find returns the shape called name, including the probe.
func (sc *Scene) Find(name string) (*Shape, error) {
	for _, s := range sc.Shapes {
		if s.Name == name {
			return s, nil
		}
	}
	if sc.Probe != nil && sc.Probe.Name == name {
		return sc.Probe, nil
	}
	return nil, fmt.Errorf("%q: %w", name, ErrUnknownShape)
}

func (sd shapeDoc) build() (*Shape, error) {
	switch {
	case sd.Circle != nil && sd.Polygon != nil:
		return nil, fmt.Errorf("shape %q has both circle and polygon: %w", sd.Name, ErrInvalidShape)
	case sd.Circle != nil:
		if sd.Circle.R < 0 {
			return nil, fmt.Errorf("shape %q has negative radius %g: %w", sd.Name, sd.Circle.R, ErrInvalidShape)
		}
		return NewCircle(sd.Name, vector.New(sd.Circle.X, sd.Circle.Y), sd.Circle.R), nil
	case sd.Polygon != nil:
		p, err := polygon.FromCoords(sd.Polygon...)
		if err != nil {
			return nil, fmt.Errorf("shape %q: %w", sd.Name, err)
		}
		if p.Len() < minPolygonVertices {
			return nil, fmt.Errorf("shape %q has %d vertices, need at least %d: %w",
				sd.Name, p.Len(), minPolygonVertices, ErrInvalidShape)
		}
		return NewPolygon(sd.Name, p), nil
	default:
		return nil, fmt.Errorf("shape %q has no geometry: %w", sd.Name, ErrInvalidShape)
	}
}
