// Package binding exposes vectors, polygons and the collision routines to an
// embedding host through opaque handles.
//
// An Arena owns every value it hands out a handle for. Results of collision
// calls are new handles whose ownership passes to the caller, who releases
// them with FreeVector or FreePolygon. Handles are never reused.
package binding

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/tomz197/collide/internal/polygon"
	"github.com/tomz197/collide/internal/vector"
)

var (
	// ErrUnknownHandle is returned for a handle the arena does not hold,
	// either never issued or already freed.
	ErrUnknownHandle = errors.New("binding: unknown handle")
	// ErrUnknownField is returned for a vector field other than "x" or "y".
	ErrUnknownField = errors.New("binding: unknown vector field")
)

// VectorID is a handle to a vector held by an Arena.
type VectorID uuid.UUID

func (id VectorID) String() string { return uuid.UUID(id).String() }

// PolygonID is a handle to a polygon held by an Arena.
type PolygonID uuid.UUID

func (id PolygonID) String() string { return uuid.UUID(id).String() }

// ScaledRef pairs a vector handle with a scale for AddScaled.
type ScaledRef struct {
	V     VectorID
	Scale float32
}

// Arena holds host-visible values. It is safe for concurrent use.
type Arena struct {
	mu       sync.RWMutex
	vectors  map[VectorID]*vector.Vector2D
	polygons map[PolygonID]*polygon.Polygon
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{
		vectors:  make(map[VectorID]*vector.Vector2D),
		polygons: make(map[PolygonID]*polygon.Polygon),
	}
}

// Live returns the number of vectors and polygons currently held.
func (a *Arena) Live() (vectors, polygons int) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.vectors), len(a.polygons)
}

// NewVector stores (x, y) and returns its handle.
func (a *Arena) NewVector(x, y float32) VectorID {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.putVector(vector.New(x, y))
}

// CopyVector stores a copy of the vector behind id.
func (a *Arena) CopyVector(id VectorID) (VectorID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	v, err := a.vector(id)
	if err != nil {
		return VectorID{}, err
	}
	return a.putVector(*v), nil
}

// Vector returns the value behind id.
func (a *Arena) Vector(id VectorID) (vector.Vector2D, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	v, err := a.vector(id)
	if err != nil {
		return vector.Vector2D{}, err
	}
	return *v, nil
}

// VectorField reads field "x" or "y".
func (a *Arena) VectorField(id VectorID, field string) (float32, error) {
	v, err := a.Vector(id)
	if err != nil {
		return 0, err
	}
	switch field {
	case "x":
		return v.X, nil
	case "y":
		return v.Y, nil
	default:
		return 0, fmt.Errorf("read %q: %w", field, ErrUnknownField)
	}
}

// SetVectorField writes field "x" or "y".
func (a *Arena) SetVectorField(id VectorID, field string, value float32) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	v, err := a.vector(id)
	if err != nil {
		return err
	}
	switch field {
	case "x":
		v.X = value
	case "y":
		v.Y = value
	default:
		return fmt.Errorf("write %q: %w", field, ErrUnknownField)
	}
	return nil
}

// AddScaled adds each pair's vector times its scale to the vector behind id.
// Every handle is checked before the target is touched.
func (a *Arena) AddScaled(id VectorID, pairs ...ScaledRef) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	v, err := a.vector(id)
	if err != nil {
		return err
	}
	scaled := make([]vector.Scaled, len(pairs))
	for i, p := range pairs {
		o, err := a.vector(p.V)
		if err != nil {
			return err
		}
		scaled[i] = vector.Scaled{V: *o, Scale: p.Scale}
	}
	v.AddScaledPairs(scaled...)
	return nil
}

// Normalize scales the vector behind id to unit length.
func (a *Arena) Normalize(id VectorID) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	v, err := a.vector(id)
	if err != nil {
		return err
	}
	v.Normalize()
	return nil
}

// Dot returns the dot product of two held vectors.
func (a *Arena) Dot(x, y VectorID) (float32, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	vx, err := a.vector(x)
	if err != nil {
		return 0, err
	}
	vy, err := a.vector(y)
	if err != nil {
		return 0, err
	}
	return vector.Dot(*vx, *vy), nil
}

// FreeVector releases a vector handle.
func (a *Arena) FreeVector(id VectorID) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.vectors[id]; !ok {
		return fmt.Errorf("free vector %s: %w", id, ErrUnknownHandle)
	}
	delete(a.vectors, id)
	return nil
}

// NewPolygon stores a polygon of count zero vertices.
func (a *Arena) NewPolygon(count int) (PolygonID, error) {
	p, err := polygon.New(count)
	if err != nil {
		return PolygonID{}, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.putPolygon(p), nil
}

// NewPolygonCoords stores a polygon built from [x1, y1, x2, y2, ...].
func (a *Arena) NewPolygonCoords(coords ...float32) (PolygonID, error) {
	p, err := polygon.FromCoords(coords...)
	if err != nil {
		return PolygonID{}, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.putPolygon(p), nil
}

// PolygonLen returns the vertex count of a held polygon.
func (a *Arena) PolygonLen(id PolygonID) (int, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	p, err := a.polygon(id)
	if err != nil {
		return 0, err
	}
	return p.Len(), nil
}

// PolygonVertex copies vertex n (1-based, as hosts index) into a new vector
// handle. ok is false when n is out of range and nothing is allocated.
func (a *Arena) PolygonVertex(id PolygonID, n int) (vid VectorID, ok bool, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	p, err := a.polygon(id)
	if err != nil {
		return VectorID{}, false, err
	}
	v, ok := p.VertexAt(n - 1)
	if !ok {
		return VectorID{}, false, nil
	}
	return a.putVector(v), true, nil
}

// SetPolygon overwrites every vertex of a held polygon.
func (a *Arena) SetPolygon(id PolygonID, coords ...float32) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	p, err := a.polygon(id)
	if err != nil {
		return err
	}
	return p.Set(coords...)
}

// TranslatePolygon moves a held polygon by offset*scale.
func (a *Arena) TranslatePolygon(id PolygonID, offset VectorID, scale float32) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	p, err := a.polygon(id)
	if err != nil {
		return err
	}
	o, err := a.vector(offset)
	if err != nil {
		return err
	}
	p.AddScaled(*o, scale)
	return nil
}

// BoundingCircle returns a new handle for the polygon's bounding circle
// center together with its radius.
func (a *Arena) BoundingCircle(id PolygonID) (VectorID, float32, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	p, err := a.polygon(id)
	if err != nil {
		return VectorID{}, 0, err
	}
	c, r := p.BoundingCircle()
	return a.putVector(c), r, nil
}

// FreePolygon releases a polygon handle.
func (a *Arena) FreePolygon(id PolygonID) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.polygons[id]; !ok {
		return fmt.Errorf("free polygon %s: %w", id, ErrUnknownHandle)
	}
	delete(a.polygons, id)
	return nil
}

// vector and polygon expect a.mu to be held.

func (a *Arena) vector(id VectorID) (*vector.Vector2D, error) {
	v, ok := a.vectors[id]
	if !ok {
		return nil, fmt.Errorf("vector %s: %w", id, ErrUnknownHandle)
	}
	return v, nil
}

func (a *Arena) polygon(id PolygonID) (*polygon.Polygon, error) {
	p, ok := a.polygons[id]
	if !ok {
		return nil, fmt.Errorf("polygon %s: %w", id, ErrUnknownHandle)
	}
	return p, nil
}

func (a *Arena) putVector(v vector.Vector2D) VectorID {
	id := VectorID(uuid.New())
	a.vectors[id] = &v
	return id
}

func (a *Arena) putPolygon(p *polygon.Polygon) PolygonID {
	id := PolygonID(uuid.New())
	a.polygons[id] = p
	return id
}
