package binding

import (
	"github.com/tomz197/collide/internal/collision"
)

// CircleCircleCheck reports whether two circles overlap.
func (a *Arena) CircleCircleCheck(centerA VectorID, radiusA float32, centerB VectorID, radiusB float32) (bool, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	ca, err := a.vector(centerA)
	if err != nil {
		return false, err
	}
	cb, err := a.vector(centerB)
	if err != nil {
		return false, err
	}
	return collision.CircleCircleCheck(*ca, radiusA, *cb, radiusB), nil
}

// CircleCircle resolves two circles. On a hit the direction is returned as
// a new handle owned by the caller; on a miss nothing is allocated.
func (a *Arena) CircleCircle(centerA VectorID, radiusA float32, centerB VectorID, radiusB float32) (dir VectorID, depth float32, hit bool, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	ca, err := a.vector(centerA)
	if err != nil {
		return VectorID{}, 0, false, err
	}
	cb, err := a.vector(centerB)
	if err != nil {
		return VectorID{}, 0, false, err
	}
	res, ok := collision.CircleCircle(*ca, radiusA, *cb, radiusB)
	return a.result(res, ok)
}

// PolyPolyCheck reports whether two polygons overlap.
func (a *Arena) PolyPolyCheck(pa, pb PolygonID) (bool, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	polyA, err := a.polygon(pa)
	if err != nil {
		return false, err
	}
	polyB, err := a.polygon(pb)
	if err != nil {
		return false, err
	}
	return collision.PolyPolyCheck(polyA, polyB), nil
}

// PolyPoly resolves two polygons, allocating the direction only on a hit.
func (a *Arena) PolyPoly(pa, pb PolygonID) (dir VectorID, depth float32, hit bool, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	polyA, err := a.polygon(pa)
	if err != nil {
		return VectorID{}, 0, false, err
	}
	polyB, err := a.polygon(pb)
	if err != nil {
		return VectorID{}, 0, false, err
	}
	res, ok := collision.PolyPoly(polyA, polyB)
	return a.result(res, ok)
}

// CirclePolyCheck reports whether a circle overlaps a polygon.
func (a *Arena) CirclePolyCheck(center VectorID, radius float32, poly PolygonID) (bool, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	c, err := a.vector(center)
	if err != nil {
		return false, err
	}
	p, err := a.polygon(poly)
	if err != nil {
		return false, err
	}
	return collision.CirclePolyCheck(*c, radius, p), nil
}

// CirclePoly resolves a circle against a polygon, allocating the direction
// only on a hit.
func (a *Arena) CirclePoly(center VectorID, radius float32, poly PolygonID) (dir VectorID, depth float32, hit bool, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	c, err := a.vector(center)
	if err != nil {
		return VectorID{}, 0, false, err
	}
	p, err := a.polygon(poly)
	if err != nil {
		return VectorID{}, 0, false, err
	}
	res, ok := collision.CirclePoly(*c, radius, p)
	return a.result(res, ok)
}

// Sword runs the directional probe and always allocates the inward normal.
func (a *Arena) Sword(center VectorID, radius float32, poly PolygonID) (dir VectorID, depth float32, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	c, err := a.vector(center)
	if err != nil {
		return VectorID{}, 0, err
	}
	p, err := a.polygon(poly)
	if err != nil {
		return VectorID{}, 0, err
	}
	res, err := collision.Sword(*c, radius, p)
	if err != nil {
		return VectorID{}, 0, err
	}
	return a.putVector(res.Dir), res.Depth, nil
}

func (a *Arena) result(res collision.Result, ok bool) (VectorID, float32, bool, error) {
	if !ok {
		return VectorID{}, 0, false, nil
	}
	return a.putVector(res.Dir), res.Depth, true, nil
}
