// Package vector provides the 2D vector value type used by the polygon and
// collision packages.
//
// Coordinates follow screen space: origin top-left, +x right, +y down.
package vector

import (
	"fmt"
	"math"
)

// Vector2D is a pair of single-precision coordinates.
// It is a plain value; copies are independent.
type Vector2D struct {
	X, Y float32
}

// Scaled pairs a vector with a scale factor for AddScaledPairs.
type Scaled struct {
	V     Vector2D
	Scale float32
}

// New returns the vector (x, y).
func New(x, y float32) Vector2D {
	return Vector2D{X: x, Y: y}
}

// Length returns the Euclidean norm of v.
func Length(v Vector2D) float32 {
	return sqrt(v.X*v.X + v.Y*v.Y)
}

// LengthSquared returns the squared norm of v.
// Use this when comparing lengths to avoid the sqrt cost.
func LengthSquared(v Vector2D) float32 {
	return v.X*v.X + v.Y*v.Y
}

// Dot returns the dot product of a and b.
func Dot(a, b Vector2D) float32 {
	return a.X*b.X + a.Y*b.Y
}

// LeftNormal returns src rotated so that, with +y pointing down, it faces
// outward from a clockwise-wound polygon edge.
func LeftNormal(src Vector2D) Vector2D {
	return Vector2D{X: src.Y, Y: -src.X}
}

// RightNormal returns the negation of LeftNormal.
func RightNormal(src Vector2D) Vector2D {
	return Vector2D{X: -src.Y, Y: src.X}
}

// DirectionNormalized returns the unit vector pointing from pb toward pa.
// Coincident points yield the zero vector instead of NaN.
func DirectionNormalized(pa, pb Vector2D) Vector2D {
	dx := pa.X - pb.X
	dy := pa.Y - pb.Y
	l := sqrt(dx*dx + dy*dy)
	if l == 0 {
		l = 1
	}
	return Vector2D{X: dx / l, Y: dy / l}
}

// DistanceSquared returns the squared distance between a and b.
func DistanceSquared(a, b Vector2D) float32 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Vector2D) float32 {
	return sqrt(DistanceSquared(a, b))
}

// Length returns the Euclidean norm of v.
func (v Vector2D) Length() float32 { return Length(v) }

// LengthSquared returns the squared norm of v.
func (v Vector2D) LengthSquared() float32 { return LengthSquared(v) }

// Dot returns the dot product of v and o.
func (v Vector2D) Dot(o Vector2D) float32 { return Dot(v, o) }

// Add returns v + o.
func (v Vector2D) Add(o Vector2D) Vector2D {
	return Vector2D{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vector2D) Sub(o Vector2D) Vector2D {
	return Vector2D{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v * s.
func (v Vector2D) Scale(s float32) Vector2D {
	return Vector2D{X: v.X * s, Y: v.Y * s}
}

// Neg returns -v.
func (v Vector2D) Neg() Vector2D {
	return Vector2D{X: -v.X, Y: -v.Y}
}

// IsZero reports whether both components are exactly zero.
func (v Vector2D) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// XY unpacks the components.
func (v Vector2D) XY() (x, y float32) {
	return v.X, v.Y
}

// Normalize scales v to unit length in place. The zero vector is left unchanged.
func (v *Vector2D) Normalize() {
	l := Length(*v)
	if l == 0 {
		return
	}
	v.X /= l
	v.Y /= l
}

// AddScaled adds other*scale to v in place.
func (v *Vector2D) AddScaled(other Vector2D, scale float32) {
	v.X += other.X * scale
	v.Y += other.Y * scale
}

// AddScaledPairs applies AddScaled for each pair in order.
func (v *Vector2D) AddScaledPairs(pairs ...Scaled) {
	for _, p := range pairs {
		v.AddScaled(p.V, p.Scale)
	}
}

// String formats v as "(x, y)" with two decimals.
func (v Vector2D) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", v.X, v.Y)
}

func sqrt(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}
