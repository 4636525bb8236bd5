package vmath

import "math"

// Vec2 is a 2D vector in world units. Value semantics throughout; all
// methods return new vectors.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Scale(f float64) Vec2 {
	return Vec2{v.X * f, v.Y * f}
}

func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

func (v Vec2) LengthSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalize returns the unit vector, zero-safe: the zero vector
// normalizes to itself.
func (v Vec2) Normalize() Vec2 {
	mag := v.Length()
	if mag == 0 {
		return Vec2{}
	}
	return Vec2{v.X / mag, v.Y / mag}
}

// Angle returns the polar angle of v wrapped to [0, Tau)
func (v Vec2) Angle() float64 {
	return WrapAngle(math.Atan2(v.Y, v.X))
}

// FromPolar builds the vector at angle with the given magnitude
func FromPolar(angle, mag float64) Vec2 {
	return Vec2{math.Cos(angle) * mag, math.Sin(angle) * mag}
}

// Reflect mirrors v across the plane with unit normal n:
// v' = v - 2*dot(v,n)*n
func (v Vec2) Reflect(n Vec2) Vec2 {
	d := 2 * v.Dot(n)
	return Vec2{v.X - d*n.X, v.Y - d*n.Y}
}
