// Package spatialmath defines planar rigid-transform algebra for the motion
// core: rotations as unit complex numbers, poses as translation plus
// rotation, and twists as elements of the SE(2) Lie algebra with exponential
// and logarithm maps between them.
package spatialmath

import (
	"math"

	"github.com/golang/geo/r2"

	"github.com/empireu/Coyote-sub001/units"
)

// Rotation is a heading represented as a unit complex number (cos, sin).
// Composition is closed-form, so the unit norm is not actively renormalized;
// drift is negligible over typical trajectory lengths.
type Rotation struct {
	re float64
	im float64
}

// NewRotation builds a rotation from an angle in radians.
func NewRotation(angle units.Scalar[units.Angle]) Rotation {
	return Rotation{math.Cos(angle.Value()), math.Sin(angle.Value())}
}

// NewZeroRotation returns the identity rotation.
func NewZeroRotation() Rotation {
	return Rotation{re: 1}
}

// RotationFromDirection builds the rotation whose heading points along v.
// The components are normalized directly rather than passed through
// atan2/cos/sin, avoiding the extra trig round-trip.
func RotationFromDirection(v r2.Point) Rotation {
	n := math.Hypot(v.X, v.Y)
	return Rotation{v.X / n, v.Y / n}
}

// Cos returns the real (cosine) component.
func (r Rotation) Cos() float64 { return r.re }

// Sin returns the imaginary (sine) component.
func (r Rotation) Sin() float64 { return r.im }

// Log returns the rotation angle in (-π, π].
func (r Rotation) Log() units.Scalar[units.Angle] {
	return units.Scalar[units.Angle](math.Atan2(r.im, r.re))
}

// Mul composes two rotations by complex multiplication.
func (r Rotation) Mul(o Rotation) Rotation {
	return Rotation{
		re: r.re*o.re - r.im*o.im,
		im: r.re*o.im + r.im*o.re,
	}
}

// Inverse returns the conjugate rotation.
func (r Rotation) Inverse() Rotation {
	return Rotation{re: r.re, im: -r.im}
}

// Direction returns the unit heading vector.
func (r Rotation) Direction() r2.Point {
	return r2.Point{X: r.re, Y: r.im}
}

// Rotate applies the rotation to a point.
func (r Rotation) Rotate(p r2.Point) r2.Point {
	return r2.Point{
		X: r.re*p.X - r.im*p.Y,
		Y: r.im*p.X + r.re*p.Y,
	}
}

// RotationAlmostEqual reports whether two rotations agree within epsilon on
// both components, which avoids angle wrap-around artifacts.
func RotationAlmostEqual(a, b Rotation, epsilon float64) bool {
	return math.Abs(a.re-b.re) < epsilon && math.Abs(a.im-b.im) < epsilon
}
