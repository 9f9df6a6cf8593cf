// Package units provides real-number and 2D-vector value types tagged with a
// compile-time unit marker. The tag has no runtime representation: a
// Scalar[U] is a plain float64 and all arithmetic follows IEEE-754 semantics.
// Mixing units is a compile error; deliberate reinterpretation goes through
// MappedTo so it is visible at the call site.
package units

import (
	"math"

	"github.com/empireu/Coyote-sub001/utils"
)

// Unit is the marker constraint for scalar and vector tags. The concrete
// markers are empty structs and never instantiated.
type Unit interface {
	unitName() string
}

// Unit markers for the quantities the motion core works in.
type (
	// Dimensionless tags a bare ratio or coefficient.
	Dimensionless struct{}
	// Displacement tags a length in meters.
	Displacement struct{}
	// Velocity tags a linear velocity in meters per second.
	Velocity struct{}
	// Acceleration tags a linear acceleration in meters per second squared.
	Acceleration struct{}
	// Angle tags an angle in radians.
	Angle struct{}
	// AngularVelocity tags an angular velocity in radians per second.
	AngularVelocity struct{}
	// AngularAcceleration tags an angular acceleration in radians per second squared.
	AngularAcceleration struct{}
	// Curvature tags a signed curvature in radians per meter.
	Curvature struct{}
	// Time tags an absolute or elapsed time in seconds.
	Time struct{}
	// Percentage tags a normalized [0, 1] parameter.
	Percentage struct{}
)

func (Dimensionless) unitName() string       { return "" }
func (Displacement) unitName() string        { return "m" }
func (Velocity) unitName() string            { return "m/s" }
func (Acceleration) unitName() string        { return "m/s^2" }
func (Angle) unitName() string               { return "rad" }
func (AngularVelocity) unitName() string     { return "rad/s" }
func (AngularAcceleration) unitName() string { return "rad/s^2" }
func (Curvature) unitName() string           { return "rad/m" }
func (Time) unitName() string                { return "s" }
func (Percentage) unitName() string          { return "%" }

// Scalar is a float64 tagged with unit U.
type Scalar[U Unit] float64

// Value returns the untagged float64.
func (s Scalar[U]) Value() float64 { return float64(s) }

// Add returns s + o.
func (s Scalar[U]) Add(o Scalar[U]) Scalar[U] { return s + o }

// Sub returns s - o.
func (s Scalar[U]) Sub(o Scalar[U]) Scalar[U] { return s - o }

// Neg returns -s.
func (s Scalar[U]) Neg() Scalar[U] { return -s }

// Mul scales s by a dimensionless factor.
func (s Scalar[U]) Mul(k float64) Scalar[U] { return s * Scalar[U](k) }

// Div divides s by a dimensionless factor. Division by zero follows IEEE
// semantics and propagates Inf/NaN.
func (s Scalar[U]) Div(k float64) Scalar[U] { return s / Scalar[U](k) }

// Ratio returns the dimensionless quotient s / o.
func (s Scalar[U]) Ratio(o Scalar[U]) float64 { return float64(s) / float64(o) }

// Abs returns the magnitude of s.
func (s Scalar[U]) Abs() Scalar[U] { return Scalar[U](math.Abs(float64(s))) }

// Clamp limits s to [lo, hi].
func (s Scalar[U]) Clamp(lo, hi Scalar[U]) Scalar[U] {
	return Scalar[U](utils.Clamp(float64(s), float64(lo), float64(hi)))
}

// Map remaps s from the source range onto the destination range, staying in
// the same unit. Cross-unit remapping composes Map with MappedTo.
func (s Scalar[U]) Map(srcLo, srcHi, dstLo, dstHi Scalar[U]) Scalar[U] {
	return Scalar[U](utils.Map(float64(s), float64(srcLo), float64(srcHi), float64(dstLo), float64(dstHi)))
}

// Min returns the smaller of s and o.
func (s Scalar[U]) Min(o Scalar[U]) Scalar[U] {
	if o < s {
		return o
	}
	return s
}

// Max returns the larger of s and o.
func (s Scalar[U]) Max(o Scalar[U]) Scalar[U] {
	if o > s {
		return o
	}
	return s
}

// ApproxEqual reports whether s and o differ by less than epsilon.
func (s Scalar[U]) ApproxEqual(o Scalar[U], epsilon float64) bool {
	return utils.Float64AlmostEqual(float64(s), float64(o), epsilon)
}

// Lerp linearly interpolates between a and b by the dimensionless fraction t.
func Lerp[U Unit](a, b Scalar[U], t float64) Scalar[U] {
	return Scalar[U](utils.Lerp(float64(a), float64(b), t))
}

// MappedTo reinterprets a scalar under a different unit tag. This is the only
// unit-to-unit conversion in the package and is deliberately loud at the call
// site; there are no implicit conversions.
func MappedTo[To, From Unit](s Scalar[From]) Scalar[To] {
	return Scalar[To](float64(s))
}
