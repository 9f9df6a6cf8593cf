// Package spline implements piecewise quintic Hermite curves: construction
// from waypoints, evaluation with analytic derivatives and curvature, arc
// length, nearest-point projection, and curvature-adaptive sampling into
// curve poses consumed by the trajectory generator.
package spline

import (
	"math"

	"github.com/golang/geo/r2"

	"github.com/empireu/Coyote-sub001/units"
)

// QuinticSegment is a degree-5 Hermite curve piece fully determined by
// position, velocity, and acceleration at both ends of its [0, 1] parameter
// domain. Immutable once constructed.
type QuinticSegment struct {
	P0 units.Vector2[units.Displacement]
	V0 units.Vector2[units.Velocity]
	A0 units.Vector2[units.Acceleration]
	P1 units.Vector2[units.Displacement]
	V1 units.Vector2[units.Velocity]
	A1 units.Vector2[units.Acceleration]
}

// Quintic Hermite basis functions. h0/h3 carry the endpoint positions,
// h1/h4 the endpoint velocities, h2/h5 the endpoint accelerations.
func hermiteBasis(t float64) [6]float64 {
	t2 := t * t
	t3 := t2 * t
	t4 := t3 * t
	t5 := t4 * t
	return [6]float64{
		1 - 10*t3 + 15*t4 - 6*t5,
		t - 6*t3 + 8*t4 - 3*t5,
		0.5*t2 - 1.5*t3 + 1.5*t4 - 0.5*t5,
		10*t3 - 15*t4 + 6*t5,
		-4*t3 + 7*t4 - 3*t5,
		0.5*t3 - t4 + 0.5*t5,
	}
}

func hermiteBasisDeriv(t float64) [6]float64 {
	t2 := t * t
	t3 := t2 * t
	t4 := t3 * t
	return [6]float64{
		-30*t2 + 60*t3 - 30*t4,
		1 - 18*t2 + 32*t3 - 15*t4,
		t - 4.5*t2 + 6*t3 - 2.5*t4,
		30*t2 - 60*t3 + 30*t4,
		-12*t2 + 28*t3 - 15*t4,
		1.5*t2 - 4*t3 + 2.5*t4,
	}
}

func hermiteBasisDeriv2(t float64) [6]float64 {
	t2 := t * t
	t3 := t2 * t
	return [6]float64{
		-60*t + 180*t2 - 120*t3,
		-36*t + 96*t2 - 60*t3,
		1 - 9*t + 18*t2 - 10*t3,
		60*t - 180*t2 + 120*t3,
		-24*t + 84*t2 - 60*t3,
		3*t - 12*t2 + 10*t3,
	}
}

func (s QuinticSegment) combine(h [6]float64) r2.Point {
	p := s.P0.R2().Mul(h[0])
	p = p.Add(s.V0.R2().Mul(h[1]))
	p = p.Add(s.A0.R2().Mul(h[2]))
	p = p.Add(s.P1.R2().Mul(h[3]))
	p = p.Add(s.V1.R2().Mul(h[4]))
	p = p.Add(s.A1.R2().Mul(h[5]))
	return p
}

// Position evaluates the segment at local parameter t.
func (s QuinticSegment) Position(t float64) units.Vector2[units.Displacement] {
	return units.V2FromR2[units.Displacement](s.combine(hermiteBasis(t)))
}

// Velocity evaluates the analytic first derivative at local parameter t.
func (s QuinticSegment) Velocity(t float64) units.Vector2[units.Velocity] {
	return units.V2FromR2[units.Velocity](s.combine(hermiteBasisDeriv(t)))
}

// Acceleration evaluates the analytic second derivative at local parameter t.
func (s QuinticSegment) Acceleration(t float64) units.Vector2[units.Acceleration] {
	return units.V2FromR2[units.Acceleration](s.combine(hermiteBasisDeriv2(t)))
}

// Curvature evaluates the signed path curvature
// κ = (x'y'' - x''y') / (x'² + y'²)^(3/2) from the analytic derivatives.
func (s QuinticSegment) Curvature(t float64) units.Scalar[units.Curvature] {
	d := s.combine(hermiteBasisDeriv(t))
	dd := s.combine(hermiteBasisDeriv2(t))
	speedSq := d.X*d.X + d.Y*d.Y
	return units.Scalar[units.Curvature]((d.X*dd.Y - dd.X*d.Y) / (speedSq * math.Sqrt(speedSq)))
}
