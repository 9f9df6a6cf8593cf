package spline

import (
	"math"
	"testing"

	"go.viam.com/test"

	"github.com/empireu/Coyote-sub001/dual"
	"github.com/empireu/Coyote-sub001/units"
)

func straightSegment() QuinticSegment {
	return QuinticSegment{
		P0: units.V2[units.Displacement](0, 0),
		V0: units.V2[units.Velocity](0, 0),
		A0: units.V2[units.Acceleration](0, 0),
		P1: units.V2[units.Displacement](10, 0),
		V1: units.V2[units.Velocity](0, 0),
		A1: units.V2[units.Acceleration](0, 0),
	}
}

func TestSegmentBoundaryConditions(t *testing.T) {
	seg := QuinticSegment{
		P0: units.V2[units.Displacement](1, 2),
		V0: units.V2[units.Velocity](3, -4),
		A0: units.V2[units.Acceleration](-5, 6),
		P1: units.V2[units.Displacement](7, -8),
		V1: units.V2[units.Velocity](-9, 10),
		A1: units.V2[units.Acceleration](11, -12),
	}

	// The basis functions satisfy the boundary conditions by construction,
	// so the endpoints are hit exactly, not approximately.
	test.That(t, seg.Position(0), test.ShouldResemble, seg.P0)
	test.That(t, seg.Position(1), test.ShouldResemble, seg.P1)
	test.That(t, seg.Velocity(0), test.ShouldResemble, seg.V0)
	test.That(t, seg.Velocity(1), test.ShouldResemble, seg.V1)
	test.That(t, seg.Acceleration(0), test.ShouldResemble, seg.A0)
	test.That(t, seg.Acceleration(1), test.ShouldResemble, seg.A1)
}

// Each basis polynomial is rebuilt with dual numbers and its closed-form
// first and second derivatives are checked against the dual derivatives.
func TestBasisDerivativesMatchDual(t *testing.T) {
	coeffs := [6][6]float64{
		{1, 0, 0, -10, 15, -6},
		{0, 1, 0, -6, 8, -3},
		{0, 0, 0.5, -1.5, 1.5, -0.5},
		{0, 0, 0, 10, -15, 6},
		{0, 0, 0, -4, 7, -3},
		{0, 0, 0, 0.5, -1, 0.5},
	}
	for _, x := range []float64{0, 0.15, 0.5, 0.85, 1} {
		h := hermiteBasis(x)
		dh := hermiteBasisDeriv(x)
		ddh := hermiteBasisDeriv2(x)
		for k := 0; k < 6; k++ {
			d := dual.Var(x, 2)
			poly := dual.Const(coeffs[k][0], 2)
			for p := 1; p < 6; p++ {
				poly = poly.Add(dual.Pow(d, float64(p)).Scale(coeffs[k][p]))
			}
			test.That(t, h[k], test.ShouldAlmostEqual, poly.Value(), 1e-12)
			test.That(t, dh[k], test.ShouldAlmostEqual, poly.Derivative(1), 1e-10)
			test.That(t, ddh[k], test.ShouldAlmostEqual, poly.Derivative(2), 1e-10)
		}
	}
}

func TestUniformIndices(t *testing.T) {
	s := &Spline{}
	s.Add(straightSegment())
	s.Add(straightSegment())
	s.Add(straightSegment())
	s.Add(straightSegment())

	cases := []struct {
		t     float64
		idx   int
		local float64
	}{
		{0, 0, 0},
		{0.125, 0, 0.5},
		{0.25, 1, 0},
		{0.5, 2, 0},
		{0.9375, 3, 0.75},
		{1, 3, 1},
		{-0.5, 0, 0},
		{1.5, 3, 1},
	}
	for _, c := range cases {
		idx, local := s.UniformIndices(units.Scalar[units.Percentage](c.t))
		test.That(t, idx, test.ShouldEqual, c.idx)
		test.That(t, local, test.ShouldAlmostEqual, c.local, 1e-12)
	}
}

func TestBuildSplineValidation(t *testing.T) {
	_, err := BuildSpline(nil)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = BuildSpline([]Waypoint{{}})
	test.That(t, err, test.ShouldNotBeNil)

	s, err := BuildSpline([]Waypoint{
		{Position: units.V2[units.Displacement](0, 0)},
		{Position: units.V2[units.Displacement](5, 0)},
		{Position: units.V2[units.Displacement](10, 5)},
	})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, s.Len(), test.ShouldEqual, 2)
	test.That(t, s.Position(0), test.ShouldResemble, units.V2[units.Displacement](0, 0))
	test.That(t, s.Position(1), test.ShouldResemble, units.V2[units.Displacement](10, 5))
}

func TestArcLengthStraightLine(t *testing.T) {
	// Matching endpoint velocities reduce the quintic to the straight line
	// p(t) = P1·t, so the arc length is exact.
	s := &Spline{}
	s.Add(QuinticSegment{
		P0: units.V2[units.Displacement](0, 0),
		V0: units.V2[units.Velocity](10, 10),
		P1: units.V2[units.Displacement](10, 10),
		V1: units.V2[units.Velocity](10, 10),
	})
	test.That(t, s.ArcLength(0).Value(), test.ShouldAlmostEqual, 10*math.Sqrt2, 1e-9)
}

func quarterCircleSegment() QuinticSegment {
	// Unit circle from angle 0 to π/2 with exact endpoint derivatives.
	w := math.Pi / 2
	return QuinticSegment{
		P0: units.V2[units.Displacement](1, 0),
		V0: units.V2[units.Velocity](0, w),
		A0: units.V2[units.Acceleration](-w*w, 0),
		P1: units.V2[units.Displacement](0, 1),
		V1: units.V2[units.Velocity](-w, 0),
		A1: units.V2[units.Acceleration](0, -w*w),
	}
}

func TestCurvatureQuarterCircle(t *testing.T) {
	s := &Spline{}
	s.Add(quarterCircleSegment())

	for _, p := range []float64{0, 0.25, 0.5, 0.75, 1} {
		k := s.Curvature(units.Scalar[units.Percentage](p))
		test.That(t, k.Value(), test.ShouldAlmostEqual, 1, 0.02)
	}
	test.That(t, s.ArcLength(0).Value(), test.ShouldAlmostEqual, math.Pi/2, 1e-3)
}

func TestProjection(t *testing.T) {
	s := &Spline{}
	s.Add(straightSegment())

	proj := s.Project(units.V2[units.Displacement](3, 1))
	test.That(t, s.Position(proj).X.Value(), test.ShouldAlmostEqual, 3, 1e-3)
	test.That(t, s.Position(proj).Y.Value(), test.ShouldAlmostEqual, 0, 1e-9)

	// Points beyond the ends clamp to the nearest endpoint.
	test.That(t, s.Project(units.V2[units.Displacement](-5, 2)).Value(), test.ShouldAlmostEqual, 0, 1e-6)
	test.That(t, s.Project(units.V2[units.Displacement](15, 2)).Value(), test.ShouldAlmostEqual, 1, 1e-6)
}

func TestSampleCurveStraightLine(t *testing.T) {
	s := &Spline{}
	s.Add(straightSegment())

	admissible := AdmissibleTwist{Dx: 0.5, Dy: 0.5, DTheta: 0.1}
	points, err := SampleCurve(s, 0, 1, 1e-5, admissible, 10000)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(points), test.ShouldBeGreaterThan, 10)

	test.That(t, points[0].Parameter.Value(), test.ShouldEqual, 0)
	test.That(t, points[len(points)-1].Parameter.Value(), test.ShouldEqual, 1)
	for i := 1; i < len(points); i++ {
		test.That(t, points[i].Parameter.Value(), test.ShouldBeGreaterThan, points[i-1].Parameter.Value())
		gap := points[i].Pose.Translation.Distance(points[i-1].Pose.Translation).Value()
		test.That(t, gap, test.ShouldBeLessThanOrEqualTo, 0.5+1e-9)
	}
}

func TestSampleCurveIterationCap(t *testing.T) {
	s := &Spline{}
	s.Add(straightSegment())

	admissible := AdmissibleTwist{Dx: 0.01, Dy: 0.01, DTheta: 0.01}
	_, err := SampleCurve(s, 0, 1, 1e-9, admissible, 5)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "malformed spline")
}
