package trajectory

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestQuadraticBelow(t *testing.T) {
	// v² - 1 ≤ 0 on [-1, 1].
	spans := quadraticBelow(1, 0, -1)
	test.That(t, len(spans), test.ShouldEqual, 1)
	test.That(t, spans[0].lo, test.ShouldAlmostEqual, -1)
	test.That(t, spans[0].hi, test.ShouldAlmostEqual, 1)

	// v² + 1 ≤ 0 never holds.
	test.That(t, quadraticBelow(1, 0, 1), test.ShouldBeNil)

	// -v² + 1 ≤ 0 outside (-1, 1).
	spans = quadraticBelow(-1, 0, 1)
	test.That(t, len(spans), test.ShouldEqual, 2)
	test.That(t, spans[0].hi, test.ShouldAlmostEqual, -1)
	test.That(t, spans[1].lo, test.ShouldAlmostEqual, 1)

	// Linear: 2v - 4 ≤ 0 on (-∞, 2].
	spans = quadraticBelow(0, 2, -4)
	test.That(t, len(spans), test.ShouldEqual, 1)
	test.That(t, spans[0].hi, test.ShouldAlmostEqual, 2)

	// Constant conditions.
	test.That(t, len(quadraticBelow(0, 0, -1)), test.ShouldEqual, 1)
	test.That(t, quadraticBelow(0, 0, 1), test.ShouldBeNil)
}

func TestCurvatureAccelerationBound(t *testing.T) {
	// Equal curvatures demand no rotational acceleration.
	test.That(t, math.IsInf(curvatureAccelerationBound(0.3, 0.3, 0.1, 2, 4), 1), test.ShouldBeTrue)
	test.That(t, math.IsInf(curvatureAccelerationBound(0, 0, 0.1, 2, 4), 1), test.ShouldBeTrue)

	// All non-degenerate cases produce a finite positive threshold.
	cases := [][2]float64{
		{0, 0.5}, {0, -0.5}, {0.5, 0}, {-0.5, 0},
		{0.2, 0.6}, {-0.2, -0.6}, {0.6, 0.2}, {-0.6, -0.2},
		{0.4, -0.4}, {-0.4, 0.4},
	}
	for _, c := range cases {
		bound := curvatureAccelerationBound(c[0], c[1], 0.1, 2, 4)
		test.That(t, bound, test.ShouldBeGreaterThan, 0)
		test.That(t, math.IsInf(bound, 0), test.ShouldBeFalse)

		// The split is symmetric under mirroring both curvatures.
		mirrored := curvatureAccelerationBound(-c[0], -c[1], 0.1, 2, 4)
		test.That(t, mirrored, test.ShouldAlmostEqual, bound, 1e-12)
	}

	// A tighter angular budget lowers the threshold.
	loose := curvatureAccelerationBound(0.2, 0.6, 0.1, 2, 4)
	tight := curvatureAccelerationBound(0.2, 0.6, 0.1, 2, 0.5)
	test.That(t, tight, test.ShouldBeLessThan, loose)
}

func TestAdmissibleVelocityStraight(t *testing.T) {
	// No curvature: the translational window alone decides.
	v, approximated := admissibleVelocity(1, 10, 0.5, 0, 0, 2, 4)
	test.That(t, approximated, test.ShouldBeFalse)
	test.That(t, v, test.ShouldAlmostEqual, math.Sqrt(1+2*2*0.5))

	// The profile cap wins when it is lower.
	v, approximated = admissibleVelocity(1, 1.2, 0.5, 0, 0, 2, 4)
	test.That(t, approximated, test.ShouldBeFalse)
	test.That(t, v, test.ShouldAlmostEqual, 1.2)
}

func TestAdmissibleVelocityBackwardRoundTrip(t *testing.T) {
	// The backward sweep feeds in velocities the forward sweep produced via
	// v = sqrt(vPrev² + 2·a·ds); recomputing the lower reachability bound
	// inverts that sqrt, so the intersection against the forward value can
	// miss by a rounding error. A gap that small must count as touching,
	// not trigger the midpoint fallback and halve the velocity.
	for _, c := range []struct {
		vCap, ds, accel float64
	}{
		{1.883139, 0.0145, 1},
		{0.05, 0.05, 1},
		{2, 0.03, 1000},
	} {
		vNext := math.Sqrt(c.vCap*c.vCap + 2*c.accel*c.ds)
		v, approximated := admissibleVelocity(vNext, c.vCap, c.ds, 0, 0, c.accel, 1000)
		test.That(t, approximated, test.ShouldBeFalse)
		test.That(t, v, test.ShouldAlmostEqual, c.vCap, 1e-9)
	}
}

func TestAdmissibleVelocityFallback(t *testing.T) {
	// A fast spin-down to zero curvature with a tiny angular budget leaves
	// no admissible velocity; the fallback must still produce a usable,
	// non-negative value and report the approximation.
	v, approximated := admissibleVelocity(10, 20, 0.1, 1, 0, 5, 0.01)
	test.That(t, approximated, test.ShouldBeTrue)
	test.That(t, v, test.ShouldBeGreaterThanOrEqualTo, 0)
	test.That(t, v, test.ShouldBeLessThanOrEqualTo, 20)
	test.That(t, math.IsNaN(v), test.ShouldBeFalse)
}
