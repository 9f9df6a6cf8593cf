package utils

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestClamp(t *testing.T) {
	test.That(t, Clamp(0.5, 0, 1), test.ShouldEqual, 0.5)
	test.That(t, Clamp(-1, 0, 1), test.ShouldEqual, 0)
	test.That(t, Clamp(2, 0, 1), test.ShouldEqual, 1)
}

func TestLerpMap(t *testing.T) {
	test.That(t, Lerp(2, 4, 0.25), test.ShouldAlmostEqual, 2.5)
	test.That(t, Map(5, 0, 10, 0, 100), test.ShouldAlmostEqual, 50)
	test.That(t, Map(0.5, 0, 1, -1, 1), test.ShouldAlmostEqual, 0)
}

func TestAngles(t *testing.T) {
	test.That(t, DegToRad(180), test.ShouldAlmostEqual, math.Pi)
	test.That(t, RadToDeg(math.Pi/2), test.ShouldAlmostEqual, 90)
}

func TestAlmostEqual(t *testing.T) {
	test.That(t, Float64AlmostEqual(1, 1+1e-10, 1e-9), test.ShouldBeTrue)
	test.That(t, Float64AlmostEqual(1, 1.1, 1e-9), test.ShouldBeFalse)
	test.That(t, AlmostZero(1e-10), test.ShouldBeTrue)
	test.That(t, AlmostZero(1e-8), test.ShouldBeFalse)
}
