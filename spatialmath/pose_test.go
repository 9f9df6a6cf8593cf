package spatialmath

import (
	"math"
	"math/rand"
	"testing"

	"github.com/golang/geo/r2"
	"go.viam.com/test"

	"github.com/empireu/Coyote-sub001/units"
)

func TestRotationComposition(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		a := units.Scalar[units.Angle](r.Float64()*4*math.Pi - 2*math.Pi)
		b := units.Scalar[units.Angle](r.Float64()*4*math.Pi - 2*math.Pi)
		composed := NewRotation(a).Mul(NewRotation(b))
		test.That(t, RotationAlmostEqual(composed, NewRotation(a.Add(b)), 1e-9), test.ShouldBeTrue)

		identity := NewRotation(a).Mul(NewRotation(a).Inverse())
		test.That(t, RotationAlmostEqual(identity, NewZeroRotation(), 1e-9), test.ShouldBeTrue)
	}
}

func TestRotationFromDirection(t *testing.T) {
	r := RotationFromDirection(r2.Point{X: 3, Y: 4})
	test.That(t, r.Cos(), test.ShouldAlmostEqual, 0.6)
	test.That(t, r.Sin(), test.ShouldAlmostEqual, 0.8)
	test.That(t, r.Log().Value(), test.ShouldAlmostEqual, math.Atan2(4, 3))
}

func TestPoseComposeInverse(t *testing.T) {
	p := NewPose(NewTranslation(2, -1), NewRotation(0.7))
	q := NewPose(NewTranslation(-3, 5), NewRotation(-1.2))

	test.That(t, PoseAlmostEqual(Compose(p, PoseInverse(p)), NewZeroPose(), 1e-9), test.ShouldBeTrue)
	test.That(t, PoseAlmostEqual(Compose(p, PoseBetween(p, q)), q, 1e-9), test.ShouldBeTrue)
}

func TestTwistRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for i := 0; i < 200; i++ {
		twist := Twist{
			Dx:     units.Scalar[units.Displacement](r.Float64()*20 - 10),
			Dy:     units.Scalar[units.Displacement](r.Float64()*20 - 10),
			DTheta: units.Scalar[units.Angle]((r.Float64()*2 - 1) * (math.Pi - 1e-6)),
		}
		back := PoseLog(PoseExp(twist))
		test.That(t, back.Dx.Value(), test.ShouldAlmostEqual, twist.Dx.Value(), 1e-9)
		test.That(t, back.Dy.Value(), test.ShouldAlmostEqual, twist.Dy.Value(), 1e-9)
		test.That(t, back.DTheta.Value(), test.ShouldAlmostEqual, twist.DTheta.Value(), 1e-9)
	}
}

func TestPoseRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		p := NewPose(
			NewTranslation(r.Float64()*20-10, r.Float64()*20-10),
			NewRotation(units.Scalar[units.Angle]((r.Float64()*2-1)*(math.Pi-1e-6))),
		)
		test.That(t, PoseAlmostEqual(PoseExp(PoseLog(p)), p, 1e-9), test.ShouldBeTrue)
	}
}

func TestSmallAngleExpLog(t *testing.T) {
	// Below the series guard the maps must still be exact inverses.
	for _, theta := range []float64{0, 1e-12, -1e-12, 1e-10, -1e-10} {
		twist := Twist{Dx: 1, Dy: -2, DTheta: units.Scalar[units.Angle](theta)}
		p := PoseExp(twist)
		test.That(t, p.Translation.Vector.X.Value(), test.ShouldAlmostEqual, 1, 1e-9)
		test.That(t, p.Translation.Vector.Y.Value(), test.ShouldAlmostEqual, -2, 1e-9)
		back := PoseLog(p)
		test.That(t, back.Dx.Value(), test.ShouldAlmostEqual, 1, 1e-9)
		test.That(t, back.Dy.Value(), test.ShouldAlmostEqual, -2, 1e-9)
	}
}

func TestPoseInterpolate(t *testing.T) {
	a := NewPose(NewTranslation(0, 0), NewRotation(0))
	b := NewPose(NewTranslation(2, 0), NewRotation(1.0))

	test.That(t, PoseAlmostEqual(PoseInterpolate(a, b, 0), a, 1e-9), test.ShouldBeTrue)
	test.That(t, PoseAlmostEqual(PoseInterpolate(a, b, 1), b, 1e-9), test.ShouldBeTrue)

	mid := PoseInterpolate(a, b, 0.5)
	test.That(t, mid.Rotation.Log().Value(), test.ShouldAlmostEqual, 0.5, 1e-9)

	// Interpolation across the ±π seam must not sweep the long way around.
	c := NewPose(NewTranslation(0, 0), NewRotation(3.0))
	d := NewPose(NewTranslation(0, 0), NewRotation(-3.0))
	half := PoseInterpolate(c, d, 0.5)
	test.That(t, math.Abs(half.Rotation.Log().Value()), test.ShouldAlmostEqual, math.Pi, 1e-9)
}
