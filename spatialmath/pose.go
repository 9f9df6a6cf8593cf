package spatialmath

import (
	"math"

	"github.com/empireu/Coyote-sub001/units"
)

// The closed-form Exp/Log coefficients divide by the angle; below this bound
// they switch to a truncated series.
const smallAngleEpsilon = 1e-9

// Translation is a planar displacement.
type Translation struct {
	Vector units.Vector2[units.Displacement]
}

// NewTranslation builds a translation from displacement components in meters.
func NewTranslation(x, y float64) Translation {
	return Translation{units.V2[units.Displacement](x, y)}
}

// Add returns t + o.
func (t Translation) Add(o Translation) Translation {
	return Translation{t.Vector.Add(o.Vector)}
}

// Distance returns the Euclidean distance to o.
func (t Translation) Distance(o Translation) units.Scalar[units.Displacement] {
	return t.Vector.Distance(o.Vector)
}

// Pose is a rigid planar transform: a translation followed by a rotation
// about the translated origin. Poses are immutable value types.
type Pose struct {
	Translation Translation
	Rotation    Rotation
}

// NewPose builds a pose from a translation and rotation.
func NewPose(t Translation, r Rotation) Pose {
	return Pose{t, r}
}

// NewZeroPose returns the identity pose.
func NewZeroPose() Pose {
	return Pose{Rotation: NewZeroRotation()}
}

// Compose returns the pose a∘b, i.e. b expressed in a's frame.
func Compose(a, b Pose) Pose {
	rotated := a.Rotation.Rotate(b.Translation.Vector.R2())
	return Pose{
		Translation: Translation{a.Translation.Vector.Add(units.V2FromR2[units.Displacement](rotated))},
		Rotation:    a.Rotation.Mul(b.Rotation),
	}
}

// PoseInverse returns the pose p⁻¹ such that Compose(p, p⁻¹) is the identity.
func PoseInverse(p Pose) Pose {
	inv := p.Rotation.Inverse()
	back := inv.Rotate(p.Translation.Vector.R2())
	return Pose{
		Translation: Translation{units.V2FromR2[units.Displacement](back).Neg()},
		Rotation:    inv,
	}
}

// PoseBetween returns the relative pose a⁻¹∘b taking a to b.
func PoseBetween(a, b Pose) Pose {
	return Compose(PoseInverse(a), b)
}

// Twist is an element of the SE(2) Lie algebra: an instantaneous planar
// velocity or, scaled by a duration, a pose delta in the start frame.
type Twist struct {
	Dx     units.Scalar[units.Displacement]
	Dy     units.Scalar[units.Displacement]
	DTheta units.Scalar[units.Angle]
}

// Scale returns the twist multiplied by a dimensionless factor.
func (t Twist) Scale(k float64) Twist {
	return Twist{t.Dx.Mul(k), t.Dy.Mul(k), t.DTheta.Mul(k)}
}

// PoseExp maps a twist to the pose reached by following it for unit time.
// Both trig coefficients are series-expanded near zero angle so the map is
// symmetric with PoseLog and total over small twists.
func PoseExp(t Twist) Pose {
	theta := t.DTheta.Value()
	var a, b float64 // sinθ/θ and (1-cosθ)/θ
	if math.Abs(theta) < smallAngleEpsilon {
		a = 1 - theta*theta/6
		b = theta / 2
	} else {
		a = math.Sin(theta) / theta
		b = (1 - math.Cos(theta)) / theta
	}
	ux, uy := t.Dx.Value(), t.Dy.Value()
	return Pose{
		Translation: NewTranslation(a*ux-b*uy, b*ux+a*uy),
		Rotation:    NewRotation(t.DTheta),
	}
}

// PoseLog maps a pose delta back to the twist that produces it under PoseExp,
// using the half-angle cotangent form with a series guard where cosθ-1
// vanishes. Exact inverse of PoseExp for |θ| < π.
func PoseLog(p Pose) Twist {
	theta := p.Rotation.Log().Value()
	var a float64 // (θ/2)·cot(θ/2)
	if math.Abs(p.Rotation.Cos()-1) < smallAngleEpsilon {
		a = 1 - theta*theta/12
	} else {
		half := theta / 2
		a = half * math.Cos(half) / math.Sin(half)
	}
	half := theta / 2
	tx, ty := p.Translation.Vector.X.Value(), p.Translation.Vector.Y.Value()
	return Twist{
		Dx:     units.Scalar[units.Displacement](a*tx + half*ty),
		Dy:     units.Scalar[units.Displacement](-half*tx + a*ty),
		DTheta: units.Scalar[units.Angle](theta),
	}
}

// PoseInterpolate returns the pose at fraction t along the geodesic from a to
// b, interpolating rotation through the Log/Exp maps rather than averaging
// angles, which avoids wrap-around artifacts.
func PoseInterpolate(a, b Pose, t float64) Pose {
	return Compose(a, PoseExp(PoseLog(PoseBetween(a, b)).Scale(t)))
}

// PoseAlmostEqual reports whether two poses coincide within epsilon in both
// translation components and rotation components.
func PoseAlmostEqual(a, b Pose, epsilon float64) bool {
	return a.Translation.Vector.X.ApproxEqual(b.Translation.Vector.X, epsilon) &&
		a.Translation.Vector.Y.ApproxEqual(b.Translation.Vector.Y, epsilon) &&
		RotationAlmostEqual(a.Rotation, b.Rotation, epsilon)
}
