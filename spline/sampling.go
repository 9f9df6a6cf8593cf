package spline

import (
	"github.com/pkg/errors"

	"github.com/empireu/Coyote-sub001/spatialmath"
	"github.com/empireu/Coyote-sub001/units"
)

// CurvePose is a sample of a spline: the pose at a parameter, with the
// instantaneous path curvature. The heading is the tangent direction.
type CurvePose struct {
	Pose      spatialmath.Pose
	Curvature units.Scalar[units.Curvature]
	Parameter units.Scalar[units.Percentage]
}

// AdmissibleTwist is the per-axis bound on the relative twist between two
// consecutive samples produced by SampleCurve.
type AdmissibleTwist struct {
	Dx     units.Scalar[units.Displacement]
	Dy     units.Scalar[units.Displacement]
	DTheta units.Scalar[units.Angle]
}

func (a AdmissibleTwist) admits(t spatialmath.Twist) bool {
	return t.Dx.Abs() <= a.Dx && t.Dy.Abs() <= a.Dy && t.DTheta.Abs() <= a.DTheta
}

// Zero-velocity knots have no defined tangent; the heading is probed this
// far inside the parameter domain instead.
const tangentProbeOffset = 1e-4

// CurvePoseAt samples the spline pose and curvature at global parameter t.
// The heading is the tangent direction; at a zero-velocity knot the tangent
// is probed slightly inside the domain.
func (s *Spline) CurvePoseAt(t units.Scalar[units.Percentage]) CurvePose {
	vel := s.Velocity(t).R2()
	curvature := s.Curvature(t)
	if vel.Norm() < 1e-12 {
		probe := t.Add(tangentProbeOffset)
		if t.Value() > 0.5 {
			probe = t.Sub(tangentProbeOffset)
		}
		vel = s.Velocity(probe).R2()
		curvature = s.Curvature(probe)
	}
	return CurvePose{
		Pose: spatialmath.NewPose(
			spatialmath.Translation{Vector: s.Position(t)},
			spatialmath.RotationFromDirection(vel),
		),
		Curvature: curvature,
		Parameter: t,
	}
}

// SampleCurve subdivides [t0, t1] until the SE(2) twist between the poses at
// each subinterval's endpoints is component-wise within the admissible twist,
// or the subinterval is narrower than tThreshold. Bisection runs depth-first
// over an explicit stack to bound stack depth, and produces an ordered,
// non-uniform sequence of curve poses. Exceeding maxIterations signals a
// malformed spline, such as a cusp, and is an error rather than a hang.
func SampleCurve(
	s *Spline,
	t0, t1 units.Scalar[units.Percentage],
	tThreshold units.Scalar[units.Percentage],
	admissible AdmissibleTwist,
	maxIterations int,
) ([]CurvePose, error) {
	type interval struct {
		lo, hi float64
	}

	points := []CurvePose{s.CurvePoseAt(t0)}
	stack := []interval{{t0.Value(), t1.Value()}}
	iterations := 0
	for len(stack) > 0 {
		iterations++
		if iterations > maxIterations {
			return nil, errors.Errorf("malformed spline: subdivision exceeded %d iterations", maxIterations)
		}
		iv := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		a := s.CurvePoseAt(units.Scalar[units.Percentage](iv.lo))
		b := s.CurvePoseAt(units.Scalar[units.Percentage](iv.hi))
		twist := spatialmath.PoseLog(spatialmath.PoseBetween(a.Pose, b.Pose))
		if admissible.admits(twist) || iv.hi-iv.lo < tThreshold.Value() {
			points = append(points, b)
			continue
		}
		mid := (iv.lo + iv.hi) / 2
		// Right half pushed first so the left half is processed first.
		stack = append(stack, interval{mid, iv.hi}, interval{iv.lo, mid})
	}
	return points, nil
}
