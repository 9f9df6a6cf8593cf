package trajectory

import (
	"github.com/pkg/errors"

	"github.com/empireu/Coyote-sub001/segmenttree"
	"github.com/empireu/Coyote-sub001/spatialmath"
	"github.com/empireu/Coyote-sub001/spline"
	"github.com/empireu/Coyote-sub001/units"
)

type pointPair struct {
	a TrajectoryPoint
	b TrajectoryPoint
}

// Trajectory is an immutable time-indexed motion profile backed by a segment
// tree over consecutive point pairs. It is safe for concurrent reads.
type Trajectory struct {
	tree *segmenttree.SegmentTree[pointPair]
}

// TimeRange returns the start and end times of the trajectory.
func (t *Trajectory) TimeRange() (units.Scalar[units.Time], units.Scalar[units.Time]) {
	span := t.tree.Span()
	return units.Scalar[units.Time](span.Lo), units.Scalar[units.Time](span.Hi)
}

// Duration returns the total trajectory duration.
func (t *Trajectory) Duration() units.Scalar[units.Time] {
	start, end := t.TimeRange()
	return end.Sub(start)
}

// Evaluate returns the trajectory state at the given absolute time, clamped
// to the trajectory's time range. The bracketing pair is found in O(log n)
// and every field is linearly interpolated at the local progress fraction;
// the pose goes through the SE(2) logarithm and exponential maps rather than
// naive angle averaging.
func (t *Trajectory) Evaluate(at units.Scalar[units.Time]) (TrajectoryPoint, error) {
	span := t.tree.Span()
	k := at.Clamp(units.Scalar[units.Time](span.Lo), units.Scalar[units.Time](span.Hi))
	pair, err := t.tree.Query(k.Value())
	if err != nil {
		return TrajectoryPoint{}, errors.Wrap(err, "evaluating trajectory")
	}
	a, b := pair.a, pair.b
	f := k.Sub(a.Time).Ratio(b.Time.Sub(a.Time))
	return TrajectoryPoint{
		CurvePose: spline.CurvePose{
			Pose:      spatialmath.PoseInterpolate(a.CurvePose.Pose, b.CurvePose.Pose, f),
			Curvature: units.Lerp(a.CurvePose.Curvature, b.CurvePose.Curvature, f),
			Parameter: units.Lerp(a.CurvePose.Parameter, b.CurvePose.Parameter, f),
		},
		RotationCurvature:   units.Lerp(a.RotationCurvature, b.RotationCurvature, f),
		Displacement:        units.Lerp(a.Displacement, b.Displacement, f),
		Time:                k,
		LinearVelocity:      units.LerpV2(a.LinearVelocity, b.LinearVelocity, f),
		LinearAcceleration:  units.LerpV2(a.LinearAcceleration, b.LinearAcceleration, f),
		AngularVelocity:     units.Lerp(a.AngularVelocity, b.AngularVelocity, f),
		AngularAcceleration: units.Lerp(a.AngularAcceleration, b.AngularAcceleration, f),
	}, nil
}
