package trajectory

import (
	"github.com/empireu/Coyote-sub001/spline"
	"github.com/empireu/Coyote-sub001/units"
)

// TrajectoryPoint is a fully resolved trajectory sample: a curve pose plus
// the heading-profile curvature, cumulative displacement, absolute time, and
// the linear and angular kinematic state. Points are produced only by the
// generator and are strictly ordered by time.
type TrajectoryPoint struct {
	CurvePose spline.CurvePose

	// RotationCurvature is the curvature of the heading profile, Δheading
	// per unit displacement. For holonomic motion it may differ from the
	// path curvature carried by the curve pose.
	RotationCurvature units.Scalar[units.Curvature]

	Displacement units.Scalar[units.Displacement]
	Time         units.Scalar[units.Time]

	LinearVelocity     units.Vector2[units.Velocity]
	LinearAcceleration units.Vector2[units.Acceleration]

	AngularVelocity     units.Scalar[units.AngularVelocity]
	AngularAcceleration units.Scalar[units.AngularAcceleration]
}
