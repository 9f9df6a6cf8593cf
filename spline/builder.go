package spline

import (
	"github.com/pkg/errors"

	"github.com/empireu/Coyote-sub001/units"
)

// Waypoint is a user-placed knot: a position with velocity and acceleration
// markers. The JSON shape is the flat x/y pair layout used by project
// persistence; the core itself only traffics in the in-memory values.
type Waypoint struct {
	Position     units.Vector2[units.Displacement] `json:"position"`
	Velocity     units.Vector2[units.Velocity]     `json:"velocity"`
	Acceleration units.Vector2[units.Acceleration] `json:"acceleration"`
}

// BuildSpline constructs a piecewise quintic spline through the waypoints in
// array order, one segment per adjacent pair. At least two waypoints are
// required.
func BuildSpline(waypoints []Waypoint) (*Spline, error) {
	if len(waypoints) < 2 {
		return nil, errors.Errorf("spline requires at least 2 waypoints, got %d", len(waypoints))
	}
	s := &Spline{}
	for i := 1; i < len(waypoints); i++ {
		a, b := waypoints[i-1], waypoints[i]
		s.Add(QuinticSegment{
			P0: a.Position, V0: a.Velocity, A0: a.Acceleration,
			P1: b.Position, V1: b.Velocity, A1: b.Acceleration,
		})
	}
	return s, nil
}
