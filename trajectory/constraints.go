// Package trajectory turns curvature-adaptive path samples into a
// time-parameterized trajectory respecting a holonomic vehicle's kinematic
// limits, and supports O(log n) evaluation at arbitrary time.
package trajectory

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/empireu/Coyote-sub001/units"
)

// Constraints is the kinematic limit set for trajectory generation. All
// limits must be strictly positive; acceleration and deceleration may be
// equal. The JSON shape matches the persisted project configuration.
type Constraints struct {
	MaxLinearVelocity          units.Scalar[units.Velocity]            `json:"max_linear_velocity"`
	MaxLinearAcceleration      units.Scalar[units.Acceleration]        `json:"max_linear_acceleration"`
	MaxLinearDeceleration      units.Scalar[units.Acceleration]        `json:"max_linear_deceleration"`
	MaxAngularVelocity         units.Scalar[units.AngularVelocity]     `json:"max_angular_velocity"`
	MaxAngularAcceleration     units.Scalar[units.AngularAcceleration] `json:"max_angular_acceleration"`
	MaxCentripetalAcceleration units.Scalar[units.Acceleration]        `json:"max_centripetal_acceleration"`
}

// Validate reports every non-positive limit at once.
func (c Constraints) Validate() error {
	var err error
	if c.MaxLinearVelocity <= 0 {
		err = multierr.Append(err, errors.New("max linear velocity must be strictly positive"))
	}
	if c.MaxLinearAcceleration <= 0 {
		err = multierr.Append(err, errors.New("max linear acceleration must be strictly positive"))
	}
	if c.MaxLinearDeceleration <= 0 {
		err = multierr.Append(err, errors.New("max linear deceleration must be strictly positive"))
	}
	if c.MaxAngularVelocity <= 0 {
		err = multierr.Append(err, errors.New("max angular velocity must be strictly positive"))
	}
	if c.MaxAngularAcceleration <= 0 {
		err = multierr.Append(err, errors.New("max angular acceleration must be strictly positive"))
	}
	if c.MaxCentripetalAcceleration <= 0 {
		err = multierr.Append(err, errors.New("max centripetal acceleration must be strictly positive"))
	}
	return err
}
