package trajectory

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/empireu/Coyote-sub001/logging"
	"github.com/empireu/Coyote-sub001/segmenttree"
	"github.com/empireu/Coyote-sub001/spline"
	"github.com/empireu/Coyote-sub001/units"
)

type generateOptions struct {
	logger logging.Logger
	strict bool
}

// Option configures trajectory generation.
type Option func(*generateOptions)

// WithLogger installs a logger that receives a diagnostic event whenever the
// combined velocity pass has to approximate an empty admissible intersection.
// Frequent events indicate the constraint set is near-infeasible for the path.
func WithLogger(logger logging.Logger) Option {
	return func(o *generateOptions) { o.logger = logger }
}

// WithStrictFeasibility turns the empty-intersection approximation of the
// combined velocity pass into a hard error instead of a recovered fallback.
func WithStrictFeasibility() Option {
	return func(o *generateOptions) { o.strict = true }
}

// Generate computes a time-optimal velocity profile over the curve poses and
// builds the time-indexed trajectory. The profile couples translational and
// rotational acceleration limits through the heading-profile curvature; the
// trajectory starts and ends at rest. Malformed input (fewer than two points,
// non-positive constraints, coincident adjacent points, NaN or Inf
// intermediates) is an error; no degenerate trajectory is ever returned.
func Generate(points []spline.CurvePose, c Constraints, opts ...Option) (*Trajectory, error) {
	var o generateOptions
	for _, opt := range opts {
		opt(&o)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	n := len(points)
	if n < 2 {
		return nil, errors.Errorf("trajectory requires at least 2 curve poses, got %d", n)
	}

	// Path metrics: per-step displacement, cumulative displacement, and the
	// numerically estimated heading-profile curvature Δheading/Δdisplacement.
	ds := make([]float64, n) // ds[i] spans points i-1..i; ds[0] unused
	rotCurvature := make([]float64, n)
	for i := 1; i < n; i++ {
		a, b := points[i-1], points[i]
		ds[i] = a.Pose.Translation.Distance(b.Pose.Translation).Value()
		if ds[i] == 0 {
			return nil, errors.Errorf("zero displacement between adjacent curve poses %d and %d", i-1, i)
		}
		dHeading := a.Pose.Rotation.Inverse().Mul(b.Pose.Rotation).Log().Value()
		rotCurvature[i] = dHeading / ds[i]
		if math.IsNaN(ds[i]) || math.IsNaN(rotCurvature[i]) {
			return nil, errors.Errorf("non-finite path metric at curve pose %d", i)
		}
	}
	rotCurvature[0] = rotCurvature[1]
	displacement := make([]float64, n)
	floats.CumSum(displacement, ds)

	// Isolated per-point bounds from angular velocity and centripetal limits.
	profile := make([]float64, n)
	for i := 0; i < n; i++ {
		v := c.MaxLinearVelocity.Value()
		if k := math.Abs(rotCurvature[i]); k > 0 {
			v = math.Min(v, c.MaxAngularVelocity.Value()/k)
		}
		if k := math.Abs(points[i].Curvature.Value()); k > 0 {
			v = math.Min(v, math.Sqrt(c.MaxCentripetalAcceleration.Value()/k))
		}
		if math.IsNaN(v) {
			return nil, errors.Errorf("non-finite velocity bound at curve pose %d", i)
		}
		profile[i] = v
	}

	// Pairwise curvature-coupled acceleration bounds, tightened monotonically
	// by a forward and a backward sweep.
	for i := 1; i < n; i++ {
		bound := curvatureAccelerationBound(
			rotCurvature[i-1], rotCurvature[i], ds[i],
			c.MaxLinearAcceleration.Value(), c.MaxAngularAcceleration.Value())
		profile[i] = math.Min(profile[i], bound)
	}
	for i := n - 2; i >= 0; i-- {
		bound := curvatureAccelerationBound(
			rotCurvature[i+1], rotCurvature[i], ds[i+1],
			c.MaxLinearDeceleration.Value(), c.MaxAngularAcceleration.Value())
		profile[i] = math.Min(profile[i], bound)
	}
	profile[0] = 0
	profile[n-1] = 0

	// Combined admissible-range passes: forward under the acceleration limit,
	// backward under the deceleration limit.
	velocity := make([]float64, n)
	fallbacks := 0
	for i := 1; i < n-1; i++ {
		v, approximated := admissibleVelocity(
			velocity[i-1], profile[i], ds[i],
			rotCurvature[i-1], rotCurvature[i],
			c.MaxLinearAcceleration.Value(), c.MaxAngularAcceleration.Value())
		if approximated {
			fallbacks++
			if o.strict {
				return nil, errors.Errorf("no admissible velocity at curve pose %d: constraints are infeasible for this path", i)
			}
			if o.logger != nil {
				o.logger.Debugw("approximated admissible velocity", "index", i, "velocity", v)
			}
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errors.Errorf("non-finite velocity at curve pose %d", i)
		}
		velocity[i] = v
	}
	for i := n - 2; i > 0; i-- {
		v, approximated := admissibleVelocity(
			velocity[i+1], velocity[i], ds[i+1],
			rotCurvature[i+1], rotCurvature[i],
			c.MaxLinearDeceleration.Value(), c.MaxAngularAcceleration.Value())
		if approximated {
			fallbacks++
			if o.strict {
				return nil, errors.Errorf("no admissible velocity at curve pose %d: constraints are infeasible for this path", i)
			}
			if o.logger != nil {
				o.logger.Debugw("approximated admissible velocity", "index", i, "velocity", v)
			}
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errors.Errorf("non-finite velocity at curve pose %d", i)
		}
		velocity[i] = math.Min(velocity[i], v)
	}
	if fallbacks > 0 && o.logger != nil {
		o.logger.Warnw("velocity profile required approximation", "points", n, "approximations", fallbacks)
	}

	// Time integration under constant acceleration per step. Both formulas
	// t = 2·ds/(v0+v1) and t = (v1-v0)/a agree; the former is total except
	// when both velocities vanish over a nonzero displacement.
	t := make([]float64, n)
	for i := 1; i < n; i++ {
		sum := velocity[i-1] + velocity[i]
		if sum == 0 {
			return nil, errors.Errorf("undefined segment time between curve poses %d and %d: zero velocity across nonzero displacement", i-1, i)
		}
		dt := 2 * ds[i] / sum
		if math.IsNaN(dt) || math.IsInf(dt, 0) || dt <= 0 {
			return nil, errors.Errorf("non-finite segment time between curve poses %d and %d", i-1, i)
		}
		t[i] = t[i-1] + dt
	}

	// Resample kinematics from the time-stamped profile. Linear velocity
	// points along the local path direction; accelerations come from finite
	// differences over the segment times.
	out := make([]TrajectoryPoint, n)
	for i := 0; i < n; i++ {
		var dir = points[min(i+1, n-1)].Pose.Translation.Vector.
			Sub(points[max(i-1, 0)].Pose.Translation.Vector).R2()
		norm := dir.Norm()
		linVel := units.V2[units.Velocity](0, 0)
		if norm > 0 && velocity[i] > 0 {
			linVel = units.V2[units.Velocity](dir.X/norm*velocity[i], dir.Y/norm*velocity[i])
		}
		out[i] = TrajectoryPoint{
			CurvePose:         points[i],
			RotationCurvature: units.Scalar[units.Curvature](rotCurvature[i]),
			Displacement:      units.Scalar[units.Displacement](displacement[i]),
			Time:              units.Scalar[units.Time](t[i]),
			LinearVelocity:    linVel,
			AngularVelocity:   units.Scalar[units.AngularVelocity](rotCurvature[i] * velocity[i]),
		}
	}
	for i := 0; i < n-1; i++ {
		dt := t[i+1] - t[i]
		out[i].LinearAcceleration = units.V2MappedTo[units.Acceleration](
			out[i+1].LinearVelocity.Sub(out[i].LinearVelocity).Div(dt))
		out[i].AngularAcceleration = units.MappedTo[units.AngularAcceleration](
			out[i+1].AngularVelocity.Sub(out[i].AngularVelocity).Div(dt))
	}
	out[n-1].LinearAcceleration = out[n-2].LinearAcceleration
	out[n-1].AngularAcceleration = out[n-2].AngularAcceleration

	builder := segmenttree.NewBuilder[pointPair]()
	for i := 1; i < n; i++ {
		builder.Add(segmenttree.Range{Lo: t[i-1], Hi: t[i]}, pointPair{out[i-1], out[i]})
	}
	tree, err := builder.Build()
	if err != nil {
		return nil, errors.Wrap(err, "building trajectory index")
	}
	return &Trajectory{tree: tree}, nil
}

// curvatureAccelerationBound returns the velocity above which the rotational
// acceleration limit cannot be met between two adjacent samples even with the
// translational acceleration limit fully spent. From the holonomic coupling
// α ≈ (Δκ/Δs)·v² + κ·a, with a the translational acceleration chosen freely
// in [-maxLin, maxLin], the threshold splits into cases on the signs and
// relative magnitudes of the two curvatures. c2 belongs to the point being
// bounded.
func curvatureAccelerationBound(c1, c2, ds, maxLin, maxAng float64) float64 {
	dc := c2 - c1
	switch {
	case dc == 0:
		// Equal curvatures: no rotational acceleration demand.
		return math.Inf(1)
	case c1 == 0 && c2 > 0:
		// Spinning up from straight; translation can assist.
		return math.Sqrt((maxAng + c2*maxLin) * ds / dc)
	case c1 == 0 && c2 < 0:
		return math.Sqrt((maxAng - c2*maxLin) * ds / -dc)
	case c2 == 0 && c1 > 0:
		// Releasing to straight: no assist once the curvature vanishes.
		return math.Sqrt(maxAng * ds / c1)
	case c2 == 0 && c1 < 0:
		return math.Sqrt(maxAng * ds / -c1)
	case c1 > 0 && c2 > 0:
		return math.Sqrt((maxAng + c2*maxLin) * ds / math.Abs(dc))
	case c1 < 0 && c2 < 0:
		return math.Sqrt((maxAng - c2*maxLin) * ds / math.Abs(dc))
	default:
		// Opposite signs: the curvature crosses zero mid-step, where the
		// assist term vanishes; take the conservative uncoupled bound.
		return math.Sqrt(maxAng * ds / math.Abs(dc))
	}
}

// The forward and backward sweeps exchange velocities through the sqrt
// round-trip of the reachability formulas, so exact intersections can come up
// empty by a rounding error. Gaps this small are treated as touching.
const feasibilityEpsilon = 1e-9

// admissibleVelocity picks the fastest velocity at a point compatible with
// (a) the translational reachability window from the previous velocity and
// (b) the rotational-acceleration windows, capped by the precomputed profile
// bound. When the intersection is empty it falls back to the midpoint of the
// boundary pair bracketing the smallest gap and reports the approximation.
func admissibleVelocity(vPrev, vCap, ds, c1, c2, maxLin, maxAng float64) (float64, bool) {
	aLo := math.Sqrt(math.Max(0, vPrev*vPrev-2*maxLin*ds))
	aHi := math.Sqrt(vPrev*vPrev + 2*maxLin*ds)
	hi := math.Min(aHi, vCap)

	windows := rotationWindows(vPrev, ds, c1, c2, maxAng)

	best := math.Inf(-1)
	for _, w := range windows {
		lo := math.Max(w.lo, aLo)
		top := math.Min(w.hi, hi)
		if lo-top <= feasibilityEpsilon && top > best {
			best = math.Max(0, top)
		}
	}
	if !math.IsInf(best, -1) {
		return best, false
	}

	// Empty intersection: every rotational window misses [aLo, hi]. Take the
	// window whose gap against the translational interval is smallest and
	// approximate with the midpoint of the two boundaries bracketing that
	// gap, preferring a usable value over failing at one sample.
	fallback := aLo
	bestGap := math.Inf(1)
	for _, w := range windows {
		lo := math.Max(w.lo, aLo)
		top := math.Min(w.hi, hi)
		if math.IsInf(lo, 0) || math.IsInf(top, 0) {
			continue
		}
		if gap := lo - top; gap < bestGap {
			bestGap = gap
			fallback = (lo + top) / 2
		}
	}
	return math.Max(0, math.Min(fallback, vCap)), true
}

type span struct {
	lo, hi float64
}

// rotationWindows returns the velocity intervals v ≥ 0 satisfying
// |c2·v² + vPrev·(c2-c1)·v - c1·vPrev²| ≤ 2·maxAng·ds, the discrete
// rotational-acceleration constraint between adjacent samples. Depending on
// the sign of c2 this is the intersection of two quadratic conditions and
// yields one or two intervals.
func rotationWindows(vPrev, ds, c1, c2, maxAng float64) []span {
	budget := 2 * maxAng * ds
	b := vPrev * (c2 - c1)
	cc := -c1 * vPrev * vPrev
	// q(v) ≤ +budget and q(v) ≥ -budget respectively.
	below := quadraticBelow(c2, b, cc-budget)
	above := quadraticBelow(-c2, -b, -cc-budget)
	var out []span
	for _, u := range below {
		for _, w := range above {
			lo := math.Max(math.Max(u.lo, w.lo), 0)
			hi := math.Min(u.hi, w.hi)
			if lo <= hi {
				out = append(out, span{lo, hi})
			}
		}
	}
	return out
}

// quadraticBelow returns the solution set of a·v² + b·v + c ≤ 0 as up to two
// intervals over the extended reals.
func quadraticBelow(a, b, c float64) []span {
	if a == 0 {
		switch {
		case b > 0:
			return []span{{math.Inf(-1), -c / b}}
		case b < 0:
			return []span{{-c / b, math.Inf(1)}}
		case c <= 0:
			return []span{{math.Inf(-1), math.Inf(1)}}
		default:
			return nil
		}
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		if a < 0 {
			return []span{{math.Inf(-1), math.Inf(1)}}
		}
		return nil
	}
	sq := math.Sqrt(disc)
	r1 := (-b - sq) / (2 * a)
	r2 := (-b + sq) / (2 * a)
	if r1 > r2 {
		r1, r2 = r2, r1
	}
	if a > 0 {
		return []span{{r1, r2}}
	}
	return []span{{math.Inf(-1), r1}, {r2, math.Inf(1)}}
}
