package spline

import (
	"math"

	"github.com/empireu/Coyote-sub001/units"
	"github.com/empireu/Coyote-sub001/utils"
)

const (
	defaultArcLengthSamples = 1024

	projectionSamples    = 128
	projectionIterations = 32
	projectionFalloff    = 2.0
)

// Spline is an ordered list of quintic segments sharing the [0, 1] parameter
// domain, partitioned uniformly: segment i owns [i/n, (i+1)/n). Segments must
// be appended in path order; continuity between consecutive segments is the
// caller's responsibility. A Spline is safe for concurrent reads once
// construction is done.
type Spline struct {
	segments []QuinticSegment
}

// Add appends a segment in path order.
func (s *Spline) Add(seg QuinticSegment) {
	s.segments = append(s.segments, seg)
}

// Len returns the number of segments.
func (s *Spline) Len() int {
	return len(s.segments)
}

// Segment returns the i-th segment.
func (s *Spline) Segment(i int) QuinticSegment {
	return s.segments[i]
}

// UniformIndices maps a global parameter to the owning segment index and the
// local parameter within it. The global parameter is clamped to [0, 1].
func (s *Spline) UniformIndices(t units.Scalar[units.Percentage]) (int, float64) {
	n := float64(len(s.segments))
	scaled := utils.Clamp(t.Value(), 0, 1) * n
	idx := int(utils.Clamp(math.Floor(scaled), 0, n-1))
	// Local parameter is taken against the clamped index so t = 1 maps to the
	// end of the final segment rather than wrapping to 0.
	return idx, scaled - float64(idx)
}

// Position evaluates the spline position at global parameter t.
func (s *Spline) Position(t units.Scalar[units.Percentage]) units.Vector2[units.Displacement] {
	i, local := s.UniformIndices(t)
	return s.segments[i].Position(local)
}

// Velocity evaluates the spline first derivative at global parameter t.
func (s *Spline) Velocity(t units.Scalar[units.Percentage]) units.Vector2[units.Velocity] {
	i, local := s.UniformIndices(t)
	return s.segments[i].Velocity(local)
}

// Acceleration evaluates the spline second derivative at global parameter t.
func (s *Spline) Acceleration(t units.Scalar[units.Percentage]) units.Vector2[units.Acceleration] {
	i, local := s.UniformIndices(t)
	return s.segments[i].Acceleration(local)
}

// Curvature evaluates the signed path curvature at global parameter t.
func (s *Spline) Curvature(t units.Scalar[units.Percentage]) units.Scalar[units.Curvature] {
	i, local := s.UniformIndices(t)
	return s.segments[i].Curvature(local)
}

// ArcLength computes the path length by piecewise-linear integration over
// uniform parameter samples. The sampling is not adaptive, so splines with
// highly non-uniform parameter speed lose accuracy; the constraint solver
// works from curvature-adaptive samples instead and does not use this.
func (s *Spline) ArcLength(samples int) units.Scalar[units.Displacement] {
	if samples <= 0 {
		samples = defaultArcLengthSamples
	}
	prev := s.Position(0).R2()
	total := 0.0
	for i := 1; i <= samples; i++ {
		cur := s.Position(units.Scalar[units.Percentage](float64(i) / float64(samples))).R2()
		total += cur.Sub(prev).Norm()
		prev = cur
	}
	return units.Scalar[units.Displacement](total)
}

// Project returns the parameter of the spline point nearest to the query
// point: a coarse uniform scan picks the best starting candidate, then a
// derivative-free coordinate descent refines it, shrinking the step
// geometrically whenever neither direction improves. The result is never
// worse than the coarse scan winner.
func (s *Spline) Project(point units.Vector2[units.Displacement]) units.Scalar[units.Percentage] {
	q := point.R2()
	distSq := func(t float64) float64 {
		d := s.Position(units.Scalar[units.Percentage](t)).R2().Sub(q)
		return d.X*d.X + d.Y*d.Y
	}

	bestT, bestD := 0.0, distSq(0)
	for i := 1; i <= projectionSamples; i++ {
		t := float64(i) / projectionSamples
		if d := distSq(t); d < bestD {
			bestT, bestD = t, d
		}
	}

	step := 1.0 / projectionSamples
	for i := 0; i < projectionIterations; i++ {
		improved := false
		for _, t := range [2]float64{bestT - step, bestT + step} {
			t = utils.Clamp(t, 0, 1)
			if d := distSq(t); d < bestD {
				bestT, bestD = t, d
				improved = true
			}
		}
		if !improved {
			step /= projectionFalloff
		}
	}
	return units.Scalar[units.Percentage](bestT)
}
