// Package utils contains small numeric helpers shared by the motion packages.
package utils

import "math"

const defaultEpsilon = 1e-9

// DegToRad converts degrees to radians.
func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(radians float64) float64 {
	return radians * 180 / math.Pi
}

// Clamp returns v limited to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp linearly interpolates between a and b by t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Map remaps v from the source range onto the destination range.
func Map(v, srcLo, srcHi, dstLo, dstHi float64) float64 {
	return dstLo + (dstHi-dstLo)*((v-srcLo)/(srcHi-srcLo))
}

// Float64AlmostEqual determines if two float64s are equal within the given epsilon.
func Float64AlmostEqual(v1, v2, epsilon float64) bool {
	return math.Abs(v1-v2) < epsilon
}

// AlmostZero determines if a float64 is within 1e-9 of zero.
func AlmostZero(v float64) bool {
	return math.Abs(v) < defaultEpsilon
}
