package vecmath

import "math"

// TwoPi is a full turn in radians.
const TwoPi = 2 * math.Pi

// Angle normalization functions

// NormalizeAngle wraps an angle into (-Pi, Pi] by repeated full-turn steps.
// Non-finite input is returned unchanged.
func NormalizeAngle(a float64) float64 {
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return a
	}
	// Large magnitudes would take many steps; fold them first.
	if a > 4*math.Pi || a < -4*math.Pi {
		a = math.Mod(a, TwoPi)
	}
	for a > math.Pi {
		a -= TwoPi
	}
	for a <= -math.Pi {
		a += TwoPi
	}
	return a
}

// AngleDiff returns the signed shortest rotation from one heading to another.
func AngleDiff(from, to float64) float64 {
	return NormalizeAngle(to - from)
}

// ConstrainAngle limits angle so that it deviates from anchor by at most
// constraint radians, taking the short way around the circle.
func ConstrainAngle(angle, anchor, constraint float64) float64 {
	return anchor + Clamp(AngleDiff(anchor, angle), -constraint, constraint)
}

// ClampConstraint forces a bend limit into [0, TwoPi]. NaN means no limit.
func ClampConstraint(c float64) float64 {
	if math.IsNaN(c) {
		return TwoPi
	}
	return Clamp(c, 0, TwoPi)
}

// Scalar helpers

// Clamp clamps v between lo and hi.
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// MapRange maps v linearly from [inLo, inHi] onto [outLo, outHi].
// With clamp set the result is kept inside the output range.
func MapRange(v, inLo, inHi, outLo, outHi float64, clamp bool) float64 {
	if inHi == inLo {
		return outLo
	}
	out := outLo + (v-inLo)/(inHi-inLo)*(outHi-outLo)
	if clamp {
		if outLo < outHi {
			return Clamp(out, outLo, outHi)
		}
		return Clamp(out, outHi, outLo)
	}
	return out
}
