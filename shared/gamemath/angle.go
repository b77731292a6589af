package gamemath

import (
	"math"

	dmath "github.com/yohamta/donburi/features/math"
)

const (
	// rotationLerpRate is the fraction of the remaining angle closed per second.
	rotationLerpRate = 5.0
	// rotationMinStep is the smallest per-second adjustment, so small gaps still close.
	rotationMinStep = 0.01
	// rotationEpsilon is the distance under which rotation snaps to its target.
	rotationEpsilon = 0.001
)

// RotateVec rotates v counter-clockwise by angle radians.
func RotateVec(v dmath.Vec2, angle float64) dmath.Vec2 {
	sin, cos := math.Sincos(angle)
	return dmath.Vec2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// VecAngle returns the heading of v in radians, counter-clockwise from East.
func VecAngle(v dmath.Vec2) float64 {
	return math.Atan2(v.Y, v.X)
}

// VecLength returns the magnitude of v.
func VecLength(v dmath.Vec2) float64 {
	return math.Hypot(v.X, v.Y)
}

// AddVec returns a + b.
func AddVec(a, b dmath.Vec2) dmath.Vec2 {
	return dmath.Vec2{X: a.X + b.X, Y: a.Y + b.Y}
}

// SubVec returns a - b.
func SubVec(a, b dmath.Vec2) dmath.Vec2 {
	return dmath.Vec2{X: a.X - b.X, Y: a.Y - b.Y}
}

// ScaleVec returns v * s.
func ScaleVec(v dmath.Vec2, s float64) dmath.Vec2 {
	return dmath.Vec2{X: v.X * s, Y: v.Y * s}
}

// FlipPositive maps angle into [0, 2π).
func FlipPositive(angle float64) float64 {
	a := math.Mod(angle, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// ShortestAngle returns the signed distance in (-π, π] from one angle to another.
func ShortestAngle(from, to float64) float64 {
	diff := FlipPositive(to - from)
	if diff > math.Pi {
		diff -= 2 * math.Pi
	}
	return diff
}

// LerpRotation moves current toward target over frameTime seconds.
// The step is proportional to the remaining distance with a small floor,
// and never overshoots. Within rotationEpsilon it snaps to target.
func LerpRotation(current, target, frameTime float64) float64 {
	diff := ShortestAngle(current, target)
	if diff == 0 {
		return current
	}
	if math.Abs(diff) <= rotationEpsilon {
		return FlipPositive(target)
	}

	adjustment := diff * rotationLerpRate * frameTime
	minAdjustment := rotationMinStep * frameTime
	if diff < 0 {
		adjustment = math.Min(adjustment, -minAdjustment)
		adjustment = math.Max(adjustment, diff)
	} else {
		adjustment = math.Max(adjustment, minAdjustment)
		adjustment = math.Min(adjustment, diff)
	}
	return FlipPositive(current + adjustment)
}
