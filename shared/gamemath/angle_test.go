package gamemath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	dmath "github.com/yohamta/donburi/features/math"
)

func TestRotateVec(t *testing.T) {
	v := RotateVec(dmath.Vec2{X: 1}, math.Pi/2)
	assert.InDelta(t, 0, v.X, 1e-9)
	assert.InDelta(t, 1, v.Y, 1e-9)

	v = RotateVec(dmath.Vec2{X: 0, Y: 2}, math.Pi)
	assert.InDelta(t, 0, v.X, 1e-9)
	assert.InDelta(t, -2, v.Y, 1e-9)
}

func TestShortestAngle(t *testing.T) {
	assert.InDelta(t, 0.2, ShortestAngle(2*math.Pi-0.1, 0.1), 1e-9)
	assert.InDelta(t, -0.2, ShortestAngle(0.1, -0.1), 1e-9)
	assert.InDelta(t, math.Pi, ShortestAngle(0, math.Pi), 1e-9)
}

func TestFlipPositive(t *testing.T) {
	assert.InDelta(t, 3*math.Pi/2, FlipPositive(-math.Pi/2), 1e-9)
	assert.InDelta(t, 0.5, FlipPositive(0.5+4*math.Pi), 1e-9)
}

func TestLerpRotation(t *testing.T) {
	t.Run("moves proportionally", func(t *testing.T) {
		got := LerpRotation(0, 1, 0.1)
		assert.InDelta(t, 0.5, got, 1e-9)
	})
	t.Run("never overshoots", func(t *testing.T) {
		got := LerpRotation(0, 1, 10)
		assert.InDelta(t, 1, got, 1e-9)
	})
	t.Run("turns the short way", func(t *testing.T) {
		got := LerpRotation(0.1, 2*math.Pi-0.1, 0.1)
		assert.InDelta(t, 0, ShortestAngle(0, got), 1e-9)
	})
	t.Run("snaps when close", func(t *testing.T) {
		assert.Equal(t, 1.0, LerpRotation(1.0005, 1, 0))
	})
	t.Run("zero frame time holds", func(t *testing.T) {
		assert.InDelta(t, 0.0, LerpRotation(0, 1, 0), 1e-12)
	})
	t.Run("floor step", func(t *testing.T) {
		got := LerpRotation(0, 0.0015, 0.1)
		assert.InDelta(t, 0.001, got, 1e-9)
	})
}
