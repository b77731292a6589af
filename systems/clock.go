package systems

import (
	"time"

	cfg "github.com/automoto/doomerang-spectator/config"
	"github.com/yohamta/donburi/ecs"
)

// FrameClock measures wall-clock time between rendered frames. Systems that
// integrate over time read FrameTime after the clock has ticked.
type FrameClock struct {
	now       func() time.Time
	last      time.Time
	frameTime float64
}

// NewFrameClock returns a clock reading now. A nil now uses time.Now.
func NewFrameClock(now func() time.Time) *FrameClock {
	if now == nil {
		now = time.Now
	}
	return &FrameClock{now: now}
}

// Update is the ECS system entry point; it must run before any reader.
func (c *FrameClock) Update(_ *ecs.ECS) {
	c.Tick()
}

// Tick starts a new frame. The first tick after creation or Reset yields zero.
// Frame time is capped at config.Spectator.MaxFrameTime.
func (c *FrameClock) Tick() float64 {
	now := c.now()
	c.frameTime = 0
	if !c.last.IsZero() {
		c.frameTime = now.Sub(c.last).Seconds()
	}
	c.last = now
	if maxFrame := cfg.Spectator.MaxFrameTime; maxFrame > 0 && c.frameTime > maxFrame {
		c.frameTime = maxFrame
	}
	return c.frameTime
}

// FrameTime returns the duration of the current frame in seconds.
func (c *FrameClock) FrameTime() float64 {
	return c.frameTime
}

// Reset forgets the previous frame so the next tick yields zero.
func (c *FrameClock) Reset() {
	c.last = time.Time{}
	c.frameTime = 0
}

// NewRegionSpinSystem returns an update system swinging grids by the clock's frame time.
func NewRegionSpinSystem(clock *FrameClock) func(*ecs.ECS) {
	return func(e *ecs.ECS) {
		UpdateRegionSpin(e.World, clock.FrameTime())
	}
}
