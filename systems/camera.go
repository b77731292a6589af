package systems

import (
	"math"

	"github.com/automoto/doomerang-spectator/components"
	"github.com/automoto/doomerang-spectator/config"
	"github.com/automoto/doomerang-spectator/hierarchy"
	"github.com/yohamta/donburi/ecs"
)

// smoothingRate is the frame rate config.Camera.FollowSmoothing is tuned for.
const smoothingRate = 60.0

// followFactor converts a per-frame smoothing factor into the fraction of the
// remaining distance to close over frameTime seconds.
func followFactor(smoothing, frameTime float64) float64 {
	if smoothing >= 1 {
		return 1
	}
	if smoothing <= 0 || frameTime <= 0 {
		return 0
	}
	return 1 - math.Pow(1-smoothing, frameTime*smoothingRate)
}

// NewCameraSystem returns an update system that follows whatever the local
// player controls, ghost or recorded entity. Catch-up speed is independent of
// the frame rate.
func NewCameraSystem(xform *hierarchy.Service, clock *FrameClock) func(*ecs.ECS) {
	return func(e *ecs.ECS) {
		cameraEntry, ok := components.Camera.First(e.World)
		if !ok {
			return
		}
		camera := components.Camera.Get(cameraEntry)

		localEntry, ok := components.LocalPlayer.First(e.World)
		if !ok {
			return
		}
		target := components.LocalPlayer.Get(localEntry).ControlledEntity
		if !components.Has(e.World, target, components.Transform) {
			return
		}

		pos := xform.WorldPosition(target)

		// Smooth follow
		k := followFactor(config.Camera.FollowSmoothing, clock.FrameTime())
		camera.Position.X += (pos.X - camera.Position.X) * k
		camera.Position.Y += (pos.Y - camera.Position.Y) * k
	}
}
