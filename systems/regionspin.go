package systems

import (
	"github.com/automoto/doomerang-spectator/components"
	"github.com/automoto/doomerang-spectator/hierarchy"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateRegionSpin advances every swinging grid by frameTime seconds.
func UpdateRegionSpin(world donburi.World, frameTime float64) {
	components.RegionSpin.Each(world, func(entry *donburi.Entry) {
		if !entry.HasComponent(components.Transform) {
			return
		}
		spin := components.RegionSpin.Get(entry)
		tw := spin.Out
		switch {
		case !spin.Started && spin.Start != nil:
			tw = spin.Start
		case spin.Returning:
			tw = spin.Back
		}
		offset, finished := tw.Update(float32(frameTime))
		if finished {
			tw.Reset()
			if tw == spin.Start {
				// Start ends at +Spin, so the swing continues with Back.
				spin.Started = true
				spin.Returning = true
			} else {
				spin.Returning = !spin.Returning
			}
		}
		components.Transform.Get(entry).LocalRotation = spin.BaseRotation + float64(offset)
	})
}

// NewRegionIndexSystem returns an update system that refreshes the grid
// broadphase after grids have moved for the frame.
func NewRegionIndexSystem(xform *hierarchy.Service) func(*ecs.ECS) {
	return func(_ *ecs.ECS) {
		xform.Sync()
	}
}
