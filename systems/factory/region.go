package factory

import (
	"github.com/automoto/doomerang-spectator/archetypes"
	"github.com/automoto/doomerang-spectator/components"
	cfg "github.com/automoto/doomerang-spectator/config"
	"github.com/automoto/doomerang-spectator/shared/leveldata"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/features/math"
)

// CreateMap spawns a map root for layout along with its grids.
func CreateMap(ecs *ecs.ECS, id int, layout *leveldata.MapLayout) *donburi.Entry {
	m := archetypes.Map.Spawn(ecs)
	components.Map.SetValue(m, components.MapData{
		ID:     id,
		Name:   layout.Name,
		Width:  layout.Width,
		Height: layout.Height,
	})
	components.Transform.SetValue(m, components.TransformData{Parent: donburi.Null})

	for _, r := range layout.Regions {
		CreateGrid(ecs, m.Entity(), r)
	}
	return m
}

// CreateGrid spawns a grid on map m.
func CreateGrid(ecs *ecs.ECS, m donburi.Entity, r leveldata.RegionRect) *donburi.Entry {
	grid := archetypes.Grid.Spawn(ecs)
	components.Region.SetValue(grid, components.RegionData{
		Name:   r.Name,
		Width:  r.W,
		Height: r.H,
	})
	components.Transform.SetValue(grid, components.TransformData{
		LocalPosition: math.Vec2{X: r.X, Y: r.Y},
		LocalRotation: r.Rotation,
		Parent:        m,
	})

	if r.Spin != 0 {
		// The grid eases out of its placed rotation to +Spin, then swings between
		// the two extremes.
		grid.AddComponent(components.RegionSpin)
		d := cfg.Region.SpinSeconds
		components.RegionSpin.SetValue(grid, components.RegionSpinData{
			BaseRotation: r.Rotation,
			Start:        gween.New(0, float32(r.Spin), d/2, ease.OutSine),
			Out:          gween.New(float32(-r.Spin), float32(r.Spin), d, ease.InOutSine),
			Back:         gween.New(float32(r.Spin), float32(-r.Spin), d, ease.InOutSine),
		})
	}
	return grid
}
