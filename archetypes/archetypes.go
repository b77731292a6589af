package archetypes

import (
	"github.com/automoto/doomerang-spectator/components"
	cfg "github.com/automoto/doomerang-spectator/config"
	"github.com/automoto/doomerang-spectator/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	Map = newArchetype(
		components.Map,
		components.Transform,
	)
	Grid = newArchetype(
		tags.Grid,
		components.Region,
		components.Transform,
	)
	Ghost = newArchetype(
		tags.Spectator,
		tags.ClientSide,
		components.Transform,
		components.InputMover,
		components.MovementSpeedModifier,
	)
	Recorded = newArchetype(
		tags.Recorded,
		components.Transform,
		components.InputMover,
	)
	LocalPlayer = newArchetype(
		components.LocalPlayer,
	)
	Camera = newArchetype(
		components.Camera,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.Create(
		cfg.Default,
		append(a.components, cs...)...,
	))
	return e
}
