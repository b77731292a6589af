package factory

import (
	"github.com/automoto/doomerang-spectator/archetypes"
	"github.com/automoto/doomerang-spectator/components"
	cfg "github.com/automoto/doomerang-spectator/config"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func CreateCamera(ecs *ecs.ECS) *donburi.Entry {
	camera := archetypes.Camera.Spawn(ecs)
	components.Camera.Set(camera, &components.CameraData{Zoom: cfg.Camera.Zoom})
	return camera
}

// LocalPlayer returns the local player singleton, creating it on first use.
func LocalPlayer(ecs *ecs.ECS) *components.LocalPlayerData {
	entry, ok := components.LocalPlayer.First(ecs.World)
	if !ok {
		entry = archetypes.LocalPlayer.Spawn(ecs)
		components.LocalPlayer.Set(entry, &components.LocalPlayerData{ControlledEntity: donburi.Null})
	}
	return components.LocalPlayer.Get(entry)
}
