package factory

import (
	"github.com/automoto/doomerang-spectator/archetypes"
	"github.com/automoto/doomerang-spectator/components"
	cfg "github.com/automoto/doomerang-spectator/config"
	"github.com/automoto/doomerang-spectator/hierarchy"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/features/math"
	"go.uber.org/zap"
)

// GhostFactory spawns observer ghosts and hands local control to them.
type GhostFactory struct {
	ecs   *ecs.ECS
	xform *hierarchy.Service
	log   *zap.Logger
}

func NewGhostFactory(ecs *ecs.ECS, xform *hierarchy.Service, log *zap.Logger) *GhostFactory {
	if log == nil {
		log = zap.NewNop()
	}
	return &GhostFactory{ecs: ecs, xform: xform, log: log.Named("ghost")}
}

// SpawnObserverGhost creates a client-side spectator ghost at coords and makes
// it the locally controlled entity. With follow the ghost is attached to
// coords.Entity so it rides along until the spectator moves it.
func (g *GhostFactory) SpawnObserverGhost(coords hierarchy.EntityCoordinates, follow bool) *donburi.Entry {
	world := g.ecs.World
	ghost := archetypes.Ghost.Spawn(g.ecs)
	components.MovementSpeedModifier.SetValue(ghost, components.MovementSpeedModifierData{
		BaseWalkSpeed:   cfg.Spectator.GhostWalkSpeed,
		BaseSprintSpeed: cfg.Spectator.GhostSprintSpeed,
	})

	source := coords.Entity
	sourceValid := components.Has(world, source, components.Transform)

	mover := components.InputMoverData{}
	if follow && sourceValid {
		g.xform.SetCoordinates(ghost.Entity(), source, coords.Position)
		ghost.AddComponent(components.Follow)
		components.Follow.SetValue(ghost, components.FollowData{Target: source})
		mover.RelativeEntity = g.xform.Parent(source)
	} else {
		m, ok := g.xform.MapOf(source)
		if !ok {
			m, _ = g.xform.DefaultMap()
		}
		g.xform.SetCoordinates(ghost.Entity(), m, math.Vec2{})
		if sourceValid {
			g.xform.SetWorldPosition(ghost.Entity(), coords.ToWorld(g.xform))
		}
		mover.RelativeEntity = g.xform.AttachToGridOrMap(ghost.Entity())
	}
	components.InputMover.SetValue(ghost, mover)

	LocalPlayer(g.ecs).ControlledEntity = ghost.Entity()

	g.log.Debug("spawned observer ghost",
		zap.Any("ghost", ghost.Entity()),
		zap.Any("source", source),
		zap.Bool("follow", follow))
	return ghost
}

// CreateRecorded spawns an entity replayed from the recording at a world position on map m.
func CreateRecorded(ecs *ecs.ECS, xform *hierarchy.Service, m donburi.Entity, pos math.Vec2) *donburi.Entry {
	e := archetypes.Recorded.Spawn(ecs)
	components.Transform.SetValue(e, components.TransformData{Parent: m})
	xform.SetWorldPosition(e.Entity(), pos)
	components.InputMover.SetValue(e, components.InputMoverData{
		RelativeEntity: xform.AttachToGridOrMap(e.Entity()),
	})
	return e
}
