package scenes

import (
	"image/color"
	"sync"

	cfg "github.com/automoto/doomerang-spectator/config"
	"github.com/automoto/doomerang-spectator/hierarchy"
	"github.com/automoto/doomerang-spectator/shared/leveldata"
	"github.com/automoto/doomerang-spectator/systems"
	"github.com/automoto/doomerang-spectator/systems/factory"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/features/math"
	"go.uber.org/zap"
)

// ReplayScene plays back a recorded map and lets the local viewer fly around it.
type ReplayScene struct {
	ecs       *ecs.ECS
	layout    *leveldata.MapLayout
	log       *zap.Logger
	playback  *systems.Playback
	spectator *systems.ReplaySpectatorSystem
	once      sync.Once
}

func NewReplayScene(layout *leveldata.MapLayout, log *zap.Logger) *ReplayScene {
	if log == nil {
		log = zap.NewNop()
	}
	return &ReplayScene{
		layout:   layout,
		log:      log.Named("replay"),
		playback: &systems.Playback{},
	}
}

func (rs *ReplayScene) Update() {
	rs.once.Do(rs.configure)
	rs.ecs.Update()
}

func (rs *ReplayScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	if rs.ecs == nil {
		return
	}
	rs.ecs.Draw(screen)
}

// Close stops playback and releases the spectator's key binds.
func (rs *ReplayScene) Close() {
	rs.playback.Stop()
	if rs.spectator != nil {
		rs.spectator.Shutdown()
	}
}

// ECS exposes the scene's world once it has been configured.
func (rs *ReplayScene) ECS() *ecs.ECS {
	rs.once.Do(rs.configure)
	return rs.ecs
}

func (rs *ReplayScene) configure() {
	e := ecs.NewECS(donburi.NewWorld())
	rs.ecs = e

	xform := hierarchy.New(e.World, cfg.Region.CellSize)
	m := factory.CreateMap(e, 1, rs.layout)
	factory.CreateCamera(e)

	var first donburi.Entity = donburi.Null
	for _, spawn := range rs.layout.Recorded {
		entry := factory.CreateRecorded(e, xform, m.Entity(), math.Vec2{X: spawn.X, Y: spawn.Y})
		if first == donburi.Null {
			first = entry.Entity()
		}
	}
	// Playback starts with the viewer riding the first recorded entity.
	factory.LocalPlayer(e).ControlledEntity = first

	binds := systems.NewCommandBinds()
	clock := systems.NewFrameClock(nil)
	ghosts := factory.NewGhostFactory(e, xform, rs.log)
	rs.spectator = systems.NewReplaySpectatorSystem(xform, rs.playback, ghosts, binds, clock, rs.log)
	rs.spectator.Initialize()

	e.AddSystem(clock.Update)
	e.AddSystem(systems.NewKeyInput(binds).Update)
	e.AddSystem(systems.NewRegionSpinSystem(clock))
	e.AddSystem(systems.NewRegionIndexSystem(xform))
	e.AddSystem(rs.spectator.Update)
	e.AddSystem(systems.NewCameraSystem(xform, clock))

	e.AddRenderer(cfg.Default, systems.NewRegionRenderer(xform))
	e.AddRenderer(cfg.Default, systems.NewEntityRenderer(xform))
	e.AddRenderer(cfg.Default, systems.NewHUDRenderer(rs.spectator, rs.playback))

	xform.Sync()
	rs.playback.Start()

	rs.log.Info("replay started",
		zap.String("map", rs.layout.Name),
		zap.Int("grids", len(rs.layout.Regions)),
		zap.Int("recorded", len(rs.layout.Recorded)),
		zap.Any("controlled", first))
}
