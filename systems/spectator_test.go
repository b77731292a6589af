package systems

import (
	stdmath "math"
	"testing"
	"time"

	"github.com/automoto/doomerang-spectator/components"
	cfg "github.com/automoto/doomerang-spectator/config"
	"github.com/automoto/doomerang-spectator/hierarchy"
	"github.com/automoto/doomerang-spectator/shared/gamemath"
	"github.com/automoto/doomerang-spectator/shared/leveldata"
	"github.com/automoto/doomerang-spectator/systems/factory"
	"github.com/automoto/doomerang-spectator/tags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/features/math"
)

type spawnCall struct {
	coords hierarchy.EntityCoordinates
	follow bool
}

// recordingSpawner remembers spawn requests without creating anything.
type recordingSpawner struct {
	calls []spawnCall
}

func (r *recordingSpawner) SpawnObserverGhost(coords hierarchy.EntityCoordinates, follow bool) *donburi.Entry {
	r.calls = append(r.calls, spawnCall{coords: coords, follow: follow})
	return nil
}

type spectatorFixture struct {
	ecs      *ecs.ECS
	world    donburi.World
	xform    *hierarchy.Service
	playback *Playback
	binds    *CommandBinds
	sys      *ReplaySpectatorSystem
	m        donburi.Entity
}

func newSpectatorFixture(t *testing.T, spawner GhostSpawner) *spectatorFixture {
	t.Helper()
	e := ecs.NewECS(donburi.NewWorld())
	xform := hierarchy.New(e.World, 32)
	m := factory.CreateMap(e, 1, &leveldata.MapLayout{Name: "test", Width: 512, Height: 512})
	if spawner == nil {
		spawner = factory.NewGhostFactory(e, xform, nil)
	}

	f := &spectatorFixture{
		ecs:      e,
		world:    e.World,
		xform:    xform,
		playback: &Playback{},
		binds:    NewCommandBinds(),
		m:        m.Entity(),
	}
	f.sys = NewReplaySpectatorSystem(xform, f.playback, spawner, f.binds, nil, nil)
	f.sys.Initialize()
	f.playback.Start()
	return f
}

// ghostAt spawns a free ghost on the map at pos and makes it the controlled entity.
func (f *spectatorFixture) ghostAt(pos math.Vec2, speed float64) donburi.Entity {
	ghost := factory.NewGhostFactory(f.ecs, f.xform, nil).
		SpawnObserverGhost(hierarchy.EntityCoordinates{Entity: donburi.Null}, false)
	f.xform.SetWorldPosition(ghost.Entity(), pos)
	components.MovementSpeedModifier.Get(ghost).BaseSprintSpeed = speed
	return ghost.Entity()
}

func (f *spectatorFixture) control(e donburi.Entity) {
	factory.LocalPlayer(f.ecs).ControlledEntity = e
}

func (f *spectatorFixture) controlled() donburi.Entity {
	return factory.LocalPlayer(f.ecs).ControlledEntity
}

func assertVec(t *testing.T, want, got math.Vec2) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-9, "x")
	assert.InDelta(t, want.Y, got.Y, 1e-9, "y")
}

func TestMoverHandlersTrackHeldKeys(t *testing.T) {
	f := newSpectatorFixture(t, &recordingSpawner{})

	assert.True(t, f.binds.Dispatch(cfg.ActionMoveUp, BoundKeyDown))
	assert.Equal(t, gamemath.DirectionNorth, f.sys.Direction)

	assert.True(t, f.binds.Dispatch(cfg.ActionMoveRight, BoundKeyDown))
	assert.Equal(t, gamemath.DirectionNorth|gamemath.DirectionEast, f.sys.Direction)

	// Repeated edges are idempotent.
	assert.True(t, f.binds.Dispatch(cfg.ActionMoveRight, BoundKeyDown))
	assert.Equal(t, gamemath.DirectionNorth|gamemath.DirectionEast, f.sys.Direction)

	assert.True(t, f.binds.Dispatch(cfg.ActionMoveUp, BoundKeyUp))
	assert.True(t, f.binds.Dispatch(cfg.ActionMoveRight, BoundKeyUp))
	assert.Equal(t, gamemath.DirectionNone, f.sys.Direction)

	assert.True(t, f.binds.Dispatch(cfg.ActionMoveLeft, BoundKeyDown))
	assert.True(t, f.binds.Dispatch(cfg.ActionMoveDown, BoundKeyDown))
	assert.Equal(t, gamemath.DirectionWest|gamemath.DirectionSouth, f.sys.Direction)
}

func TestShutdownReleasesBinds(t *testing.T) {
	f := newSpectatorFixture(t, &recordingSpawner{})
	f.sys.Direction = gamemath.DirectionNorth

	f.sys.Shutdown()
	f.sys.Shutdown()

	assert.False(t, f.binds.Registered(SpectatorBindOwner))
	assert.Equal(t, gamemath.DirectionNone, f.sys.Direction)
	assert.False(t, f.binds.Dispatch(cfg.ActionMoveUp, BoundKeyDown))
	assert.Equal(t, gamemath.DirectionNone, f.sys.Direction)
}

func TestDiagonalScenario(t *testing.T) {
	f := newSpectatorFixture(t, nil)
	ghost := f.ghostAt(math.Vec2{X: 100, Y: 100}, 10)
	f.sys.Direction = gamemath.DirectionNorth | gamemath.DirectionEast

	f.sys.FrameUpdate(0.1)

	pos, rot := f.xform.WorldTransform(ghost)
	step := stdmath.Sqrt2 / 2
	assertVec(t, math.Vec2{X: 100 + step, Y: 100 + step}, pos)
	assert.InDelta(t, 1.0, gamemath.VecLength(gamemath.SubVec(pos, math.Vec2{X: 100, Y: 100})), 1e-9)
	assert.InDelta(t, stdmath.Pi/4, rot, 1e-9)
}

func TestOppositeKeysTieBreak(t *testing.T) {
	tests := []struct {
		name string
		dir  gamemath.DirectionFlag
		want math.Vec2
		rot  float64
	}{
		{"north beats south", gamemath.DirectionNorth | gamemath.DirectionSouth, math.Vec2{Y: 1}, stdmath.Pi / 2},
		{"east beats west", gamemath.DirectionEast | gamemath.DirectionWest, math.Vec2{X: 1}, 0},
		{"north south east", gamemath.DirectionNorth | gamemath.DirectionSouth | gamemath.DirectionEast, math.Vec2{X: 1}, 0},
		{"all four", gamemath.DirectionNorth | gamemath.DirectionSouth | gamemath.DirectionEast | gamemath.DirectionWest,
			math.Vec2{X: stdmath.Sqrt2 / 2, Y: stdmath.Sqrt2 / 2}, stdmath.Pi / 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSpectatorFixture(t, nil)
			start := math.Vec2{X: 200, Y: 200}
			ghost := f.ghostAt(start, 10)
			f.sys.Direction = tt.dir

			f.sys.FrameUpdate(0.5)

			pos, rot := f.xform.WorldTransform(ghost)
			assertVec(t, gamemath.AddVec(start, gamemath.ScaleVec(tt.want, 5)), pos)
			assert.InDelta(t, tt.rot, rot, 1e-9)
		})
	}
}

func TestSpeedFallsBackWithoutModifier(t *testing.T) {
	f := newSpectatorFixture(t, nil)
	start := math.Vec2{X: 300, Y: 300}
	ghost := f.ghostAt(start, 10)
	f.world.Entry(ghost).RemoveComponent(components.MovementSpeedModifier)
	f.sys.Direction = gamemath.DirectionWest

	f.sys.FrameUpdate(0.5)

	pos, rot := f.xform.WorldTransform(ghost)
	assert.InDelta(t, 0.5*12, gamemath.VecLength(gamemath.SubVec(pos, start)), 1e-9)
	assertVec(t, math.Vec2{X: 294, Y: 300}, pos)
	assert.InDelta(t, stdmath.Pi, rot, 1e-9)
}

func TestIdleOnlyEasesRotation(t *testing.T) {
	f := newSpectatorFixture(t, nil)
	start := math.Vec2{X: 40, Y: 40}
	ghost := f.ghostAt(start, 10)
	mover := components.InputMover.Get(f.world.Entry(ghost))
	mover.RelativeRotation = 1

	f.sys.FrameUpdate(1)

	pos, _ := f.xform.WorldTransform(ghost)
	assertVec(t, start, pos)
	assert.Less(t, mover.RelativeRotation, 1.0)
	assert.GreaterOrEqual(t, mover.RelativeRotation, 0.0)
}

func TestZeroFrameTimeIsIdempotent(t *testing.T) {
	f := newSpectatorFixture(t, nil)
	start := math.Vec2{X: 60, Y: 80}
	ghost := f.ghostAt(start, 10)
	f.xform.SetWorldPositionRotation(ghost, start, 0.4)
	f.sys.Direction = gamemath.DirectionNorth

	f.sys.FrameUpdate(0)
	f.sys.FrameUpdate(0)

	pos, rot := f.xform.WorldTransform(ghost)
	assertVec(t, start, pos)
	assert.InDelta(t, 0.4, rot, 1e-9)
}

func TestOrphanedObserverResets(t *testing.T) {
	f := newSpectatorFixture(t, nil)
	grid := factory.CreateGrid(f.ecs, f.m, leveldata.RegionRect{Name: "doomed", X: 100, Y: 100, W: 50, H: 50})
	ghost := f.ghostAt(math.Vec2{}, 10)
	f.xform.SetCoordinates(ghost, grid.Entity(), math.Vec2{X: 5, Y: 5})
	components.Transform.Get(f.world.Entry(ghost)).LocalRotation = 0.3

	f.world.Remove(grid.Entity())
	f.sys.Direction = gamemath.DirectionEast
	f.sys.FrameUpdate(0.1)

	xform := components.Transform.Get(f.world.Entry(ghost))
	assert.Equal(t, f.m, xform.Parent)
	assertVec(t, math.Vec2{}, xform.LocalPosition)
	assert.InDelta(t, 0.3, xform.LocalRotation, 1e-9)
}

func TestMovingPossessedEntityRequestsGhost(t *testing.T) {
	spawner := &recordingSpawner{}
	f := newSpectatorFixture(t, spawner)
	recorded := factory.CreateRecorded(f.ecs, f.xform, f.m, math.Vec2{X: 50, Y: 50})
	f.control(recorded.Entity())
	before := *components.Transform.Get(recorded)
	f.sys.Direction = gamemath.DirectionNorth

	f.sys.FrameUpdate(0.1)

	require.Len(t, spawner.calls, 1)
	assert.Equal(t, recorded.Entity(), spawner.calls[0].coords.Entity)
	assert.True(t, spawner.calls[0].follow)
	assert.Equal(t, before, *components.Transform.Get(recorded))
	assert.Equal(t, recorded.Entity(), f.controlled())
}

func TestPossessionHandsControlToFollowingGhost(t *testing.T) {
	f := newSpectatorFixture(t, nil)
	start := math.Vec2{X: 50, Y: 50}
	recorded := factory.CreateRecorded(f.ecs, f.xform, f.m, start)
	f.control(recorded.Entity())
	f.sys.Direction = gamemath.DirectionEast

	f.sys.FrameUpdate(0.1)

	ghost := f.controlled()
	require.NotEqual(t, recorded.Entity(), ghost)
	require.True(t, components.Has(f.world, ghost, tags.Spectator))
	assert.Equal(t, recorded.Entity(), f.xform.Parent(ghost))
	assert.True(t, components.Has(f.world, ghost, components.Follow))
	assertVec(t, start, f.xform.WorldPosition(ghost))

	// The ghost rides along while the recorded entity moves.
	f.xform.SetWorldPosition(recorded.Entity(), math.Vec2{X: 70, Y: 50})
	assertVec(t, math.Vec2{X: 70, Y: 50}, f.xform.WorldPosition(ghost))

	// Moving the ghost ends the follow.
	f.sys.FrameUpdate(0.5)

	assert.False(t, components.Has(f.world, ghost, components.Follow))
	assert.Equal(t, f.m, f.xform.Parent(ghost))
	assertVec(t, math.Vec2{X: 70 + 0.5*cfg.Spectator.GhostSprintSpeed, Y: 50}, f.xform.WorldPosition(ghost))
	assertVec(t, math.Vec2{X: 70, Y: 50}, f.xform.WorldPosition(recorded.Entity()))
}

func TestCrossingIntoRotatedGrid(t *testing.T) {
	f := newSpectatorFixture(t, nil)
	// A quarter turn puts the grid over x in [100, 200], y in [0, 100].
	grid := factory.CreateGrid(f.ecs, f.m, leveldata.RegionRect{Name: "dock", X: 200, Y: 0, W: 100, H: 100, Rotation: stdmath.Pi / 2})
	f.xform.Sync()
	ghost := f.ghostAt(math.Vec2{X: 95, Y: 50}, 10)
	f.sys.Direction = gamemath.DirectionEast

	f.sys.FrameUpdate(1)
	assert.Equal(t, f.m, f.xform.Parent(ghost))
	assertVec(t, math.Vec2{X: 105, Y: 50}, f.xform.WorldPosition(ghost))

	f.sys.FrameUpdate(0.01)

	mover := components.InputMover.Get(f.world.Entry(ghost))
	assert.Equal(t, grid.Entity(), f.xform.Parent(ghost))
	assert.Equal(t, grid.Entity(), mover.RelativeEntity)
	assert.InDelta(t, 3*stdmath.Pi/2, mover.RelativeRotation, 1e-9)
	assert.Zero(t, mover.TargetRelativeRotation)
	// The input frame does not jump when the parent changes.
	assertVec(t, math.Vec2{X: 105.1, Y: 50}, f.xform.WorldPosition(ghost))

	f.sys.FrameUpdate(0.01)
	assert.Greater(t, mover.RelativeRotation, 3*stdmath.Pi/2)
}

func TestGuardsLeaveEverythingAlone(t *testing.T) {
	t.Run("no playback", func(t *testing.T) {
		spawner := &recordingSpawner{}
		f := newSpectatorFixture(t, spawner)
		start := math.Vec2{X: 10, Y: 10}
		ghost := f.ghostAt(start, 10)
		f.playback.Stop()
		f.sys.Direction = gamemath.DirectionNorth

		f.sys.FrameUpdate(1)

		assertVec(t, start, f.xform.WorldPosition(ghost))
		assert.Empty(t, spawner.calls)
	})

	t.Run("nil playback", func(t *testing.T) {
		f := newSpectatorFixture(t, nil)
		ghost := f.ghostAt(math.Vec2{X: 10, Y: 10}, 10)
		sys := NewReplaySpectatorSystem(f.xform, nil, &recordingSpawner{}, f.binds, nil, nil)
		sys.Direction = gamemath.DirectionNorth

		sys.FrameUpdate(1)

		assertVec(t, math.Vec2{X: 10, Y: 10}, f.xform.WorldPosition(ghost))
	})

	t.Run("nothing controlled", func(t *testing.T) {
		spawner := &recordingSpawner{}
		f := newSpectatorFixture(t, spawner)
		f.control(donburi.Null)
		f.sys.Direction = gamemath.DirectionNorth

		f.sys.FrameUpdate(1)

		assert.Empty(t, spawner.calls)
	})

	t.Run("controlled entity removed", func(t *testing.T) {
		spawner := &recordingSpawner{}
		f := newSpectatorFixture(t, spawner)
		recorded := factory.CreateRecorded(f.ecs, f.xform, f.m, math.Vec2{})
		f.control(recorded.Entity())
		f.world.Remove(recorded.Entity())
		f.sys.Direction = gamemath.DirectionNorth

		f.sys.FrameUpdate(1)

		assert.Empty(t, spawner.calls)
	})
}

func TestUpdateUsesClockFrameTime(t *testing.T) {
	f := newSpectatorFixture(t, nil)
	start := math.Vec2{X: 100, Y: 100}
	ghost := f.ghostAt(start, 10)

	t0 := time.Unix(1000, 0)
	times := []time.Time{t0, t0.Add(100 * time.Millisecond)}
	clock := NewFrameClock(func() time.Time {
		now := times[0]
		times = times[1:]
		return now
	})
	sys := NewReplaySpectatorSystem(f.xform, f.playback, &recordingSpawner{}, NewCommandBinds(), clock, nil)
	sys.Direction = gamemath.DirectionNorth

	clock.Tick()
	sys.Update(f.ecs)
	assertVec(t, start, f.xform.WorldPosition(ghost))

	clock.Tick()
	sys.Update(f.ecs)
	assertVec(t, math.Vec2{X: 100, Y: 101}, f.xform.WorldPosition(ghost))
}
