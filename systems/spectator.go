package systems

import (
	"github.com/automoto/doomerang-spectator/components"
	cfg "github.com/automoto/doomerang-spectator/config"
	"github.com/automoto/doomerang-spectator/hierarchy"
	"github.com/automoto/doomerang-spectator/shared/gamemath"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// SpectatorBindOwner is the CommandBinds owner key of the spectator movement handlers.
const SpectatorBindOwner = "replay-spectator"

// GhostSpawner creates observer ghosts.
type GhostSpawner interface {
	// SpawnObserverGhost spawns a ghost at coords. With follow set the ghost
	// rides along with coords.Entity until it is moved.
	SpawnObserverGhost(coords hierarchy.EntityCoordinates, follow bool) *donburi.Entry
}

// ReplaySpectatorSystem moves the locally controlled observer during replay
// playback, where no physics or prediction runs. Movement is recomputed from the
// held directions every frame; there is no velocity, acceleration or friction.
type ReplaySpectatorSystem struct {
	// Direction mirrors the currently held movement keys.
	Direction gamemath.DirectionFlag

	world    donburi.World
	playback PlaybackSession
	xform    *hierarchy.Service
	mover    *MoverController
	spawner  GhostSpawner
	binds    *CommandBinds
	clock    *FrameClock
	log      *zap.Logger
}

// NewReplaySpectatorSystem wires the system to its collaborators. A nil clock
// measures time.Now; a nil logger disables logging.
func NewReplaySpectatorSystem(xform *hierarchy.Service, playback PlaybackSession, spawner GhostSpawner, binds *CommandBinds, clock *FrameClock, log *zap.Logger) *ReplaySpectatorSystem {
	if clock == nil {
		clock = NewFrameClock(nil)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ReplaySpectatorSystem{
		world:    xform.World(),
		playback: playback,
		xform:    xform,
		mover:    NewMoverController(xform),
		spawner:  spawner,
		binds:    binds,
		clock:    clock,
		log:      log.Named("spectator"),
	}
}

// MoverHandler sets its direction bit while its key is held.
type MoverHandler struct {
	sys *ReplaySpectatorSystem
	dir gamemath.DirectionFlag
}

// HandleCmd always consumes the event so nothing else sees spectator movement keys.
func (h MoverHandler) HandleCmd(state BoundKeyState) bool {
	if state == BoundKeyDown {
		h.sys.Direction |= h.dir
	} else {
		h.sys.Direction &^= h.dir
	}
	return true
}

// Initialize registers the four movement handlers.
func (s *ReplaySpectatorSystem) Initialize() {
	s.binds.Register(SpectatorBindOwner,
		Bind{Action: cfg.ActionMoveUp, Handler: MoverHandler{sys: s, dir: gamemath.DirectionNorth}},
		Bind{Action: cfg.ActionMoveLeft, Handler: MoverHandler{sys: s, dir: gamemath.DirectionWest}},
		Bind{Action: cfg.ActionMoveRight, Handler: MoverHandler{sys: s, dir: gamemath.DirectionEast}},
		Bind{Action: cfg.ActionMoveDown, Handler: MoverHandler{sys: s, dir: gamemath.DirectionSouth}},
	)
}

// Shutdown unregisters the handlers and forgets any held direction.
func (s *ReplaySpectatorSystem) Shutdown() {
	s.binds.Unregister(SpectatorBindOwner)
	s.Direction = gamemath.DirectionNone
}

// Update is the ECS system entry point. It runs once per rendered frame with
// the frame time measured by the clock.
func (s *ReplaySpectatorSystem) Update(_ *ecs.ECS) {
	s.FrameUpdate(s.clock.FrameTime())
}

// controlledEntity returns the entity the local player controls, if it is alive.
func (s *ReplaySpectatorSystem) controlledEntity() (donburi.Entity, bool) {
	entry, ok := components.LocalPlayer.First(s.world)
	if !ok {
		return donburi.Null, false
	}
	e := components.LocalPlayer.Get(entry).ControlledEntity
	if e == donburi.Null || !s.world.Valid(e) {
		return donburi.Null, false
	}
	return e, true
}
