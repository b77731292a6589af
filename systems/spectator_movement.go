package systems

import (
	"github.com/automoto/doomerang-spectator/components"
	cfg "github.com/automoto/doomerang-spectator/config"
	"github.com/automoto/doomerang-spectator/hierarchy"
	"github.com/automoto/doomerang-spectator/shared/gamemath"
	"github.com/automoto/doomerang-spectator/tags"
	"go.uber.org/zap"
)

// FrameUpdate resolves one frame of observer movement. frameTime is in seconds.
func (s *ReplaySpectatorSystem) FrameUpdate(frameTime float64) {
	if s.playback == nil || !s.playback.Active() {
		return
	}

	player, ok := s.controlledEntity()
	if !ok {
		return
	}

	if s.Direction == gamemath.DirectionNone {
		if mover, ok := components.TryGet(s.world, player, components.InputMover); ok {
			s.mover.LerpRotation(mover, frameTime)
		}
		return
	}

	if !components.Has(s.world, player, tags.ClientSide) || !components.Has(s.world, player, tags.Spectator) {
		// Moving while possessing a recorded entity: hop out into a ghost that
		// keeps following it.
		s.log.Debug("possessed entity moved, spawning observer ghost", zap.Any("entity", player))
		s.spawner.SpawnObserverGhost(hierarchy.EntityCoordinates{Entity: player}, true)
		return
	}

	mover, ok := components.TryGet(s.world, player, components.InputMover)
	if !ok {
		return
	}
	s.mover.LerpRotation(mover, frameTime)

	effectiveDir := s.Direction.Effective()

	if !components.Has(s.world, player, components.Transform) {
		return
	}
	pos, rot := s.xform.WorldTransform(player)

	if !s.xform.ParentValid(player) {
		// The grid it sat on was probably deleted under it.
		s.log.Debug("observer orphaned, resetting position", zap.Any("entity", player))
		s.xform.ResetToDefault(player)
		return
	}

	// Cheap grid traversal: re-pick the containing grid every frame. This also
	// stops any follow.
	s.xform.Detach(player)
	s.xform.AttachToGridOrMap(player)
	if s.mover.UpdateRelative(player, mover) {
		s.log.Debug("observer changed region", zap.Any("entity", player), zap.Any("parent", mover.RelativeEntity))
	}

	parentRotation := s.mover.ParentGridAngle(mover)
	localVec := effectiveDir.Vec()
	worldVec := s.xform.RotateVec(localVec, parentRotation)

	speed := cfg.Spectator.DefaultSpeed
	if mod, ok := components.TryGet(s.world, player, components.MovementSpeedModifier); ok {
		speed = mod.BaseSprintSpeed
	}

	delta := gamemath.ScaleVec(worldVec, frameTime*speed)
	if gamemath.VecLength(delta) > 0 {
		rot = gamemath.VecAngle(delta)
	}
	s.xform.SetWorldPositionRotation(player, gamemath.AddVec(pos, delta), rot)
}
