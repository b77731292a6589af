package systems

import (
	"github.com/automoto/doomerang-spectator/components"
	"github.com/automoto/doomerang-spectator/hierarchy"
	"github.com/automoto/doomerang-spectator/shared/gamemath"
	"github.com/yohamta/donburi"
)

// MoverController owns the frame-of-reference bookkeeping of InputMover components.
type MoverController struct {
	xform *hierarchy.Service
}

func NewMoverController(xform *hierarchy.Service) *MoverController {
	return &MoverController{xform: xform}
}

// LerpRotation eases the mover's relative rotation toward its target.
func (m *MoverController) LerpRotation(mover *components.InputMoverData, frameTime float64) {
	mover.RelativeRotation = gamemath.LerpRotation(mover.RelativeRotation, mover.TargetRelativeRotation, frameTime)
}

// ParentGridAngle returns the world angle movement input is expressed in: the
// relative entity's world rotation plus the mover's own relative rotation.
func (m *MoverController) ParentGridAngle(mover *components.InputMoverData) float64 {
	rot := mover.RelativeRotation
	if components.Has(m.xform.World(), mover.RelativeEntity, components.Transform) {
		rot += m.xform.WorldRotation(mover.RelativeEntity)
	}
	return rot
}

// UpdateRelative switches the mover's frame to the entity's current parent.
// The relative rotation is rebased so the input frame does not jump, then
// eases toward the new parent's orientation.
func (m *MoverController) UpdateRelative(e donburi.Entity, mover *components.InputMoverData) bool {
	parent := m.xform.Parent(e)
	if parent == mover.RelativeEntity {
		return false
	}
	current := m.ParentGridAngle(mover)
	var parentRot float64
	if components.Has(m.xform.World(), parent, components.Transform) {
		parentRot = m.xform.WorldRotation(parent)
	}
	mover.RelativeEntity = parent
	mover.RelativeRotation = gamemath.FlipPositive(current - parentRot)
	mover.TargetRelativeRotation = 0
	return true
}
