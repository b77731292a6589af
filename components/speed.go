package components

import "github.com/yohamta/donburi"

// MovementSpeedModifierData supplies the base movement speeds of an entity, in world units per second.
type MovementSpeedModifierData struct {
	BaseWalkSpeed   float64
	BaseSprintSpeed float64
}

var MovementSpeedModifier = donburi.NewComponentType[MovementSpeedModifierData]()
