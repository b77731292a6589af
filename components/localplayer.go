package components

import (
	"github.com/yohamta/donburi"
)

// LocalPlayerData is a singleton holding the entity the local player controls.
// donburi.Null means nothing is controlled.
type LocalPlayerData struct {
	ControlledEntity donburi.Entity
}

var LocalPlayer = donburi.NewComponentType[LocalPlayerData]()
