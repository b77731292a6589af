package components

import "github.com/yohamta/donburi"

// InputMoverData tracks the frame an input-driven entity moves relative to.
// RelativeRotation eases toward TargetRelativeRotation after the entity changes frames,
// so movement keys keep their on-screen meaning while the view turns.
type InputMoverData struct {
	RelativeEntity         donburi.Entity
	RelativeRotation       float64
	TargetRelativeRotation float64
}

var InputMover = donburi.NewComponentType[InputMoverData]()
