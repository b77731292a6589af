package components

import "github.com/yohamta/donburi"

// FollowData is present while an entity is attached to another entity to follow it.
type FollowData struct {
	Target donburi.Entity
}

var Follow = donburi.NewComponentType[FollowData]()
