package components

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
)

// TransformData places an entity in the spatial hierarchy. LocalPosition and
// LocalRotation are expressed in the parent's frame. Maps use donburi.Null as parent.
type TransformData struct {
	LocalPosition math.Vec2
	LocalRotation float64
	Parent        donburi.Entity
}

var Transform = donburi.NewComponentType[TransformData]()
