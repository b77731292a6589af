package hierarchy

import (
	"github.com/automoto/doomerang-spectator/shared/gamemath"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
)

// EntityCoordinates is a position expressed in the local frame of an entity.
type EntityCoordinates struct {
	Entity   donburi.Entity
	Position math.Vec2
}

// ToWorld converts the coordinates to a world-space position.
func (c EntityCoordinates) ToWorld(s *Service) math.Vec2 {
	pos, rot := s.WorldTransform(c.Entity)
	return gamemath.AddVec(pos, gamemath.RotateVec(c.Position, rot))
}
