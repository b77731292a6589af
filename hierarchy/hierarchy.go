// Package hierarchy implements the spatial parent/child graph that positioned
// entities live in: maps at the root, grids inside maps, and anything else
// attached to a grid, a map or another entity.
package hierarchy

import (
	"github.com/automoto/doomerang-spectator/components"
	"github.com/automoto/doomerang-spectator/shared/gamemath"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
)

// maxDepth bounds parent walks so a corrupted graph cannot hang the frame.
const maxDepth = 64

// Service answers world-space queries and performs re-parenting over the
// Transform components of a world.
type Service struct {
	world donburi.World
	index *RegionIndex
}

// New returns a hierarchy service for w. cellSize is the broadphase cell size
// used for grid lookups.
func New(w donburi.World, cellSize int) *Service {
	return &Service{
		world: w,
		index: NewRegionIndex(cellSize),
	}
}

// World returns the world the service operates on.
func (s *Service) World() donburi.World {
	return s.world
}

// Sync refreshes the grid broadphase. Call once per frame before any
// AttachToGridOrMap so grids that moved or rotated are found where they are.
func (s *Service) Sync() {
	s.index.Sync(s)
}

func (s *Service) transform(e donburi.Entity) (*components.TransformData, bool) {
	return components.TryGet(s.world, e, components.Transform)
}

// ParentValid reports whether e's parent still exists. Maps are roots and
// always report true.
func (s *Service) ParentValid(e donburi.Entity) bool {
	xform, ok := s.transform(e)
	if !ok {
		return false
	}
	if components.Has(s.world, e, components.Map) {
		return true
	}
	_, ok = s.transform(xform.Parent)
	return ok
}

// Parent returns e's parent entity, or donburi.Null.
func (s *Service) Parent(e donburi.Entity) donburi.Entity {
	xform, ok := s.transform(e)
	if !ok {
		return donburi.Null
	}
	return xform.Parent
}

// WorldTransform returns e's position and rotation in world space. The walk stops
// at the first missing ancestor, which is treated as the world origin.
func (s *Service) WorldTransform(e donburi.Entity) (math.Vec2, float64) {
	xform, ok := s.transform(e)
	if !ok {
		return math.Vec2{}, 0
	}
	pos, rot := xform.LocalPosition, xform.LocalRotation
	parent := xform.Parent
	for depth := 0; depth < maxDepth; depth++ {
		p, ok := s.transform(parent)
		if !ok {
			break
		}
		pos = gamemath.AddVec(p.LocalPosition, gamemath.RotateVec(pos, p.LocalRotation))
		rot += p.LocalRotation
		parent = p.Parent
	}
	return pos, rot
}

// WorldPosition returns e's position in world space.
func (s *Service) WorldPosition(e donburi.Entity) math.Vec2 {
	pos, _ := s.WorldTransform(e)
	return pos
}

// WorldRotation returns e's rotation in world space.
func (s *Service) WorldRotation(e donburi.Entity) float64 {
	_, rot := s.WorldTransform(e)
	return rot
}

// RotateVec rotates v counter-clockwise by angle radians.
func (s *Service) RotateVec(v math.Vec2, angle float64) math.Vec2 {
	return gamemath.RotateVec(v, angle)
}

// MapOf returns the map at the root of e's hierarchy.
func (s *Service) MapOf(e donburi.Entity) (donburi.Entity, bool) {
	cur := e
	for depth := 0; depth < maxDepth; depth++ {
		if components.Has(s.world, cur, components.Map) {
			return cur, true
		}
		xform, ok := s.transform(cur)
		if !ok {
			return donburi.Null, false
		}
		cur = xform.Parent
	}
	return donburi.Null, false
}

// DefaultMap returns the map with the lowest ID.
func (s *Service) DefaultMap() (donburi.Entity, bool) {
	found := donburi.Null
	bestID := 0
	components.Map.Each(s.world, func(entry *donburi.Entry) {
		m := components.Map.Get(entry)
		if found == donburi.Null || m.ID < bestID {
			found = entry.Entity()
			bestID = m.ID
		}
	})
	return found, found != donburi.Null
}

// isAncestor reports whether a is e itself or one of e's ancestors.
func (s *Service) isAncestor(a, e donburi.Entity) bool {
	cur := e
	for depth := 0; depth < maxDepth; depth++ {
		if cur == a {
			return true
		}
		xform, ok := s.transform(cur)
		if !ok {
			return false
		}
		cur = xform.Parent
	}
	return false
}

// SetParent re-parents e. With keepWorld the entity stays where it is on screen;
// otherwise its local values are reinterpreted in the new parent's frame.
// Parenting an entity under itself or one of its descendants is ignored.
func (s *Service) SetParent(e, parent donburi.Entity, keepWorld bool) bool {
	xform, ok := s.transform(e)
	if !ok {
		return false
	}
	if parent != donburi.Null && s.isAncestor(e, parent) {
		return false
	}
	if xform.Parent == parent {
		return true
	}
	pos, rot := s.WorldTransform(e)
	xform.Parent = parent
	if keepWorld {
		s.SetWorldPositionRotation(e, pos, rot)
	}
	return true
}

// SetWorldPositionRotation places e at the given world position and rotation,
// converting both into its parent's frame.
func (s *Service) SetWorldPositionRotation(e donburi.Entity, pos math.Vec2, rot float64) {
	xform, ok := s.transform(e)
	if !ok {
		return
	}
	var parentPos math.Vec2
	var parentRot float64
	if _, ok := s.transform(xform.Parent); ok {
		parentPos, parentRot = s.WorldTransform(xform.Parent)
	}
	xform.LocalPosition = gamemath.RotateVec(gamemath.SubVec(pos, parentPos), -parentRot)
	xform.LocalRotation = rot - parentRot
}

// SetWorldPosition moves e without changing its world rotation.
func (s *Service) SetWorldPosition(e donburi.Entity, pos math.Vec2) {
	_, rot := s.WorldTransform(e)
	s.SetWorldPositionRotation(e, pos, rot)
}

// SetCoordinates attaches e to parent at the given local position.
func (s *Service) SetCoordinates(e, parent donburi.Entity, local math.Vec2) {
	xform, ok := s.transform(e)
	if !ok {
		return
	}
	xform.Parent = parent
	xform.LocalPosition = local
}

// ResetToDefault moves e to the origin of the default map. With no map loaded
// the entity is left in nullspace at the origin.
func (s *Service) ResetToDefault(e donburi.Entity) {
	m, _ := s.DefaultMap()
	s.SetCoordinates(e, m, math.Vec2{})
}

// Detach lifts e off whatever it is attached to and puts it directly on its map,
// keeping its world transform. Following another entity ends here.
func (s *Service) Detach(e donburi.Entity) {
	if components.Has(s.world, e, components.Follow) {
		s.world.Entry(e).RemoveComponent(components.Follow)
	}
	m, ok := s.MapOf(s.Parent(e))
	if !ok {
		return
	}
	s.SetParent(e, m, true)
}

// AttachToGridOrMap parents e to the grid containing its world position, or to
// its map when no grid does. The entity's position may lie anywhere, including
// outside its previous parent.
func (s *Service) AttachToGridOrMap(e donburi.Entity) donburi.Entity {
	m, ok := s.MapOf(s.Parent(e))
	if !ok {
		return s.Parent(e)
	}
	target := m
	if grid, found := s.index.GridAt(s, m, s.WorldPosition(e)); found && grid != e {
		target = grid
	}
	s.SetParent(e, target, true)
	return target
}

// GridAt returns the grid of map m containing the world position, if any.
func (s *Service) GridAt(m donburi.Entity, pos math.Vec2) (donburi.Entity, bool) {
	return s.index.GridAt(s, m, pos)
}
