package hierarchy

import (
	stdmath "math"
	"sort"

	"github.com/automoto/doomerang-spectator/components"
	"github.com/automoto/doomerang-spectator/shared/gamemath"
	"github.com/automoto/doomerang-spectator/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
)

// RegionIndex is a per-map broadphase over grid bounds. Each grid is stored as
// its axis-aligned bounding box in map space; candidates are then tested
// exactly against the grid's own rotated rectangle.
type RegionIndex struct {
	cellSize int
	spaces   map[donburi.Entity]*mapSpace
}

type mapSpace struct {
	space   *resolv.Space
	width   float64
	height  float64
	objects map[donburi.Entity]*resolv.Object
}

// NewRegionIndex returns an empty index using square cells of cellSize units.
func NewRegionIndex(cellSize int) *RegionIndex {
	if cellSize <= 0 {
		cellSize = 32
	}
	return &RegionIndex{
		cellSize: cellSize,
		spaces:   make(map[donburi.Entity]*mapSpace),
	}
}

func (ri *RegionIndex) spaceFor(s *Service, m donburi.Entity) *mapSpace {
	data, ok := components.TryGet(s.world, m, components.Map)
	if !ok {
		return nil
	}
	ms, ok := ri.spaces[m]
	if ok && ms.width == data.Width && ms.height == data.Height {
		return ms
	}
	if ok {
		for _, obj := range ms.objects {
			ms.space.Remove(obj)
		}
	}
	ms = &mapSpace{
		space:   resolv.NewSpace(ri.spanCells(data.Width), ri.spanCells(data.Height), ri.cellSize, ri.cellSize),
		width:   data.Width,
		height:  data.Height,
		objects: make(map[donburi.Entity]*resolv.Object),
	}
	ri.spaces[m] = ms
	return ms
}

// spanCells returns a space extent covering [0, length] in whole cells. resolv
// truncates the extent to a cell count, so a partial last cell and the far
// edge itself need the extra cell.
func (ri *RegionIndex) spanCells(length float64) int {
	cells := int(stdmath.Ceil(length/float64(ri.cellSize))) + 1
	return cells * ri.cellSize
}

// Sync brings every grid's broadphase box up to date and drops grids and maps
// that no longer exist.
func (ri *RegionIndex) Sync(s *Service) {
	seen := make(map[donburi.Entity]map[donburi.Entity]bool)

	tags.Grid.Each(s.world, func(entry *donburi.Entry) {
		grid := entry.Entity()
		if !entry.HasComponent(components.Region) {
			return
		}
		m, ok := s.MapOf(s.Parent(grid))
		if !ok {
			return
		}
		ms := ri.spaceFor(s, m)
		if ms == nil {
			return
		}
		if seen[m] == nil {
			seen[m] = make(map[donburi.Entity]bool)
		}
		seen[m][grid] = true

		minX, minY, maxX, maxY := gridBounds(s, m, grid)
		obj, ok := ms.objects[grid]
		if !ok {
			obj = resolv.NewObject(minX, minY, maxX-minX, maxY-minY, tags.ResolvRegion)
			obj.Data = grid
			ms.objects[grid] = obj
			ms.space.Add(obj)
		}
		obj.X, obj.Y = minX, minY
		obj.W, obj.H = maxX-minX, maxY-minY
		obj.Update()
	})

	for m, ms := range ri.spaces {
		if !components.Has(s.world, m, components.Map) {
			for _, obj := range ms.objects {
				ms.space.Remove(obj)
			}
			delete(ri.spaces, m)
			continue
		}
		for grid, obj := range ms.objects {
			if !seen[m][grid] {
				ms.space.Remove(obj)
				delete(ms.objects, grid)
			}
		}
	}
}

// gridBounds returns the map-space bounding box of a grid's rectangle.
func gridBounds(s *Service, m, grid donburi.Entity) (minX, minY, maxX, maxY float64) {
	region := components.Region.Get(s.world.Entry(grid))
	corners := [4]math.Vec2{
		{X: 0, Y: 0},
		{X: region.Width, Y: 0},
		{X: 0, Y: region.Height},
		{X: region.Width, Y: region.Height},
	}
	gridPos, gridRot := s.WorldTransform(grid)
	minX, minY = stdmath.Inf(1), stdmath.Inf(1)
	maxX, maxY = stdmath.Inf(-1), stdmath.Inf(-1)
	for _, c := range corners {
		world := gamemath.AddVec(gridPos, gamemath.RotateVec(c, gridRot))
		p := toMapSpace(s, m, world)
		minX, maxX = stdmath.Min(minX, p.X), stdmath.Max(maxX, p.X)
		minY, maxY = stdmath.Min(minY, p.Y), stdmath.Max(maxY, p.Y)
	}
	return minX, minY, maxX, maxY
}

func toMapSpace(s *Service, m donburi.Entity, world math.Vec2) math.Vec2 {
	mapPos, mapRot := s.WorldTransform(m)
	return gamemath.RotateVec(gamemath.SubVec(world, mapPos), -mapRot)
}

// contains reports whether the world position lies inside grid's rectangle.
func contains(s *Service, grid donburi.Entity, world math.Vec2) bool {
	region, ok := components.TryGet(s.world, grid, components.Region)
	if !ok {
		return false
	}
	gridPos, gridRot := s.WorldTransform(grid)
	local := gamemath.RotateVec(gamemath.SubVec(world, gridPos), -gridRot)
	return local.X >= 0 && local.X <= region.Width && local.Y >= 0 && local.Y <= region.Height
}

// GridAt returns the grid of map m whose rectangle contains the world position.
// Overlapping grids resolve to the smallest one, then the oldest entity.
func (ri *RegionIndex) GridAt(s *Service, m donburi.Entity, world math.Vec2) (donburi.Entity, bool) {
	ms, ok := ri.spaces[m]
	if !ok {
		return donburi.Null, false
	}

	p := toMapSpace(s, m, world)
	probe := resolv.NewObject(p.X, p.Y, 1, 1, tags.ResolvProbe)
	ms.space.Add(probe)
	check := probe.Check(0, 0, tags.ResolvRegion)
	ms.space.Remove(probe)
	if check == nil {
		return donburi.Null, false
	}

	var candidates []donburi.Entity
	for _, obj := range check.ObjectsByTags(tags.ResolvRegion) {
		grid, ok := obj.Data.(donburi.Entity)
		if !ok || !contains(s, grid, world) {
			continue
		}
		candidates = append(candidates, grid)
	}
	if len(candidates) == 0 {
		return donburi.Null, false
	}

	sort.Slice(candidates, func(i, j int) bool {
		ai, aj := area(s, candidates[i]), area(s, candidates[j])
		if ai != aj {
			return ai < aj
		}
		return candidates[i].Id() < candidates[j].Id()
	})
	return candidates[0], true
}

func area(s *Service, grid donburi.Entity) float64 {
	region := components.Region.Get(s.world.Entry(grid))
	return region.Width * region.Height
}
