// Package leveldata provides TMX map parsing for replay playback.
// It has no dependencies on ebitengine, donburi, or resolv; pure data only.
//
// Coordinates are converted from Tiled's y-down pixel space to the y-up world
// space the spectator moves in: North is +Y.
package leveldata

// MapLayout holds everything the spectator needs from a TMX map.
type MapLayout struct {
	Name     string
	Width    float64
	Height   float64
	Regions  []RegionRect
	Recorded []SpawnPoint
}

// RegionRect is a grid placed on the map. X, Y is the grid's local origin (its
// bottom-left corner before rotation) and Rotation is counter-clockwise radians.
type RegionRect struct {
	Name     string
	X, Y     float64
	W, H     float64
	Rotation float64
	Spin     float64 // swing amplitude in radians, 0 = static
}

// SpawnPoint represents a recorded entity's starting location.
type SpawnPoint struct {
	Name  string
	X, Y  float64
	Index int
}
