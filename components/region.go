package components

import (
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

// MapData marks a top-level coordinate space. Maps have no parent.
type MapData struct {
	ID     int
	Name   string
	Width  float64
	Height float64
}

var Map = donburi.NewComponentType[MapData]()

// RegionData is a grid: a rectangular sub-space of a map with its own local frame.
// The rectangle spans [0, Width] x [0, Height] in grid-local coordinates.
type RegionData struct {
	Name   string
	Width  float64
	Height float64
}

var Region = donburi.NewComponentType[RegionData]()

// RegionSpinData swings a grid's local rotation back and forth around BaseRotation.
// Start runs once from the placed rotation; Out and Back then alternate.
type RegionSpinData struct {
	BaseRotation float64
	Start        *gween.Tween
	Out          *gween.Tween
	Back         *gween.Tween
	Started      bool
	Returning    bool
}

var RegionSpin = donburi.NewComponentType[RegionSpinData]()
