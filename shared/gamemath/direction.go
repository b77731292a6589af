package gamemath

import (
	"math"
	"strings"

	dmath "github.com/yohamta/donburi/features/math"
)

// DirectionFlag is a set of held cardinal directions.
type DirectionFlag uint8

const DirectionNone DirectionFlag = 0

const (
	DirectionSouth DirectionFlag = 1 << iota
	DirectionEast
	DirectionNorth
	DirectionWest
)

// Effective resolves opposite-axis conflicts: North beats South and East beats West.
// Opposite keys held together never cancel out.
func (d DirectionFlag) Effective() DirectionFlag {
	eff := d
	if d&DirectionNorth != 0 {
		eff &^= DirectionSouth
	}
	if d&DirectionEast != 0 {
		eff &^= DirectionWest
	}
	return eff
}

// Angle returns the heading of the effective direction in radians,
// counter-clockwise from East. Diagonals sit halfway between their two cardinals.
func (d DirectionFlag) Angle() (float64, bool) {
	v, ok := d.vec()
	if !ok {
		return 0, false
	}
	return math.Atan2(v.Y, v.X), true
}

// Vec returns the unit vector for the effective direction, or the zero vector for DirectionNone.
func (d DirectionFlag) Vec() dmath.Vec2 {
	v, ok := d.vec()
	if !ok {
		return dmath.Vec2{}
	}
	return v
}

func (d DirectionFlag) vec() (dmath.Vec2, bool) {
	eff := d.Effective()
	var x, y float64
	if eff&DirectionEast != 0 {
		x++
	}
	if eff&DirectionWest != 0 {
		x--
	}
	if eff&DirectionNorth != 0 {
		y++
	}
	if eff&DirectionSouth != 0 {
		y--
	}
	l := math.Hypot(x, y)
	if l == 0 {
		return dmath.Vec2{}, false
	}
	return dmath.Vec2{X: x / l, Y: y / l}, true
}

func (d DirectionFlag) String() string {
	if d == DirectionNone {
		return "None"
	}
	var parts []string
	for _, f := range []struct {
		flag DirectionFlag
		name string
	}{
		{DirectionNorth, "North"},
		{DirectionSouth, "South"},
		{DirectionEast, "East"},
		{DirectionWest, "West"},
	} {
		if d&f.flag != 0 {
			parts = append(parts, f.name)
		}
	}
	return strings.Join(parts, "|")
}
