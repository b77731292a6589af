package leveldata

import (
	"fmt"
	"io/fs"
	stdmath "math"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/lafriks/go-tiled"
)

const (
	regionsGroup  = "Regions"
	recordedGroup = "Recorded"
)

// LoadMapLayout parses a TMX file and returns its regions and recorded entity
// spawns. It takes an fs.FS so callers can pass embed.FS or os.DirFS.
func LoadMapLayout(fsys fs.FS, tmxPath string) (*MapLayout, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	layout := &MapLayout{
		Name:   strings.TrimSuffix(path.Base(tmxPath), ".tmx"),
		Width:  float64(levelMap.Width * levelMap.TileWidth),
		Height: float64(levelMap.Height * levelMap.TileHeight),
	}

	for _, og := range levelMap.ObjectGroups {
		switch og.Name {
		case regionsGroup:
			for _, o := range og.Objects {
				region, err := toRegion(layout.Height, o)
				if err != nil {
					return nil, fmt.Errorf("%s: region %q: %w", tmxPath, o.Name, err)
				}
				layout.Regions = append(layout.Regions, region)
			}
		case recordedGroup:
			for _, o := range og.Objects {
				layout.Recorded = append(layout.Recorded, SpawnPoint{
					Name:  o.Name,
					X:     o.X,
					Y:     layout.Height - o.Y,
					Index: o.Properties.GetInt("index"),
				})
			}
		}
	}

	sort.SliceStable(layout.Recorded, func(i, j int) bool {
		return layout.Recorded[i].Index < layout.Recorded[j].Index
	})

	return layout, nil
}

// toRegion converts a Tiled rectangle, rotated clockwise around its top-left
// corner in y-down space, into a y-up grid origin and rotation.
func toRegion(mapHeight float64, o *tiled.Object) (RegionRect, error) {
	if o.Width <= 0 || o.Height <= 0 {
		return RegionRect{}, fmt.Errorf("needs a positive size, got %vx%v", o.Width, o.Height)
	}

	var spin float64
	if raw := o.Properties.GetString("spin"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return RegionRect{}, fmt.Errorf("parse spin %q: %w", raw, err)
		}
		spin = v
	}

	rot := -o.Rotation * stdmath.Pi / 180
	sin, cos := stdmath.Sincos(rot)
	// Top-left corner in y-up space, then step down the rotated left edge.
	topX, topY := o.X, mapHeight-o.Y
	originX := topX + o.Height*sin
	originY := topY - o.Height*cos

	return RegionRect{
		Name:     o.Name,
		X:        originX,
		Y:        originY,
		W:        o.Width,
		H:        o.Height,
		Rotation: rot,
		Spin:     spin,
	}, nil
}

// LoadAllMaps discovers all .tmx files in dir within fsys and returns their
// layouts sorted by name.
func LoadAllMaps(fsys fs.FS, dir string) ([]*MapLayout, error) {
	pattern := path.Join(dir, "*.tmx")
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no .tmx files found in %s", dir)
	}

	layouts := make([]*MapLayout, 0, len(matches))
	for _, match := range matches {
		layout, err := LoadMapLayout(fsys, match)
		if err != nil {
			return nil, err
		}
		layouts = append(layouts, layout)
	}

	sort.Slice(layouts, func(i, j int) bool {
		return layouts[i].Name < layouts[j].Name
	})
	return layouts, nil
}
