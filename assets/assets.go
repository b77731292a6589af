package assets

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/automoto/doomerang-spectator/shared/leveldata"
)

const mapsDir = "maps"

var (
	//go:embed all:maps
	mapFS embed.FS
)

// MapLoader reads map layouts from the embedded assets or any other fs.FS.
type MapLoader struct {
	fsys fs.FS
	dir  string
}

// NewMapLoader returns a loader over the embedded maps.
func NewMapLoader() *MapLoader {
	return &MapLoader{fsys: mapFS, dir: mapsDir}
}

// NewMapLoaderFS returns a loader over dir in fsys.
func NewMapLoaderFS(fsys fs.FS, dir string) *MapLoader {
	return &MapLoader{fsys: fsys, dir: dir}
}

// LoadAll returns every layout sorted by name.
func (l *MapLoader) LoadAll() ([]*leveldata.MapLayout, error) {
	return leveldata.LoadAllMaps(l.fsys, l.dir)
}

// Load returns the layout called name, or the first layout when name is empty.
func (l *MapLoader) Load(name string) (*leveldata.MapLayout, error) {
	layouts, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	if name == "" {
		return layouts[0], nil
	}
	for _, layout := range layouts {
		if layout.Name == name {
			return layout, nil
		}
	}
	return nil, fmt.Errorf("map %q not found in %s", name, l.dir)
}
