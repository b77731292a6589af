package systems

import (
	"fmt"
	"image/color"

	"github.com/automoto/doomerang-spectator/components"
	cfg "github.com/automoto/doomerang-spectator/config"
	"github.com/automoto/doomerang-spectator/hierarchy"
	"github.com/automoto/doomerang-spectator/shared/gamemath"
	"github.com/automoto/doomerang-spectator/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/features/math"
)

const markerSize = 6

// view converts y-up world positions to screen pixels around the camera.
type view struct {
	camera math.Vec2
	zoom   float64
	halfW  float64
	halfH  float64
}

func newView(e *ecs.ECS, screen *ebiten.Image) (view, bool) {
	cameraEntry, ok := components.Camera.First(e.World)
	if !ok {
		return view{}, false
	}
	camera := components.Camera.Get(cameraEntry)
	zoom := camera.Zoom
	if zoom == 0 {
		zoom = 1.0
	}
	return view{
		camera: camera.Position,
		zoom:   zoom,
		halfW:  float64(screen.Bounds().Dx()) / 2,
		halfH:  float64(screen.Bounds().Dy()) / 2,
	}, true
}

func (v view) project(p math.Vec2) (float32, float32) {
	x := (p.X-v.camera.X)*v.zoom + v.halfW
	y := v.halfH - (p.Y-v.camera.Y)*v.zoom
	return float32(x), float32(y)
}

func (v view) line(screen *ebiten.Image, a, b math.Vec2, c color.Color) {
	x0, y0 := v.project(a)
	x1, y1 := v.project(b)
	vector.StrokeLine(screen, x0, y0, x1, y1, 1, c, false)
}

// NewRegionRenderer draws grid outlines.
func NewRegionRenderer(xform *hierarchy.Service) func(*ecs.ECS, *ebiten.Image) {
	return func(e *ecs.ECS, screen *ebiten.Image) {
		if !cfg.Debug.DrawRegions {
			return
		}
		v, ok := newView(e, screen)
		if !ok {
			return
		}
		tags.Grid.Each(e.World, func(entry *donburi.Entry) {
			if !entry.HasComponent(components.Region) {
				return
			}
			region := components.Region.Get(entry)
			pos, rot := xform.WorldTransform(entry.Entity())
			corner := func(x, y float64) math.Vec2 {
				return gamemath.AddVec(pos, gamemath.RotateVec(math.Vec2{X: x, Y: y}, rot))
			}
			c := [4]math.Vec2{
				corner(0, 0),
				corner(region.Width, 0),
				corner(region.Width, region.Height),
				corner(0, region.Height),
			}
			for i := range c {
				v.line(screen, c[i], c[(i+1)%4], cfg.DarkBlue)
			}
		})
	}
}

// NewEntityRenderer draws recorded entities and ghosts as markers with a heading tick.
func NewEntityRenderer(xform *hierarchy.Service) func(*ecs.ECS, *ebiten.Image) {
	return func(e *ecs.ECS, screen *ebiten.Image) {
		v, ok := newView(e, screen)
		if !ok {
			return
		}
		draw := func(entry *donburi.Entry, c color.Color) {
			if !entry.HasComponent(components.Transform) {
				return
			}
			pos, rot := xform.WorldTransform(entry.Entity())
			x, y := v.project(pos)
			vector.FillRect(screen, x-markerSize/2, y-markerSize/2, markerSize, markerSize, c, false)
			heading := gamemath.AddVec(pos, gamemath.RotateVec(math.Vec2{X: markerSize * 2 / v.zoom}, rot))
			v.line(screen, pos, heading, cfg.White)
		}
		controlled := donburi.Null
		if lp, ok := components.LocalPlayer.First(e.World); ok {
			controlled = components.LocalPlayer.Get(lp).ControlledEntity
		}
		tags.Recorded.Each(e.World, func(entry *donburi.Entry) {
			if entry.Entity() == controlled {
				draw(entry, cfg.Green)
				return
			}
			draw(entry, cfg.Yellow)
		})
		tags.Spectator.Each(e.World, func(entry *donburi.Entry) {
			draw(entry, cfg.LightBlue)
		})
	}
}

// NewHUDRenderer prints the held directions and what is being controlled.
func NewHUDRenderer(spectator *ReplaySpectatorSystem, playback PlaybackSession) func(*ecs.ECS, *ebiten.Image) {
	return func(e *ecs.ECS, screen *ebiten.Image) {
		if !cfg.Debug.ShowHUD {
			return
		}
		controlling := "nothing"
		if entry, ok := components.LocalPlayer.First(e.World); ok {
			target := components.LocalPlayer.Get(entry).ControlledEntity
			switch {
			case components.Has(e.World, target, tags.Spectator):
				controlling = "ghost"
			case components.Has(e.World, target, tags.Recorded):
				controlling = "recorded entity"
			}
		}
		ebitenutil.DebugPrint(screen, fmt.Sprintf("playback: %v\ndirection: %v\ncontrolling: %s",
			playback.Active(), spectator.Direction, controlling))
	}
}
