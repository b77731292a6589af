package config

import (
	"image/color"

	"github.com/yohamta/donburi/ecs"
)

// Default is the only render layer.
const Default ecs.LayerID = 0

// SpectatorConfig contains observer movement configuration
type SpectatorConfig struct {
	// Fallback speed when the observer has no MovementSpeedModifier (units/second)
	DefaultSpeed float64 `yaml:"default_speed"`
	// Speeds given to freshly spawned ghosts
	GhostWalkSpeed   float64 `yaml:"ghost_walk_speed"`
	GhostSprintSpeed float64 `yaml:"ghost_sprint_speed"`
	// Longest frame time fed to the resolver, in seconds. Guards against
	// huge jumps after the window was suspended.
	MaxFrameTime float64 `yaml:"max_frame_time"`
}

// CameraConfig contains camera follow configuration
type CameraConfig struct {
	FollowSmoothing float64 `yaml:"follow_smoothing"`
	Zoom            float64 `yaml:"zoom"`
}

// RegionConfig contains grid/broadphase configuration
type RegionConfig struct {
	CellSize    int     `yaml:"cell_size"`
	SpinSeconds float32 `yaml:"spin_seconds"` // duration of one half swing
}

// LoggingConfig contains logger configuration
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// DebugConfig contains debug rendering options
type DebugConfig struct {
	DrawRegions bool `yaml:"draw_regions"`
	ShowHUD     bool `yaml:"show_hud"`
}

// Config holds general window configuration
type Config struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Global configuration instances
var C *Config
var Spectator SpectatorConfig
var Camera CameraConfig
var Region RegionConfig
var Logging LoggingConfig
var Debug DebugConfig

// Shared RGBA color constants
var (
	White     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Yellow    = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	Green     = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	LightBlue = color.RGBA{R: 100, G: 180, B: 255, A: 255}
	DarkBlue  = color.RGBA{R: 60, G: 100, B: 160, A: 255}
)

func init() {
	C = &Config{
		Width:  640,
		Height: 360,
	}

	Spectator = SpectatorConfig{
		DefaultSpeed:     12.0,
		GhostWalkSpeed:   8.0,
		GhostSprintSpeed: 12.0,
		MaxFrameTime:     0.25,
	}

	Camera = CameraConfig{
		FollowSmoothing: 0.2,
		Zoom:            1.0,
	}

	Region = RegionConfig{
		CellSize:    32,
		SpinSeconds: 4,
	}

	Logging = LoggingConfig{
		Level: "info",
	}

	Debug = DebugConfig{
		DrawRegions: true,
		ShowHUD:     true,
	}
}
