package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Overrides is the on-disk shape of a configuration file. Absent sections keep
// the compiled-in defaults.
type Overrides struct {
	Window    *Config          `yaml:"window"`
	Spectator *SpectatorConfig `yaml:"spectator"`
	Camera    *CameraConfig    `yaml:"camera"`
	Region    *RegionConfig    `yaml:"region"`
	Logging   *LoggingConfig   `yaml:"logging"`
	Debug     *DebugConfig     `yaml:"debug"`
}

// LoadOverrides reads a YAML file and applies it on top of the global configuration.
func LoadOverrides(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return ApplyOverrides(data)
}

// ApplyOverrides decodes YAML overrides and applies them to the globals.
// Sections are seeded with the current values, so partial sections only change
// the fields they name.
func ApplyOverrides(data []byte) error {
	window := *C
	spectator := Spectator
	camera := Camera
	region := Region
	logging := Logging
	debug := Debug

	o := Overrides{
		Window:    &window,
		Spectator: &spectator,
		Camera:    &camera,
		Region:    &region,
		Logging:   &logging,
		Debug:     &debug,
	}
	if err := yaml.Unmarshal(data, &o); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if spectator.DefaultSpeed < 0 {
		return fmt.Errorf("spectator.default_speed must not be negative, got %v", spectator.DefaultSpeed)
	}
	if region.CellSize <= 0 {
		return fmt.Errorf("region.cell_size must be positive, got %d", region.CellSize)
	}

	C = &window
	Spectator = spectator
	Camera = camera
	Region = region
	Logging = logging
	Debug = debug
	return nil
}
