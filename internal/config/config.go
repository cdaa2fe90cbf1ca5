// Package config holds runtime settings with sane defaults and an
// optional YAML override file.
package config

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Settings tunes the engine. Keys absent from the YAML file keep
// their defaults; a zero or negative mesh_workers or light_budget
// also falls back to the default.
type Settings struct {
	WindowWidth  int    `yaml:"window_width"`
	WindowHeight int    `yaml:"window_height"`
	WindowTitle  string `yaml:"window_title"`

	// Resident world grid, in chunk columns per side.
	WorldChunks int   `yaml:"world_chunks"`
	WorldSeed   int64 `yaml:"world_seed"`

	// Mesher pool sizing. Zero workers means one per CPU.
	MeshWorkers   int `yaml:"mesh_workers"`
	MeshQueueSize int `yaml:"mesh_queue_size"`

	// Queue pops the initial sky fill may perform per tick.
	LightBudget int `yaml:"light_budget"`

	MouseSensitivity float64 `yaml:"mouse_sensitivity"`
	FOV              float64 `yaml:"fov"`

	// Emit the water top face twice, once per winding, so the surface
	// is visible from underneath.
	DoubleSidedWaterTop bool `yaml:"double_sided_water_top"`

	AtlasPath string `yaml:"atlas_path"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		WindowWidth:      1280,
		WindowHeight:     720,
		WindowTitle:      "sandvox",
		WorldChunks:      24,
		WorldSeed:        1337,
		MeshWorkers:      runtime.NumCPU(),
		MeshQueueSize:    1024,
		LightBudget:      20000,
		MouseSensitivity: 0.1,
		FOV:              60,
		AtlasPath:        "assets/texture_atlas.png",
	}
}

// Load reads settings from path, layered over the defaults. A missing
// file is not an error; a malformed one is.
func Load(path string) (Settings, error) {
	s := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, err
	}
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return s, fmt.Errorf("%s: %w", path, err)
	}
	if s.MeshWorkers <= 0 {
		s.MeshWorkers = runtime.NumCPU()
	}
	if s.LightBudget <= 0 {
		s.LightBudget = Default().LightBudget
	}
	return s, nil
}
