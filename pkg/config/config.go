// Package config holds the tunable settings of a QuillCAD session. Every
// field has a default, and an optional TOML file overrides any subset.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Kernel backend names.
const (
	KernelMesh = "mesh"
	KernelSDFX = "sdfx"
)

var (
	ErrTolerance = errors.New("config: tolerance must be positive")
	ErrGridStep  = errors.New("config: grid.step must be positive")
	ErrGridSize  = errors.New("config: grid.size must not be negative")
	ErrSegments  = errors.New("config: cylinder_segments must be at least 3")
	ErrKernel    = errors.New("config: unknown kernel")
)

// Grid describes the ground grid drawn while sketching.
type Grid struct {
	Size float64 `toml:"size" json:"size"`
	Step float64 `toml:"step" json:"step"`
}

// Colors are hex strings ("#RRGGBB") for the overlay.
type Colors struct {
	Selected string `toml:"selected" json:"selected"`
	Normal   string `toml:"normal" json:"normal"`
	Preview  string `toml:"preview" json:"preview"`
	Grid     string `toml:"grid" json:"grid"`
	AxisX    string `toml:"axis_x" json:"axisX"`
	AxisZ    string `toml:"axis_z" json:"axisZ"`
}

// Config is the full session configuration.
type Config struct {
	Tolerance        float64 `toml:"tolerance" json:"tolerance"`
	ExtrudeDistance  float64 `toml:"extrude_distance" json:"extrudeDistance"`
	CylinderSegments int     `toml:"cylinder_segments" json:"cylinderSegments"`
	MeshCells        int     `toml:"mesh_cells" json:"meshCells"`
	Kernel           string  `toml:"kernel" json:"kernel"`
	Grid             Grid    `toml:"grid" json:"grid"`
	Colors           Colors  `toml:"colors" json:"colors"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Tolerance:        0.1,
		ExtrudeDistance:  0,
		CylinderSegments: 32,
		MeshCells:        200,
		Kernel:           KernelMesh,
		Grid:             Grid{Size: 10, Step: 1},
		Colors: Colors{
			Selected: "#0000FF",
			Normal:   "#FFFFFF",
			Preview:  "#FFFF00",
			Grid:     "#808080",
			AxisX:    "#FF0000",
			AxisZ:    "#0000FF",
		},
	}
}

// Load reads a TOML file over the defaults. Keys the file does not set
// keep their default; unknown keys are an error so typos do not pass
// silently. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("config: %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML text over the defaults.
func Parse(text string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(text, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config: unknown key %s", undecoded[0])
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings that would otherwise break selection or
// tessellation.
func (c Config) Validate() error {
	var errs []error
	if c.Tolerance <= 0 {
		errs = append(errs, ErrTolerance)
	}
	if c.Grid.Step <= 0 {
		errs = append(errs, ErrGridStep)
	}
	if c.Grid.Size < 0 {
		errs = append(errs, ErrGridSize)
	}
	if c.CylinderSegments < 3 {
		errs = append(errs, ErrSegments)
	}
	switch c.Kernel {
	case KernelMesh, KernelSDFX:
	default:
		errs = append(errs, fmt.Errorf("%w %q", ErrKernel, c.Kernel))
	}
	return errors.Join(errs...)
}
