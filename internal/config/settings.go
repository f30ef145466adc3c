package config

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid config")

const (
	// MaxInstances caps the grid's total cube count
	MaxInstances = 1_000_000
	// MaxGridScale caps the cube edge length relative to the unit lattice
	MaxGridScale = 2
)

type Grid struct {
	X        int        `yaml:"x"`
	Y        int        `yaml:"y"`
	Z        int        `yaml:"z"`
	Scale    float32    `yaml:"scale"`
	Offset   [3]float32 `yaml:"offset"`
	Gradient float32    `yaml:"gradient"` // 0 disables per-cube tint
}

type Camera struct {
	Position         [3]float32 `yaml:"position"`
	LookAt           [3]float32 `yaml:"look_at"`
	MoveSpeed        float32    `yaml:"move_speed"` // units per tick
	TurnSpeed        float64    `yaml:"turn_speed"` // degrees per tick
	ColliderRadius   float32    `yaml:"collider_radius"`
	Horizontal       bool       `yaml:"horizontal_push"`
	MouseLook        bool       `yaml:"mouse_look"`
	MouseSensitivity float64    `yaml:"mouse_sensitivity"`
}

type Window struct {
	Width        int    `yaml:"width"`
	Height       int    `yaml:"height"`
	Title        string `yaml:"title"`
	CursorHidden bool   `yaml:"cursor_hidden"`
	Wireframe    bool   `yaml:"wireframe"`
	VSync        bool   `yaml:"vsync"`
}

type Render struct {
	FOV          float32    `yaml:"fov"`
	Near         float32    `yaml:"near"`
	Far          float32    `yaml:"far"`
	FPSLimit     int        `yaml:"fps_limit"`
	ShowAxesGrid bool       `yaml:"show_axes_grid"`
	ShowHUD      bool       `yaml:"show_hud"`
	Background   [3]float32 `yaml:"background"`
}

type Log struct {
	Debug bool `yaml:"debug"`
}

// Settings is the full startup configuration
type Settings struct {
	Variant string `yaml:"variant"`
	Grid    Grid   `yaml:"grid"`
	Camera  Camera `yaml:"camera"`
	Window  Window `yaml:"window"`
	Render  Render `yaml:"render"`
	Log     Log    `yaml:"log"`
}

var presets = map[string]func() Settings{
	"classic": classic,
	"tower":   tower,
	"rainbow": rainbow,
}

// Presets lists the built-in variant names
func Presets() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Preset returns the built-in settings for name
func Preset(name string) (Settings, error) {
	fn, ok := presets[name]
	if !ok {
		return Settings{}, fmt.Errorf("%w: unknown variant %q (have %v)", ErrInvalid, name, Presets())
	}
	return fn(), nil
}

// classic is the 10x10x10 grid with 1 degree per tick turning
func classic() Settings {
	return Settings{
		Variant: "classic",
		Grid: Grid{
			X: 10, Y: 10, Z: 10,
			Scale:  0.5,
			Offset: [3]float32{4.5, 4.5, 0},
		},
		Camera: Camera{
			Position:         [3]float32{0, -20, 5},
			LookAt:           [3]float32{0, 0, 0},
			MoveSpeed:        0.1,
			TurnSpeed:        1,
			ColliderRadius:   1,
			Horizontal:       true,
			MouseSensitivity: 0.1,
		},
		Window: Window{
			Width:        900,
			Height:       600,
			Title:        "cubefield",
			CursorHidden: true,
			Wireframe:    true,
		},
		Render: Render{
			FOV:        45,
			Near:       0.1,
			Far:        1000,
			FPSLimit:   60,
			ShowHUD:    true,
			Background: [3]float32{0.5, 0.5, 0.5},
		},
	}
}

// tower stacks 100 layers and turns 5 degrees per tick
func tower() Settings {
	s := classic()
	s.Variant = "tower"
	s.Grid.Z = 100
	s.Camera.TurnSpeed = 5
	return s
}

// rainbow is the 30^3 depth-coloured grid with mouse look and a floor grid
func rainbow() Settings {
	s := classic()
	s.Variant = "rainbow"
	s.Grid = Grid{
		X: 30, Y: 30, Z: 30,
		Scale:    0.5,
		Offset:   [3]float32{9.5, 9.5, 9.5},
		Gradient: 20,
	}
	s.Camera.Position = [3]float32{0, -20, 0}
	s.Camera.LookAt = [3]float32{0, 0, 0}
	s.Camera.MoveSpeed = 0.2
	s.Camera.MouseLook = true
	s.Window.Title = "3D Cubes"
	s.Window.Wireframe = false
	s.Render.Far = 100
	s.Render.ShowAxesGrid = true
	s.Render.Background = [3]float32{0, 0, 0}
	return s
}

// Load reads a YAML file over the preset named by its variant field (or
// fallback when the file names none). A missing file yields the fallback preset.
func Load(path, fallback string) (Settings, error) {
	if path == "" {
		return Preset(fallback)
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Preset(fallback)
	}
	if err != nil {
		return Settings{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data, fallback)
}

// Parse decodes YAML over a preset. Fields absent from data keep preset values.
func Parse(data []byte, fallback string) (Settings, error) {
	var head struct {
		Variant string `yaml:"variant"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return Settings{}, fmt.Errorf("parse config: %w", err)
	}
	variant := fallback
	if head.Variant != "" {
		variant = head.Variant
	}
	s, err := Preset(variant)
	if err != nil {
		return Settings{}, err
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parse config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate rejects settings the program cannot run with. Zero grid axes are
// allowed and produce an empty scene.
func (s Settings) Validate() error {
	switch {
	case s.Grid.X < 0 || s.Grid.Y < 0 || s.Grid.Z < 0:
		return fmt.Errorf("%w: grid extents must be non-negative, got %dx%dx%d", ErrInvalid, s.Grid.X, s.Grid.Y, s.Grid.Z)
	case s.Grid.X > MaxInstances || s.Grid.Y > MaxInstances || s.Grid.Z > MaxInstances ||
		s.Grid.X*s.Grid.Y > MaxInstances || s.Grid.X*s.Grid.Y*s.Grid.Z > MaxInstances:
		return fmt.Errorf("%w: grid %dx%dx%d exceeds %d cubes", ErrInvalid, s.Grid.X, s.Grid.Y, s.Grid.Z, MaxInstances)
	case !(s.Grid.Scale > 0) || s.Grid.Scale > MaxGridScale:
		return fmt.Errorf("%w: grid scale %v outside (0, %v]", ErrInvalid, s.Grid.Scale, MaxGridScale)
	case s.Camera.MoveSpeed < 0 || s.Camera.TurnSpeed < 0:
		return fmt.Errorf("%w: camera speeds must be non-negative", ErrInvalid)
	case s.Camera.ColliderRadius < 0:
		return fmt.Errorf("%w: collider radius must be non-negative", ErrInvalid)
	case s.Window.Width <= 0 || s.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, s.Window.Width, s.Window.Height)
	case s.Render.Near <= 0 || s.Render.Far <= s.Render.Near:
		return fmt.Errorf("%w: clip planes near=%v far=%v", ErrInvalid, s.Render.Near, s.Render.Far)
	case s.Render.FOV <= 0 || s.Render.FOV >= 180:
		return fmt.Errorf("%w: fov %v", ErrInvalid, s.Render.FOV)
	}
	return nil
}

// Marshal renders settings back to YAML
func (s Settings) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}
