// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"image/color"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Boundary modes for stars leaving the viewport.
const (
	BoundaryReflect = "reflect"
	BoundaryWrap    = "wrap"
)

// MaxTrailCapacity is the largest trail length a star can carry.
const MaxTrailCapacity = 8

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Population PopulationConfig `yaml:"population"`
	Generator  GeneratorConfig  `yaml:"generator"`
	Galaxy     GalaxyConfig     `yaml:"galaxy"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Boundary   BoundaryConfig   `yaml:"boundary"`
	Trail      TrailConfig      `yaml:"trail"`
	Scroll     ScrollConfig     `yaml:"scroll"`
	Render     RenderConfig     `yaml:"render"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width             int     `yaml:"width"`
	Height            int     `yaml:"height"`
	TargetFPS         int     `yaml:"target_fps"`
	Title             string  `yaml:"title"`
	SignificantResize float64 `yaml:"significant_resize"` // Relative change that re-seeds the population
}

// PopulationConfig holds per-galaxy star counts.
type PopulationConfig struct {
	Arms        int `yaml:"arms"`
	StarsPerArm int `yaml:"stars_per_arm"`
	BulgeStars  int `yaml:"bulge_stars"`
}

// GeneratorConfig holds spiral and attribute parameters for star generation.
type GeneratorConfig struct {
	BaseRadius          float64 `yaml:"base_radius"`
	ArmScale            float64 `yaml:"arm_scale"` // Arm length as a fraction of min(width, height)
	RadiusExponent      float64 `yaml:"radius_exponent"`
	Tightness           float64 `yaml:"tightness"`
	Turns               float64 `yaml:"turns"`
	RadiusJitter        float64 `yaml:"radius_jitter"`
	AngleJitter         float64 `yaml:"angle_jitter"`
	OrbitFactor         float64 `yaml:"orbit_factor"`
	BulgeRadius         float64 `yaml:"bulge_radius"`
	BulgeVelocityJitter float64 `yaml:"bulge_velocity_jitter"`
	SizeMin             float64 `yaml:"size_min"`
	SizeMax             float64 `yaml:"size_max"`
	OpacityMin          float64 `yaml:"opacity_min"`
	OpacityMax          float64 `yaml:"opacity_max"`
	BrightnessMin       float64 `yaml:"brightness_min"`
	BrightnessMax       float64 `yaml:"brightness_max"`
}

// GalaxyConfig holds placement and motion of the two galaxy bodies.
type GalaxyConfig struct {
	CenterLeft   float64 `yaml:"center_left"`  // x fraction of galaxy 1
	CenterRight  float64 `yaml:"center_right"` // x fraction of galaxy 2
	CenterY      float64 `yaml:"center_y"`
	InitialDrift float64 `yaml:"initial_drift"`
	RotationRate float64 `yaml:"rotation_rate"`
	Margin       float64 `yaml:"margin"` // Soft boundary distance from the viewport edge
	Bounce       float64 `yaml:"bounce"` // Velocity scale applied when reflecting off the margin
	MaxSpeed     float64 `yaml:"max_speed"`
}

// PhysicsConfig holds force coefficients and scroll damping.
type PhysicsConfig struct {
	Attraction     float64 `yaml:"attraction"`
	MergeDistance  float64 `yaml:"merge_distance"`
	MergeDamping   float64 `yaml:"merge_damping"`
	HomeStrength   float64 `yaml:"home_strength"`
	HomeExponent   float64 `yaml:"home_exponent"`
	Softening      float64 `yaml:"softening"` // Minimum distance used in force denominators
	TidalNear      float64 `yaml:"tidal_near"`
	TidalFar       float64 `yaml:"tidal_far"`
	TidalDistance  float64 `yaml:"tidal_distance"`
	MaxStarSpeed   float64 `yaml:"max_star_speed"`
	SpeedFloor     float64 `yaml:"speed_floor"`
	SpeedDamping   float64 `yaml:"speed_damping"`
	OpacityFloor   float64 `yaml:"opacity_floor"`
	OpacityDamping float64 `yaml:"opacity_damping"`
}

// BoundaryConfig holds star boundary handling.
type BoundaryConfig struct {
	Mode        string  `yaml:"mode"` // reflect | wrap
	Inset       float64 `yaml:"inset"`
	Restitution float64 `yaml:"restitution"`
}

// TrailConfig holds trail settings.
type TrailConfig struct {
	Capacity int `yaml:"capacity"`
}

// ScrollConfig holds scroll progress settings.
type ScrollConfig struct {
	Range       float64 `yaml:"range"`        // Saturation distance as a fraction of viewport height
	PageHeights float64 `yaml:"page_heights"` // Virtual page length used by the window host
	WheelStep   float64 `yaml:"wheel_step"`
}

// RenderConfig holds colors and alpha factors.
type RenderConfig struct {
	Background          string     `yaml:"background"`
	WashBase            float64    `yaml:"wash_base"`
	WashScroll          float64    `yaml:"wash_scroll"`
	TrailAlpha          float64    `yaml:"trail_alpha"`
	GlowScale           float64    `yaml:"glow_scale"`
	GlowAlpha           float64    `yaml:"glow_alpha"`
	HighlightBrightness float64    `yaml:"highlight_brightness"`
	Gradient            []string   `yaml:"gradient"`
	Palettes            [][]string `yaml:"palettes"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow int `yaml:"stats_window"` // Ticks per stats window
	PerfWindow  int `yaml:"perf_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	StarsPerGalaxy int
	TotalStars     int
	Background     color.RGBA
	Gradient       []color.RGBA
	Palettes       [2][]color.RGBA
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges that the simulation relies on.
func (c *Config) Validate() error {
	switch {
	case c.Population.Arms < 1:
		return fmt.Errorf("population.arms must be at least 1, got %d", c.Population.Arms)
	case c.Population.StarsPerArm < 0 || c.Population.BulgeStars < 0:
		return fmt.Errorf("population counts must not be negative")
	case c.Population.Arms*c.Population.StarsPerArm+c.Population.BulgeStars == 0:
		return fmt.Errorf("population must contain at least one star per galaxy")
	case c.Generator.BaseRadius <= 0:
		return fmt.Errorf("generator.base_radius must be positive, got %g", c.Generator.BaseRadius)
	case c.Generator.SizeMin <= 0 || c.Generator.SizeMax < c.Generator.SizeMin:
		return fmt.Errorf("generator size range [%g, %g] is invalid", c.Generator.SizeMin, c.Generator.SizeMax)
	case c.Generator.OpacityMin <= 0 || c.Generator.OpacityMax > 1 || c.Generator.OpacityMax < c.Generator.OpacityMin:
		return fmt.Errorf("generator opacity range [%g, %g] must lie in (0, 1]", c.Generator.OpacityMin, c.Generator.OpacityMax)
	case c.Generator.BrightnessMin < 0 || c.Generator.BrightnessMax > 1 || c.Generator.BrightnessMax < c.Generator.BrightnessMin:
		return fmt.Errorf("generator brightness range [%g, %g] must lie in [0, 1]", c.Generator.BrightnessMin, c.Generator.BrightnessMax)
	case c.Physics.Softening <= 0:
		return fmt.Errorf("physics.softening must be positive, got %g", c.Physics.Softening)
	case c.Physics.MergeDamping < 0 || c.Physics.MergeDamping >= 1:
		return fmt.Errorf("physics.merge_damping must be in [0, 1), got %g", c.Physics.MergeDamping)
	case c.Physics.SpeedFloor <= 0 || c.Physics.SpeedFloor > 1:
		return fmt.Errorf("physics.speed_floor must be in (0, 1], got %g", c.Physics.SpeedFloor)
	case c.Physics.OpacityFloor <= 0 || c.Physics.OpacityFloor > 1:
		return fmt.Errorf("physics.opacity_floor must be in (0, 1], got %g", c.Physics.OpacityFloor)
	case c.Boundary.Mode != BoundaryReflect && c.Boundary.Mode != BoundaryWrap:
		return fmt.Errorf("boundary.mode must be %q or %q, got %q", BoundaryReflect, BoundaryWrap, c.Boundary.Mode)
	case c.Boundary.Inset < 0:
		return fmt.Errorf("boundary.inset must not be negative, got %g", c.Boundary.Inset)
	case c.Boundary.Restitution < 0 || c.Boundary.Restitution >= 1:
		return fmt.Errorf("boundary.restitution must be in [0, 1), got %g", c.Boundary.Restitution)
	case c.Trail.Capacity < 1 || c.Trail.Capacity > MaxTrailCapacity:
		return fmt.Errorf("trail.capacity must be in [1, %d], got %d", MaxTrailCapacity, c.Trail.Capacity)
	case c.Scroll.Range <= 0:
		return fmt.Errorf("scroll.range must be positive, got %g", c.Scroll.Range)
	case len(c.Render.Palettes) != 2:
		return fmt.Errorf("render.palettes needs one palette per galaxy, got %d", len(c.Render.Palettes))
	}
	for i, p := range c.Render.Palettes {
		if len(p) < 2 {
			return fmt.Errorf("render.palettes[%d] needs at least 2 colors, got %d", i, len(p))
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	c.Derived.StarsPerGalaxy = c.Population.Arms*c.Population.StarsPerArm + c.Population.BulgeStars
	c.Derived.TotalStars = 2 * c.Derived.StarsPerGalaxy

	bg, err := parseHex(c.Render.Background)
	if err != nil {
		return fmt.Errorf("render.background: %w", err)
	}
	c.Derived.Background = bg

	c.Derived.Gradient = c.Derived.Gradient[:0]
	for i, h := range c.Render.Gradient {
		col, err := parseHex(h)
		if err != nil {
			return fmt.Errorf("render.gradient[%d]: %w", i, err)
		}
		c.Derived.Gradient = append(c.Derived.Gradient, col)
	}

	for g, palette := range c.Render.Palettes {
		colors := make([]color.RGBA, 0, len(palette))
		for i, h := range palette {
			col, err := parseHex(h)
			if err != nil {
				return fmt.Errorf("render.palettes[%d][%d]: %w", g, i, err)
			}
			colors = append(colors, col)
		}
		c.Derived.Palettes[g] = colors
	}
	return nil
}

func parseHex(h string) (color.RGBA, error) {
	col, err := colorful.Hex(h)
	if err != nil {
		return color.RGBA{}, err
	}
	r, g, b := col.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
