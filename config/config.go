// Package config provides configuration loading for the aquarium.
//
// Configuration is layered: the embedded defaults.yaml is read first, an
// optional user file is merged on top, and FISHTANK_* environment variables
// override both. Validate then clamps or rejects out-of-range values.
package config

import (
	_ "embed"
	"fmt"
	"image/color"
	"math"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/fishtank/fish"
	"github.com/pthm-cable/fishtank/food"
	"github.com/pthm-cable/fishtank/scene"
	"github.com/pthm-cable/fishtank/steering"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// EnvPrefix prefixes every environment override.
const EnvPrefix = "FISHTANK_"

// Config holds all aquarium configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen" envPrefix:"SCREEN_"`
	Scene      SceneConfig      `yaml:"scene" envPrefix:"SCENE_"`
	Fish       FishConfig       `yaml:"fish" envPrefix:"FISH_"`
	Steering   SteeringConfig   `yaml:"steering" envPrefix:"STEERING_"`
	Food       FoodConfig       `yaml:"food" envPrefix:"FOOD_"`
	Background BackgroundConfig `yaml:"background" envPrefix:"BACKGROUND_"`
	Telemetry  TelemetryConfig  `yaml:"telemetry" envPrefix:"TELEMETRY_"`
	Autofeed   AutofeedConfig   `yaml:"autofeed" envPrefix:"AUTOFEED_"`
	Audio      AudioConfig      `yaml:"audio" envPrefix:"AUDIO_"`
}

// RGB is an opaque color written as [r, g, b] in YAML.
type RGB [3]uint8

// Opaque returns the color with full alpha.
func (c RGB) Opaque() color.RGBA {
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: 255}
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width" env:"WIDTH"`
	Height    int    `yaml:"height" env:"HEIGHT"`
	TargetFPS int    `yaml:"target_fps" env:"TARGET_FPS"`
	Margin    int    `yaml:"margin" env:"MARGIN"` // canvas extends this far past the window
	Title     string `yaml:"title" env:"TITLE"`
}

// SceneConfig holds population settings.
type SceneConfig struct {
	Creatures int `yaml:"creatures" env:"CREATURES"`
	MaxFood   int `yaml:"max_food" env:"MAX_FOOD"` // 0 = unlimited
}

// FishConfig holds fish proportions, in unscaled units.
type FishConfig struct {
	JointCount      int       `yaml:"joint_count" env:"JOINT_COUNT"`
	LinkSize        float64   `yaml:"link_size" env:"LINK_SIZE"`
	AngleConstraint float64   `yaml:"angle_constraint" env:"ANGLE_CONSTRAINT"` // radians
	Scale           float64   `yaml:"scale" env:"SCALE"`
	WidthProfile    []float64 `yaml:"width_profile" env:"WIDTH_PROFILE"`
	BodyColor       RGB       `yaml:"body_color"`
	FinColor        RGB       `yaml:"fin_color"`
	EyeColor        RGB       `yaml:"eye_color"`
}

// SteeringConfig holds the steering tuning constants.
type SteeringConfig struct {
	WanderJitter    float64 `yaml:"wander_jitter" env:"WANDER_JITTER"`
	WanderStrength  float64 `yaml:"wander_strength" env:"WANDER_STRENGTH"`
	MaxSpeed        float64 `yaml:"max_speed" env:"MAX_SPEED"`
	DetectionRadius float64 `yaml:"detection_radius" env:"DETECTION_RADIUS"`
	EatRadius       float64 `yaml:"eat_radius" env:"EAT_RADIUS"`
	ChaseMinSpeed   float64 `yaml:"chase_min_speed" env:"CHASE_MIN_SPEED"`
	ChaseMaxSpeed   float64 `yaml:"chase_max_speed" env:"CHASE_MAX_SPEED"`
	SteerBlend      float64 `yaml:"steer_blend" env:"STEER_BLEND"`
	Padding         float64 `yaml:"padding" env:"PADDING"`
}

// FoodConfig holds pellet properties.
type FoodConfig struct {
	Size         float64 `yaml:"size" env:"SIZE"`
	Speed        float64 `yaml:"speed" env:"SPEED"`
	DecayRate    float64 `yaml:"decay_rate" env:"DECAY_RATE"`
	InitialAlpha float64 `yaml:"initial_alpha" env:"INITIAL_ALPHA"`
}

// BackgroundConfig holds the cosmetic backdrop settings.
type BackgroundConfig struct {
	TopColor      RGB     `yaml:"top_color"`
	BottomColor   RGB     `yaml:"bottom_color"`
	Sparkles      int     `yaml:"sparkles" env:"SPARKLES"`
	RippleSpacing float64 `yaml:"ripple_spacing" env:"RIPPLE_SPACING"`
	RippleNoise   float64 `yaml:"ripple_noise" env:"RIPPLE_NOISE"` // simplex wobble amplitude, px
}

// TelemetryConfig holds stats and perf collection settings.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window" env:"STATS_WINDOW"` // seconds
	PerfCollectorWindow int     `yaml:"perf_collector_window" env:"PERF_COLLECTOR_WINDOW"`
	BookmarkHistory     int     `yaml:"bookmark_history" env:"BOOKMARK_HISTORY"` // windows averaged for bookmarks
}

// AutofeedConfig drops food without input, for headless and demo runs.
type AutofeedConfig struct {
	Interval int `yaml:"interval" env:"INTERVAL"` // ticks between drops; 0 = off
	Burst    int `yaml:"burst" env:"BURST"`       // pellets per drop
}

// AudioConfig holds sound settings.
type AudioConfig struct {
	SampleRate int     `yaml:"sample_rate" env:"SAMPLE_RATE"`
	Volume     float64 `yaml:"volume" env:"VOLUME"`
}

// Load loads configuration from a YAML file, merging with embedded defaults,
// then applies environment overrides and validates the result.
// If path is empty, only embedded defaults and the environment are used.
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
		// Only overwrites fields present in the file.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the embedded defaults without consulting the environment.
func Default() *Config {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// ApplyEnv overrides fields from FISHTANK_* environment variables.
// Unset variables leave the current value alone.
func ApplyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate clamps soft limits in place and rejects values the simulation
// cannot run with.
func (c *Config) Validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("screen size %dx%d must be positive", c.Screen.Width, c.Screen.Height)
	}
	if c.Screen.TargetFPS <= 0 {
		c.Screen.TargetFPS = 60
	}
	if c.Screen.Margin < 0 {
		c.Screen.Margin = 0
	}

	if c.Scene.Creatures < 0 {
		return fmt.Errorf("scene.creatures %d must not be negative", c.Scene.Creatures)
	}
	if c.Scene.MaxFood < 0 {
		return fmt.Errorf("scene.max_food %d must not be negative", c.Scene.MaxFood)
	}

	f := &c.Fish
	if f.JointCount < fish.MinJoints {
		f.JointCount = fish.MinJoints
	}
	if !(f.LinkSize > 0) {
		return fmt.Errorf("fish.link_size %v must be positive", f.LinkSize)
	}
	if !(f.Scale > 0) {
		return fmt.Errorf("fish.scale %v must be positive", f.Scale)
	}
	if math.IsNaN(f.AngleConstraint) {
		return fmt.Errorf("fish.angle_constraint is NaN")
	}
	f.AngleConstraint = math.Max(0, math.Min(f.AngleConstraint, 2*math.Pi))
	for i, w := range f.WidthProfile {
		if w < 0 {
			return fmt.Errorf("fish.width_profile[%d] = %v must not be negative", i, w)
		}
	}

	s := &c.Steering
	if s.ChaseMinSpeed > s.ChaseMaxSpeed {
		return fmt.Errorf("steering chase speed range [%v, %v] is inverted", s.ChaseMinSpeed, s.ChaseMaxSpeed)
	}
	if s.MaxSpeed < 0 || s.DetectionRadius < 0 || s.EatRadius < 0 || s.Padding < 0 {
		return fmt.Errorf("steering speeds, radii and padding must not be negative")
	}
	s.SteerBlend = math.Max(0, math.Min(s.SteerBlend, 1))

	if !(c.Food.DecayRate > 0) {
		return fmt.Errorf("food.decay_rate %v must be positive", c.Food.DecayRate)
	}
	if c.Food.Size < 0 {
		return fmt.Errorf("food.size %v must not be negative", c.Food.Size)
	}

	if c.Background.Sparkles < 0 {
		c.Background.Sparkles = 0
	}
	if c.Background.RippleSpacing <= 0 {
		c.Background.RippleSpacing = 120
	}
	if c.Telemetry.StatsWindow <= 0 {
		c.Telemetry.StatsWindow = 10
	}
	if c.Telemetry.PerfCollectorWindow <= 0 {
		c.Telemetry.PerfCollectorWindow = 120
	}
	if c.Telemetry.BookmarkHistory <= 0 {
		c.Telemetry.BookmarkHistory = 10
	}
	if c.Autofeed.Interval < 0 {
		c.Autofeed.Interval = 0
	}
	if c.Autofeed.Burst < 1 {
		c.Autofeed.Burst = 1
	}
	if c.Audio.SampleRate <= 0 {
		c.Audio.SampleRate = 44100
	}
	c.Audio.Volume = math.Max(0, math.Min(c.Audio.Volume, 1))
	return nil
}

// CanvasSize returns the simulated canvas: the window plus the margin.
func (c *Config) CanvasSize() (w, h float64) {
	return float64(c.Screen.Width + c.Screen.Margin), float64(c.Screen.Height + c.Screen.Margin)
}

// FishConfig converts the fish section into body proportions.
func (c *Config) FishConfig() fish.Config {
	return fish.Config{
		JointCount:      c.Fish.JointCount,
		LinkSize:        c.Fish.LinkSize,
		AngleConstraint: c.Fish.AngleConstraint,
		Scale:           c.Fish.Scale,
		Widths:          append([]float64(nil), c.Fish.WidthProfile...),
		BodyColor:       c.Fish.BodyColor.Opaque(),
		FinColor:        c.Fish.FinColor.Opaque(),
		EyeColor:        c.Fish.EyeColor.Opaque(),
	}
}

// SteeringParams converts the steering section.
func (c *Config) SteeringParams() steering.Params {
	s := c.Steering
	return steering.Params{
		WanderJitter:   s.WanderJitter,
		WanderStrength: s.WanderStrength,
		MaxSpeed:       s.MaxSpeed,
		DetectRadius:   s.DetectionRadius,
		EatRadius:      s.EatRadius,
		ChaseMin:       s.ChaseMinSpeed,
		ChaseMax:       s.ChaseMaxSpeed,
		SteerBlend:     s.SteerBlend,
		Padding:        s.Padding,
	}
}

// FoodParams converts the food section.
func (c *Config) FoodParams() food.Params {
	return food.Params{
		Size:         c.Food.Size,
		Speed:        c.Food.Speed,
		DecayRate:    c.Food.DecayRate,
		InitialAlpha: c.Food.InitialAlpha,
	}
}

// SceneConfig assembles everything a scene needs at startup.
func (c *Config) SceneConfig() scene.Config {
	w, h := c.CanvasSize()
	return scene.Config{
		Width:     w,
		Height:    h,
		Creatures: c.Scene.Creatures,
		MaxFood:   c.Scene.MaxFood,
		Fish:      c.FishConfig(),
		Steering:  c.SteeringParams(),
		Food:      c.FoodParams(),
	}
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
