package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Scene.Creatures != 15 {
		t.Errorf("creatures = %d, want 15", cfg.Scene.Creatures)
	}
	if cfg.Fish.JointCount != 12 || len(cfg.Fish.WidthProfile) != 10 {
		t.Errorf("fish = %+v", cfg.Fish)
	}
	if math.Abs(cfg.Fish.AngleConstraint-math.Pi/8) > 1e-12 {
		t.Errorf("angle constraint = %v, want pi/8", cfg.Fish.AngleConstraint)
	}
	if cfg.Fish.BodyColor != (RGB{58, 124, 165}) {
		t.Errorf("body color = %v", cfg.Fish.BodyColor)
	}

	p := cfg.SteeringParams()
	if p.DetectRadius != 350 || p.EatRadius != 25 || p.ChaseMin != 2 || p.ChaseMax != 6 || p.SteerBlend != 0.2 {
		t.Errorf("steering params = %+v", p)
	}
	f := cfg.FoodParams()
	if f.Size != 8 || f.Speed != 1.5 || f.DecayRate != 1.5 || f.InitialAlpha != 255 {
		t.Errorf("food params = %+v", f)
	}

	sc := cfg.SceneConfig()
	if sc.Width != 1480 || sc.Height != 920 {
		t.Errorf("canvas = %vx%v, want window plus margin", sc.Width, sc.Height)
	}
}

func TestLoadMergesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tank.yaml")
	data := "scene:\n  creatures: 4\nsteering:\n  eat_radius: 40\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Scene.Creatures != 4 || cfg.Steering.EatRadius != 40 {
		t.Errorf("file values not applied: %+v %+v", cfg.Scene, cfg.Steering)
	}
	// Untouched keys keep their defaults.
	if cfg.Steering.DetectionRadius != 350 || cfg.Scene.MaxFood != 400 {
		t.Errorf("defaults lost: %+v %+v", cfg.Scene, cfg.Steering)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil || !strings.Contains(err.Error(), "reading config file") {
		t.Fatalf("expected read error, got %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FISHTANK_SCENE_CREATURES", "7")
	t.Setenv("FISHTANK_STEERING_MAX_SPEED", "2.5")
	t.Setenv("FISHTANK_FISH_WIDTH_PROFILE", "10,9,8")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Scene.Creatures != 7 {
		t.Errorf("creatures = %d, want 7", cfg.Scene.Creatures)
	}
	if cfg.Steering.MaxSpeed != 2.5 {
		t.Errorf("max speed = %v, want 2.5", cfg.Steering.MaxSpeed)
	}
	if len(cfg.Fish.WidthProfile) != 3 || cfg.Fish.WidthProfile[2] != 8 {
		t.Errorf("width profile = %v", cfg.Fish.WidthProfile)
	}
	if cfg.Screen.Width != 1280 {
		t.Errorf("unset variable changed screen width to %d", cfg.Screen.Width)
	}
}

func TestEnvParseError(t *testing.T) {
	t.Setenv("FISHTANK_SCENE_CREATURES", "lots")

	_, err := Load("")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
		check   func(*testing.T, *Config)
	}{
		{
			name:   "angle constraint above full turn is clamped",
			mutate: func(c *Config) { c.Fish.AngleConstraint = 10 },
			check: func(t *testing.T, c *Config) {
				if c.Fish.AngleConstraint != 2*math.Pi {
					t.Errorf("got %v", c.Fish.AngleConstraint)
				}
			},
		},
		{
			name:   "negative angle constraint is clamped",
			mutate: func(c *Config) { c.Fish.AngleConstraint = -1 },
			check: func(t *testing.T, c *Config) {
				if c.Fish.AngleConstraint != 0 {
					t.Errorf("got %v", c.Fish.AngleConstraint)
				}
			},
		},
		{
			name:   "short chain is raised",
			mutate: func(c *Config) { c.Fish.JointCount = 2 },
			check: func(t *testing.T, c *Config) {
				if c.Fish.JointCount != 8 {
					t.Errorf("got %d", c.Fish.JointCount)
				}
			},
		},
		{
			name:   "steer blend clamped",
			mutate: func(c *Config) { c.Steering.SteerBlend = 3 },
			check: func(t *testing.T, c *Config) {
				if c.Steering.SteerBlend != 1 {
					t.Errorf("got %v", c.Steering.SteerBlend)
				}
			},
		},
		{name: "zero link size", mutate: func(c *Config) { c.Fish.LinkSize = 0 }, wantErr: true},
		{name: "NaN angle", mutate: func(c *Config) { c.Fish.AngleConstraint = math.NaN() }, wantErr: true},
		{name: "inverted chase range", mutate: func(c *Config) { c.Steering.ChaseMinSpeed = 9 }, wantErr: true},
		{name: "negative creatures", mutate: func(c *Config) { c.Scene.Creatures = -1 }, wantErr: true},
		{name: "no decay", mutate: func(c *Config) { c.Food.DecayRate = 0 }, wantErr: true},
		{name: "zero screen", mutate: func(c *Config) { c.Screen.Width = 0 }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Scene.Creatures = 3
	cfg.Fish.FinColor = RGB{1, 2, 3}

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if back.Scene.Creatures != 3 || back.Fish.FinColor != (RGB{1, 2, 3}) {
		t.Errorf("round trip lost values: %+v %+v", back.Scene, back.Fish)
	}
}

func TestFishConfigCopiesProfile(t *testing.T) {
	cfg := Default()
	fc := cfg.FishConfig()
	fc.Widths[0] = -1
	if cfg.Fish.WidthProfile[0] == -1 {
		t.Error("FishConfig shares the width profile slice")
	}
	if fc.BodyColor.A != 255 {
		t.Errorf("body color alpha = %d", fc.BodyColor.A)
	}
}
