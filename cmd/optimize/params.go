// Package main provides CMA-ES tuning of the aquarium steering constants,
// scoring headless autofed runs by how many pellets the fish eat.
//
// Usage: go run ./cmd/optimize -output runs/tune
package main

import (
	"github.com/pthm-cable/fishtank/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
// eat_radius and padding stay fixed: they change what counts as eating and
// where fish may swim, not how well they forage.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "wander_jitter", Path: "steering.wander_jitter", Min: 0.01, Max: 0.4, Default: 0.08},
			{Name: "wander_strength", Path: "steering.wander_strength", Min: 0.02, Max: 0.6, Default: 0.15},
			{Name: "max_speed", Path: "steering.max_speed", Min: 0.3, Max: 4.0, Default: 1.0},
			{Name: "detection_radius", Path: "steering.detection_radius", Min: 100, Max: 800, Default: 350},
			{Name: "chase_min_speed", Path: "steering.chase_min_speed", Min: 0.5, Max: 4.0, Default: 2},
			{Name: "chase_max_speed", Path: "steering.chase_max_speed", Min: 2.0, Max: 12.0, Default: 6},
			{Name: "steer_blend", Path: "steering.steer_blend", Min: 0.02, Max: 0.8, Default: 0.2},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct. The chase
// range is reordered when the search inverts it.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)

	// Order must match Specs order
	s := &cfg.Steering
	s.WanderJitter = clamped[0]
	s.WanderStrength = clamped[1]
	s.MaxSpeed = clamped[2]
	s.DetectionRadius = clamped[3]
	s.ChaseMinSpeed = clamped[4]
	s.ChaseMaxSpeed = clamped[5]
	s.SteerBlend = clamped[6]

	if s.ChaseMinSpeed > s.ChaseMaxSpeed {
		s.ChaseMinSpeed, s.ChaseMaxSpeed = s.ChaseMaxSpeed, s.ChaseMinSpeed
	}
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	s := cfg.Steering
	return []float64{
		s.WanderJitter,
		s.WanderStrength,
		s.MaxSpeed,
		s.DetectionRadius,
		s.ChaseMinSpeed,
		s.ChaseMaxSpeed,
		s.SteerBlend,
	}
}
