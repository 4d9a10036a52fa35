package main

import (
	"fmt"
	"math"

	"github.com/pthm-cable/fishtank/config"
	"github.com/pthm-cable/fishtank/fish"
)

// Slider ranges.
const (
	minJoints      = fish.MinJoints
	maxJoints      = 24
	minScale       = 0.05
	maxScale       = 0.5
	minLinkSize    = 16
	maxLinkSize    = 128
	minConstraintD = 5
	maxConstraintD = 90
)

// Params holds the tunable fish proportions.
type Params struct {
	Joints        int
	Scale         float32
	LinkSize      float32
	ConstraintDeg float32
}

// paramsFrom reads the tunable fields out of a fish config section.
func paramsFrom(fc config.FishConfig) Params {
	return Params{
		Joints:        fc.JointCount,
		Scale:         float32(fc.Scale),
		LinkSize:      float32(fc.LinkSize),
		ConstraintDeg: float32(fc.AngleConstraint * 180 / math.Pi),
	}
}

// clamped keeps every field inside its slider range.
func (p Params) clamped() Params {
	p.Joints = min(max(p.Joints, minJoints), maxJoints)
	p.Scale = min(max(p.Scale, minScale), maxScale)
	p.LinkSize = min(max(p.LinkSize, minLinkSize), maxLinkSize)
	p.ConstraintDeg = min(max(p.ConstraintDeg, minConstraintD), maxConstraintD)
	return p
}

// apply writes the params into a copy of the fish section.
func (p Params) apply(fc config.FishConfig) config.FishConfig {
	p = p.clamped()
	fc.JointCount = p.Joints
	fc.Scale = float64(p.Scale)
	fc.LinkSize = float64(p.LinkSize)
	fc.AngleConstraint = float64(p.ConstraintDeg) * math.Pi / 180
	fc.WidthProfile = append([]float64(nil), fc.WidthProfile...)
	return fc
}

// yamlLines renders the fish section for pasting into config.yaml.
func yamlLines(fc config.FishConfig) []string {
	return []string{
		"fish:",
		fmt.Sprintf("  joint_count: %d", fc.JointCount),
		fmt.Sprintf("  link_size: %.0f", fc.LinkSize),
		fmt.Sprintf("  angle_constraint: %.4f", fc.AngleConstraint),
		fmt.Sprintf("  scale: %.3f", fc.Scale),
	}
}
