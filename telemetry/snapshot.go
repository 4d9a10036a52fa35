package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pthm-cable/fishtank/scene"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the tank state at one tick.
type Snapshot struct {
	Version int   `json:"version"`
	RNGSeed int64 `json:"rng_seed"`

	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Tick    uint64  `json:"tick"`
	Feeding bool    `json:"feeding"`

	Fish []FishState `json:"fish"`
	Food []FoodState `json:"food"`

	Bookmark *Bookmark `json:"bookmark,omitempty"`
}

// FishState holds one fish's spine and steering state.
type FishState struct {
	Joints      []JointState `json:"joints"`
	VelX        float64      `json:"vel_x"`
	VelY        float64      `json:"vel_y"`
	WanderAngle float64      `json:"wander_angle"`
}

// JointState is one spine joint.
type JointState struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Angle float64 `json:"angle"`
}

// FoodState is one live pellet.
type FoodState struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Alpha float64 `json:"alpha"`
}

// NewSnapshot captures the scene. bookmark may be nil.
func NewSnapshot(seed int64, s *scene.Scene, bookmark *Bookmark) *Snapshot {
	b := s.Bounds()
	snap := &Snapshot{
		Version:  SnapshotVersion,
		RNGSeed:  seed,
		Width:    b.W,
		Height:   b.H,
		Tick:     s.Frame(),
		Feeding:  s.Feeding(),
		Bookmark: bookmark,
	}

	for _, c := range s.Creatures() {
		joints := c.Fish.Spine.Joints()
		fs := FishState{
			Joints:      make([]JointState, len(joints)),
			VelX:        c.Vel.X,
			VelY:        c.Vel.Y,
			WanderAngle: c.WanderAngle,
		}
		for i, j := range joints {
			fs.Joints[i] = JointState{X: j.Pos.X, Y: j.Pos.Y, Angle: j.Angle}
		}
		snap.Fish = append(snap.Fish, fs)
	}
	for _, p := range s.Foods() {
		snap.Food = append(snap.Food, FoodState{X: p.Pos.X, Y: p.Pos.Y, Alpha: p.Alpha})
	}
	return snap
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_%d", snapshot.Tick)
	if snapshot.Bookmark != nil {
		sanitized := strings.ReplaceAll(string(snapshot.Bookmark.Type), " ", "_")
		name = fmt.Sprintf("snapshot_%d_%s", snapshot.Tick, sanitized)
	}
	path := filepath.Join(dir, name+".json")

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, want %d", snapshot.Version, SnapshotVersion)
	}
	return &snapshot, nil
}
