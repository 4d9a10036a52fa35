package telemetry

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/fishtank/scene"
)

func newSnapshotScene(t *testing.T) *scene.Scene {
	t.Helper()
	cfg := scene.DefaultConfig()
	cfg.Creatures = 3
	s := scene.New(cfg, rand.New(rand.NewSource(42)))
	s.SetFeeding(true)
	if err := s.Feed(100, 200); err != nil {
		t.Fatal(err)
	}
	if err := s.Feed(300, 50); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		s.Tick(scene.TickInfo{})
	}
	return s
}

func TestNewSnapshotCapturesScene(t *testing.T) {
	s := newSnapshotScene(t)
	snap := NewSnapshot(42, s, nil)

	if snap.Version != SnapshotVersion || snap.RNGSeed != 42 {
		t.Errorf("header = v%d seed %d", snap.Version, snap.RNGSeed)
	}
	if snap.Tick != 5 || !snap.Feeding {
		t.Errorf("tick = %d feeding = %v, want 5 true", snap.Tick, snap.Feeding)
	}
	if snap.Width != 1280 || snap.Height != 720 {
		t.Errorf("size = %vx%v", snap.Width, snap.Height)
	}
	if len(snap.Fish) != 3 {
		t.Fatalf("fish = %d, want 3", len(snap.Fish))
	}
	for i, f := range snap.Fish {
		c := s.Creatures()[i]
		if len(f.Joints) != c.Fish.Spine.Len() {
			t.Errorf("fish %d has %d joints, want %d", i, len(f.Joints), c.Fish.Spine.Len())
		}
		if head := c.Head(); f.Joints[0].X != head.X || f.Joints[0].Y != head.Y {
			t.Errorf("fish %d head = (%v, %v), want %v", i, f.Joints[0].X, f.Joints[0].Y, head)
		}
	}
	if len(snap.Food) != s.FoodCount() {
		t.Errorf("food = %d, want %d", len(snap.Food), s.FoodCount())
	}
}

func TestSnapshotSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	snap := NewSnapshot(42, newSnapshotScene(t), &Bookmark{
		Type:        BookmarkFeedingFrenzy,
		Tick:        5,
		Description: "Test bookmark",
	})

	path, err := SaveSnapshot(snap, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if filepath.Base(path) != "snapshot_5_feeding_frenzy.json" {
		t.Errorf("file name = %s", filepath.Base(path))
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if loaded.Tick != snap.Tick || len(loaded.Fish) != len(snap.Fish) || len(loaded.Food) != len(snap.Food) {
		t.Errorf("loaded %+v differs from saved", loaded)
	}
	if loaded.Bookmark == nil || loaded.Bookmark.Type != BookmarkFeedingFrenzy {
		t.Errorf("bookmark = %+v", loaded.Bookmark)
	}
	if got, want := loaded.Fish[0].Joints[3], snap.Fish[0].Joints[3]; got != want {
		t.Errorf("joint 3 = %+v, want %+v", got, want)
	}
}

func TestSnapshotWithoutBookmarkName(t *testing.T) {
	snap := NewSnapshot(1, newSnapshotScene(t), nil)
	path, err := SaveSnapshot(snap, filepath.Join(t.TempDir(), "nested"))
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "snapshot_5.json" {
		t.Errorf("file name = %s", filepath.Base(path))
	}
}

func TestLoadSnapshotRejectsOtherVersions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.json")
	if err := os.WriteFile(path, []byte(`{"version": 99}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnapshot(path); err == nil {
		t.Error("expected a version error")
	}
	if _, err := LoadSnapshot(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected a read error")
	}
}
