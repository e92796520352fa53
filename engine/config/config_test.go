package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	t.Setenv("LEGION_ESP", "true")

	cfg := Default()
	if cfg.Overlay.Enabled {
		t.Fatalf("Default should ignore the environment")
	}
	if !cfg.Overlay.Box || !cfg.Overlay.Line || !cfg.Overlay.Label {
		t.Fatalf("expected box, line and label on by default: %+v", cfg.Overlay)
	}
	if cfg.Overlay.BoxHalfExtent != 20 {
		t.Fatalf("BoxHalfExtent = %v, want 20", cfg.Overlay.BoxHalfExtent)
	}
	if cfg.Camera.ForwardSpeed != 100 || cfg.Camera.BackwardSpeed != 100 {
		t.Fatalf("speeds = %+v, want 100/100", cfg.Camera)
	}
	if cfg.Render.FOV != 90 {
		t.Fatalf("FOV = %v, want 90", cfg.Render.FOV)
	}
	if cfg.Level.TerrainPath != "" || cfg.Level.TerrainCell != 32 {
		t.Fatalf("TerrainPath = %q", cfg.Level.TerrainPath)
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("LEGION_ESP", "1")
	t.Setenv("LEGION_ESP_LINE", "false")
	t.Setenv("LEGION_CAM_FORWARDSPEED", "250")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Overlay.Enabled {
		t.Fatalf("expected overlay enabled from env")
	}
	if cfg.Overlay.Line {
		t.Fatalf("expected line disabled from env")
	}
	if cfg.Camera.ForwardSpeed != 250 {
		t.Fatalf("ForwardSpeed = %v, want 250", cfg.Camera.ForwardSpeed)
	}
	if cfg.Camera.BackwardSpeed != 100 {
		t.Fatalf("BackwardSpeed = %v, want default 100", cfg.Camera.BackwardSpeed)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legion.yaml")
	data := []byte("overlay:\n  enabled: true\n  box: false\ncamera:\n  forward_speed: 40\n  backward_speed: 30\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("LEGION_CAM_BACKWARDSPEED", "75")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Overlay.Enabled || cfg.Overlay.Box {
		t.Fatalf("file overlay values not applied: %+v", cfg.Overlay)
	}
	if !cfg.Overlay.Line {
		t.Fatalf("unset file keys should keep defaults")
	}
	if cfg.Camera.ForwardSpeed != 40 {
		t.Fatalf("ForwardSpeed = %v, want 40 from file", cfg.Camera.ForwardSpeed)
	}
	if cfg.Camera.BackwardSpeed != 75 {
		t.Fatalf("BackwardSpeed = %v, want 75 from env", cfg.Camera.BackwardSpeed)
	}
}

func TestLoadBadEnv(t *testing.T) {
	t.Setenv("LEGION_FOV", "wide")

	if _, err := Load(""); err == nil {
		t.Fatalf("expected error for malformed LEGION_FOV")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestStoreSetGet(t *testing.T) {
	s := NewStore(Default())

	if err := s.Set("cl_esp", "1"); err != nil {
		t.Fatalf("Set cl_esp: %v", err)
	}
	if !s.Config().Overlay.Enabled {
		t.Fatalf("cl_esp not applied")
	}
	if err := s.Set("cam_forwardspeed", "320"); err != nil {
		t.Fatalf("Set cam_forwardspeed: %v", err)
	}
	if got, _ := s.Get("cam_forwardspeed"); got != "320" {
		t.Fatalf("Get cam_forwardspeed = %q, want 320", got)
	}

	if err := s.Set("cl_nope", "1"); !errors.Is(err, ErrUnknownVariable) {
		t.Fatalf("Set unknown = %v, want ErrUnknownVariable", err)
	}
	if err := s.Set("cl_esp_box", "maybe"); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestStoreToggle(t *testing.T) {
	s := NewStore(Default())

	on, err := s.Toggle("cl_esp")
	if err != nil || !on {
		t.Fatalf("Toggle cl_esp = %v, %v; want true", on, err)
	}
	off, err := s.Toggle("cl_esp")
	if err != nil || off {
		t.Fatalf("Toggle cl_esp = %v, %v; want false", off, err)
	}
	if _, err := s.Toggle("r_fov"); err == nil {
		t.Fatalf("expected error toggling a numeric variable")
	}
}

func TestStoreSnapshotIsCopy(t *testing.T) {
	s := NewStore(Default())
	snap := s.Config()
	snap.Overlay.Enabled = true
	if s.Config().Overlay.Enabled {
		t.Fatalf("mutating a snapshot changed the store")
	}
}

func TestNamesSorted(t *testing.T) {
	names := Names()
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("names not sorted: %v", names)
		}
	}
	if len(names) != len(variables) {
		t.Fatalf("Names() returned %d of %d", len(names), len(variables))
	}
}
