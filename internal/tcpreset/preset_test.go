package tcpreset

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestGetEmbeddedPresets(t *testing.T) {
	tc, err := Get("blitz")
	if err != nil {
		t.Fatalf("Get(blitz): %v", err)
	}
	if tc.Base != 3*time.Minute || tc.Increment != 2*time.Second || tc.MovesToGo != 0 {
		t.Fatalf("blitz = %+v, want 3m+2s sudden death", tc)
	}

	tc, err = Get("classical")
	if err != nil {
		t.Fatalf("Get(classical): %v", err)
	}
	if tc.MovesToGo != 40 {
		t.Fatalf("classical moves_to_go = %d, want 40", tc.MovesToGo)
	}
}

func TestGetNormalizesName(t *testing.T) {
	if _, err := Get("  Blitz "); err != nil {
		t.Fatalf("expected case/space-insensitive lookup, got %v", err)
	}
}

func TestGetUnknown(t *testing.T) {
	if _, err := Get("hyperbullet-armageddon"); err == nil {
		t.Fatalf("expected error for unknown preset")
	}
}

func TestNamesSorted(t *testing.T) {
	names := Names()
	if len(names) < 4 {
		t.Fatalf("expected embedded presets, got %v", names)
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("names not sorted: %v", names)
		}
	}
}

func TestLoadFileOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	body := "presets:\n  casual:\n    base_ms: 300000\n    increment_ms: 3000\n    moves_to_go: 0\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write override: %v", err)
	}
	if err := LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	tc, err := Get("casual")
	if err != nil {
		t.Fatalf("Get(casual): %v", err)
	}
	if tc.Base != 5*time.Minute || tc.Increment != 3*time.Second {
		t.Fatalf("casual = %+v", tc)
	}
}

func TestLoadFileRejectsBadPreset(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	body := "presets:\n  broken:\n    base_ms: 0\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := LoadFile(path); err == nil {
		t.Fatalf("expected error for non-positive base_ms")
	}
}
