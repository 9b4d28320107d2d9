package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LogLimit != 200 || cfg.PreviewCapacity != 32 || !cfg.PreviewEnabled {
		t.Errorf("defaults wrong: %+v", cfg)
	}
	if !cfg.IsProtected("main") || !cfg.IsProtected("trunk") {
		t.Errorf("default protected list wrong: %v", cfg.ProtectedBookmarks)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
protected_bookmarks = ["release", "main"]
log_limit = 50
preview_enabled = false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LogLimit != 50 {
		t.Errorf("log limit = %d", cfg.LogLimit)
	}
	if cfg.PreviewEnabled {
		t.Error("preview_enabled override ignored")
	}
	if !cfg.IsProtected("release") || cfg.IsProtected("master") {
		t.Errorf("protected list = %v", cfg.ProtectedBookmarks)
	}
	// Unset key keeps its default.
	if cfg.PreviewCapacity != 32 {
		t.Errorf("preview capacity = %d", cfg.PreviewCapacity)
	}
}

func TestMergeProtected(t *testing.T) {
	cfg := Default()
	cfg.MergeProtected([]string{"main", "release", ""})
	if !cfg.IsProtected("release") {
		t.Error("release not merged")
	}
	count := 0
	for _, p := range cfg.ProtectedBookmarks {
		if p == "main" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("main duplicated: %v", cfg.ProtectedBookmarks)
	}
}
