package config

import (
	"path/filepath"
	"testing"
)

func TestApplyOverrides(t *testing.T) {
	cfg := &Config{
		Render: RenderConfig{Width: 80, Images: true},
	}

	cfg.ApplyOverrides(100, true, true)
	if cfg.Render.Width != 100 {
		t.Fatalf("width=%d, want 100", cfg.Render.Width)
	}
	if !cfg.Render.ExpandThinking {
		t.Fatal("expand_thinking not applied")
	}
	if !cfg.Render.Images {
		t.Fatal("images disabled unexpectedly")
	}

	cfg.ApplyOverrides(0, false, false)
	if cfg.Render.Width != 100 {
		t.Fatalf("width changed unexpectedly: %d", cfg.Render.Width)
	}
	if !cfg.Render.ExpandThinking {
		t.Fatal("expand_thinking reset unexpectedly")
	}
	if cfg.Render.Images {
		t.Fatal("images override not applied")
	}
}

func TestStorePath(t *testing.T) {
	cfg := &Config{}
	cfg.Images.Path = "/tmp/custom/images.db"
	if got := cfg.StorePath(); got != "/tmp/custom/images.db" {
		t.Fatalf("StorePath()=%q", got)
	}

	cfg.Images.Path = ""
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	want := filepath.Join(GetDataDir(), "images.db")
	if got := cfg.StorePath(); got != want {
		t.Fatalf("StorePath()=%q, want %q", got, want)
	}
}

func TestGetConfigDirRespectsXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	got, err := GetConfigDir()
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(dir, "chatblocks") {
		t.Fatalf("GetConfigDir()=%q", got)
	}
}
