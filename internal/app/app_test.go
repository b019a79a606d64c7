package app

import (
	"path/filepath"
	"testing"

	"ime-indicator/internal/config"
)

func TestUpdatePage(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	a := &App{config: cfg}

	if got, want := a.updatePage(), "https://github.com/Icecovery/IMEIndicator/releases"; got != want {
		t.Errorf("updatePage() before any check = %q, want %q", got, want)
	}

	a.latestURL = "https://github.com/Icecovery/IMEIndicator/releases/tag/v1.2.0"
	if got := a.updatePage(); got != a.latestURL {
		t.Errorf("updatePage() = %q, want %q", got, a.latestURL)
	}
}
