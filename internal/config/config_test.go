package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), FileName))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if c.UILanguage() != "en" {
		t.Errorf("UILanguage() = %q, want en", c.UILanguage())
	}
	if c.Theme() != "auto" {
		t.Errorf("Theme() = %q, want auto", c.Theme())
	}
	if c.KeyUpDelay() != 10*time.Millisecond {
		t.Errorf("KeyUpDelay() = %v, want 10ms", c.KeyUpDelay())
	}
	if c.IconSize() != 128 {
		t.Errorf("IconSize() = %d, want 128", c.IconSize())
	}
	if !c.CheckUpdates() || !c.NotificationsEnabled() {
		t.Error("update checks and notifications should be on by default")
	}
	if c.RefreshHotkey().Enabled() {
		t.Error("refresh hotkey should be disabled by default")
	}
	if want := "https://api.github.com/repos/Icecovery/IMEIndicator/releases"; c.ReleaseURL() != want {
		t.Errorf("ReleaseURL() = %q, want %q", c.ReleaseURL(), want)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	content := `
ui_language = "ru"
theme = "light"
key_up_delay_ms = 25
icon_size = 64
check_updates = false

[refresh_hotkey]
modifiers = ["ctrl", "alt"]
key = "k"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if c.UILanguage() != "ru" {
		t.Errorf("UILanguage() = %q, want ru", c.UILanguage())
	}
	if c.Theme() != "light" {
		t.Errorf("Theme() = %q, want light", c.Theme())
	}
	if c.KeyUpDelay() != 25*time.Millisecond {
		t.Errorf("KeyUpDelay() = %v, want 25ms", c.KeyUpDelay())
	}
	if c.IconSize() != 64 {
		t.Errorf("IconSize() = %d, want 64", c.IconSize())
	}
	if c.CheckUpdates() {
		t.Error("CheckUpdates() = true, want false")
	}
	// Ключи, которых нет в файле, сохраняют значения по умолчанию.
	if !c.NotificationsEnabled() {
		t.Error("NotificationsEnabled() = false, want default true")
	}
	if got := c.RefreshHotkey().String(); got != "ctrl+alt+k" {
		t.Errorf("RefreshHotkey() = %q, want ctrl+alt+k", got)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(`theme = "light"`), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("IME_INDICATOR_THEME", "dark")
	t.Setenv("IME_INDICATOR_KEY_UP_DELAY_MS", "40")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Theme() != "dark" {
		t.Errorf("Theme() = %q, want dark", c.Theme())
	}
	if c.KeyUpDelay() != 40*time.Millisecond {
		t.Errorf("KeyUpDelay() = %v, want 40ms", c.KeyUpDelay())
	}
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("theme = "), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoad_NormalizesBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("key_up_delay_ms = -5\nicon_size = 2\nrelease_url = \"\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.KeyUpDelay() != 10*time.Millisecond {
		t.Errorf("KeyUpDelay() = %v, want 10ms", c.KeyUpDelay())
	}
	if c.IconSize() != 128 {
		t.Errorf("IconSize() = %d, want 128", c.IconSize())
	}
	if c.ReleaseURL() != DefaultReleaseURL {
		t.Errorf("ReleaseURL() = %q", c.ReleaseURL())
	}
}

func TestToggle_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if c.ToggleNotifications() {
		t.Fatal("ToggleNotifications() should turn notifications off")
	}
	c.SetRefreshHotkey(HotkeyConfig{Modifiers: []Modifier{ModCtrl, ModShift}, Key: "l"})

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config not saved: %v", err)
	}
	if !strings.Contains(string(raw), "notifications = false") {
		t.Errorf("saved config missing notifications flag:\n%s", raw)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.NotificationsEnabled() {
		t.Error("notifications flag not persisted")
	}
	if got := reloaded.RefreshHotkey().String(); got != "ctrl+shift+l" {
		t.Errorf("RefreshHotkey() = %q, want ctrl+shift+l", got)
	}
}

func TestLoad_EmptyPathDoesNotSave(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	c.ToggleCheckUpdates()
	if c.Path() != "" {
		t.Errorf("Path() = %q, want empty", c.Path())
	}
}
