package shell

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestStartupDir(t *testing.T) {
	dir := StartupDir("appdata")
	want := filepath.Join("appdata", "Microsoft", "Windows", "Start Menu", "Programs", "Startup")
	if dir != want {
		t.Errorf("StartupDir() = %q, want %q", dir, want)
	}
}

func TestAutostart_Path(t *testing.T) {
	a := NewAutostartIn("startup", "IME Indicator", "ime-indicator.exe", "")
	if got := a.Path(); got != filepath.Join("startup", "IME Indicator.lnk") {
		t.Errorf("Path() = %q", got)
	}
}

func TestAutostart_EnabledAndDisable(t *testing.T) {
	dir := t.TempDir()
	a := NewAutostartIn(dir, "app", "app.exe", "")

	if a.Enabled() {
		t.Fatal("Enabled() before the shortcut exists")
	}

	if err := os.WriteFile(a.Path(), []byte("lnk"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !a.Enabled() {
		t.Fatal("Enabled() = false with shortcut present")
	}

	if err := a.Disable(); err != nil {
		t.Fatalf("Disable: %v", err)
	}
	if a.Enabled() {
		t.Error("Enabled() after Disable")
	}

	// Повторное отключение не ошибка.
	if err := a.Disable(); err != nil {
		t.Errorf("second Disable: %v", err)
	}
}

func TestAutostart_ToggleOff(t *testing.T) {
	dir := t.TempDir()
	a := NewAutostartIn(dir, "app", "app.exe", "")
	if err := os.WriteFile(a.Path(), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	on, err := a.Toggle()
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if on {
		t.Error("Toggle() = true, want false")
	}
}

func TestAutostart_EnableUnsupported(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("creates a real shortcut on Windows")
	}
	a := NewAutostartIn(t.TempDir(), "app", "app.exe", "")

	on, err := a.Toggle()
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("Toggle error = %v, want unsupported", err)
	}
	if on {
		t.Error("Toggle() = true after failure")
	}
}

func TestOpen_Unsupported(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("opens a real window on Windows")
	}
	if err := OpenKeyboardSettings(); !errors.Is(err, ErrUnsupported) {
		t.Errorf("OpenKeyboardSettings() = %v, want ErrUnsupported", err)
	}
}
