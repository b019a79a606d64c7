// Package shell открывает системные страницы и управляет ярлыком автозапуска.
package shell

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	// KeyboardSettingsURI - страница параметров клавиатуры.
	KeyboardSettingsURI = "ms-settings:keyboard"

	// StartupFolderURI - папка автозагрузки текущего пользователя.
	StartupFolderURI = "shell:startup"
)

// ErrUnsupported возвращается на платформах без оболочки Windows.
var ErrUnsupported = errors.New("not supported on this platform")

// OpenKeyboardSettings открывает параметры клавиатуры.
func OpenKeyboardSettings() error {
	return Open(KeyboardSettingsURI)
}

// OpenStartupFolder открывает папку автозагрузки в проводнике.
func OpenStartupFolder() error {
	return openWith("explorer.exe", StartupFolderURI)
}

// Open передаёт URI или путь оболочке.
func Open(target string) error {
	return openWith(target, "")
}

// StartupDir возвращает папку автозагрузки внутри appData (%APPDATA%).
func StartupDir(appData string) string {
	return filepath.Join(appData, "Microsoft", "Windows", "Start Menu", "Programs", "Startup")
}

// Autostart - ярлык приложения в папке автозагрузки.
type Autostart struct {
	dir    string
	name   string
	target string
	args   string
}

// NewAutostart создаёт Autostart в папке автозагрузки пользователя.
func NewAutostart(name, target, args string) *Autostart {
	return NewAutostartIn(StartupDir(os.Getenv("APPDATA")), name, target, args)
}

// NewAutostartIn создаёт Autostart в заданной папке.
func NewAutostartIn(dir, name, target, args string) *Autostart {
	return &Autostart{dir: dir, name: name, target: target, args: args}
}

// Path возвращает путь к ярлыку.
func (a *Autostart) Path() string {
	return filepath.Join(a.dir, a.name+".lnk")
}

// Enabled возвращает true, если ярлык существует.
func (a *Autostart) Enabled() bool {
	_, err := os.Stat(a.Path())
	return err == nil
}

// Enable создаёт ярлык.
func (a *Autostart) Enable() error {
	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		return fmt.Errorf("create startup folder: %w", err)
	}
	if err := createShortcut(a.Path(), a.target, a.args, a.name); err != nil {
		return fmt.Errorf("create shortcut %s: %w", a.Path(), err)
	}
	return nil
}

// Disable удаляет ярлык. Отсутствие ярлыка - не ошибка.
func (a *Autostart) Disable() error {
	err := os.Remove(a.Path())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove shortcut: %w", err)
	}
	return nil
}

// Toggle переключает автозапуск и возвращает новое состояние.
// При ошибке возвращается прежнее состояние.
func (a *Autostart) Toggle() (bool, error) {
	if a.Enabled() {
		if err := a.Disable(); err != nil {
			return true, err
		}
		return false, nil
	}
	if err := a.Enable(); err != nil {
		return false, err
	}
	return true, nil
}
