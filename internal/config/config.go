// Package config предоставляет конфигурацию приложения с сохранением в файл.
//
// Настройки читаются из config.toml рядом с бинарником, затем переопределяются
// переменными окружения с префиксом IME_INDICATOR_.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
)

const (
	// FileName - имя файла конфигурации.
	FileName = "config.toml"

	// EnvPrefix - префикс переменных окружения.
	EnvPrefix = "IME_INDICATOR_"

	// DefaultReleaseURL - список релизов для проверки обновлений.
	DefaultReleaseURL = "https://api.github.com/repos/Icecovery/IMEIndicator/releases"
)

// Modifier представляет модификатор клавиши.
type Modifier string

const (
	ModCtrl  Modifier = "ctrl"
	ModShift Modifier = "shift"
	ModAlt   Modifier = "alt"
	ModSuper Modifier = "super" // Win
)

// HotkeyConfig хранит горячую клавишу принудительного обновления.
// Пустая клавиша отключает её.
type HotkeyConfig struct {
	Modifiers []Modifier `toml:"modifiers"`
	Key       string     `toml:"key"`
}

// Enabled возвращает true, если клавиша задана.
func (h HotkeyConfig) Enabled() bool {
	return h.Key != ""
}

// String возвращает строковое представление горячей клавиши.
func (h HotkeyConfig) String() string {
	parts := make([]string, 0, len(h.Modifiers)+1)
	for _, m := range h.Modifiers {
		parts = append(parts, string(m))
	}
	parts = append(parts, h.Key)
	return strings.Join(parts, "+")
}

// configData структура для сериализации.
type configData struct {
	UILanguage    string       `toml:"ui_language" env:"UI_LANGUAGE"`
	Theme         string       `toml:"theme" env:"THEME"`
	KeyUpDelayMS  int          `toml:"key_up_delay_ms" env:"KEY_UP_DELAY_MS"`
	IconSize      int          `toml:"icon_size" env:"ICON_SIZE"`
	FontPath      string       `toml:"font_path,omitempty" env:"FONT_PATH"`
	CheckUpdates  bool         `toml:"check_updates" env:"CHECK_UPDATES"`
	ReleaseURL    string       `toml:"release_url" env:"RELEASE_URL"`
	Notifications bool         `toml:"notifications" env:"NOTIFICATIONS"`
	LogLevel      string       `toml:"log_level" env:"LOG_LEVEL"`
	RefreshHotkey HotkeyConfig `toml:"refresh_hotkey"`
}

func defaults() configData {
	return configData{
		UILanguage:    "en",
		Theme:         "auto",
		KeyUpDelayMS:  10,
		IconSize:      128,
		CheckUpdates:  true,
		ReleaseURL:    DefaultReleaseURL,
		Notifications: true,
		LogLevel:      "info",
	}
}

// Config хранит настройки приложения.
type Config struct {
	mu         sync.RWMutex
	data       configData
	configPath string
}

// DefaultPath возвращает путь к config.toml рядом с бинарником.
func DefaultPath() string {
	execPath, err := os.Executable()
	if err != nil {
		return ""
	}
	// Резолвим симлинки
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return ""
	}
	return filepath.Join(filepath.Dir(execPath), FileName)
}

// Load читает конфигурацию из path. Отсутствующий файл - не ошибка,
// используются значения по умолчанию. Пустой path отключает сохранение.
func Load(path string) (*Config, error) {
	c := &Config{
		data:       defaults(),
		configPath: path,
	}

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// Файл не существует, используем defaults
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := toml.Unmarshal(raw, &c.data); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}

	if err := env.ParseWithOptions(&c.data, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	c.normalize()
	return c, nil
}

func (c *Config) normalize() {
	d := defaults()
	if c.data.KeyUpDelayMS <= 0 {
		c.data.KeyUpDelayMS = d.KeyUpDelayMS
	}
	if c.data.IconSize < 16 {
		c.data.IconSize = d.IconSize
	}
	if c.data.ReleaseURL == "" {
		c.data.ReleaseURL = d.ReleaseURL
	}
	if c.data.UILanguage == "" {
		c.data.UILanguage = d.UILanguage
	}
}

// save сохраняет конфигурацию в файл. Вызывается с захваченным mu.
func (c *Config) save() {
	if c.configPath == "" {
		return
	}

	data, err := toml.Marshal(c.data)
	if err != nil {
		log.Error().Err(err).Msg("Не удалось сериализовать конфигурацию")
		return
	}

	if err := os.WriteFile(c.configPath, data, 0644); err != nil {
		log.Error().Err(err).Str("path", c.configPath).Msg("Не удалось сохранить конфигурацию")
	}
}

// Path возвращает путь к файлу конфигурации.
func (c *Config) Path() string {
	return c.configPath
}

// UILanguage возвращает язык интерфейса.
func (c *Config) UILanguage() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.UILanguage
}

// SetUILanguage устанавливает язык интерфейса.
func (c *Config) SetUILanguage(lang string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data.UILanguage = lang
	c.save()
}

// Theme возвращает принудительную тему: auto, dark или light.
func (c *Config) Theme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.Theme
}

// KeyUpDelay возвращает задержку обновления после отпускания Win.
func (c *Config) KeyUpDelay() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.data.KeyUpDelayMS) * time.Millisecond
}

// IconSize возвращает размер иконки в пикселях.
func (c *Config) IconSize() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.IconSize
}

// FontPath возвращает путь к TTF-шрифту или пустую строку.
func (c *Config) FontPath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.FontPath
}

// CheckUpdates возвращает true, если обновления проверяются при запуске.
func (c *Config) CheckUpdates() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.CheckUpdates
}

// ToggleCheckUpdates переключает проверку обновлений при запуске.
func (c *Config) ToggleCheckUpdates() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data.CheckUpdates = !c.data.CheckUpdates
	c.save()
	return c.data.CheckUpdates
}

// ReleaseURL возвращает адрес списка релизов.
func (c *Config) ReleaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.ReleaseURL
}

// NotificationsEnabled возвращает true если уведомления включены.
func (c *Config) NotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.Notifications
}

// ToggleNotifications переключает состояние уведомлений.
func (c *Config) ToggleNotifications() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data.Notifications = !c.data.Notifications
	c.save()
	return c.data.Notifications
}

// LogLevel возвращает уровень журнала.
func (c *Config) LogLevel() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.LogLevel
}

// SetLogLevel переопределяет уровень журнала без сохранения (флаг командной строки).
func (c *Config) SetLogLevel(level string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data.LogLevel = level
}

// RefreshHotkey возвращает горячую клавишу принудительного обновления.
func (c *Config) RefreshHotkey() HotkeyConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.RefreshHotkey
}

// SetRefreshHotkey устанавливает горячую клавишу принудительного обновления.
func (c *Config) SetRefreshHotkey(hk HotkeyConfig) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data.RefreshHotkey = hk
	c.save()
}
