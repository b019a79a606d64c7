// Package i18n provides internationalization support.
package i18n

import (
	"fmt"
	"sync"

	"golang.org/x/text/language"
)

// Language represents a UI language.
type Language string

const (
	EN Language = "en"
	RU Language = "ru"
)

var (
	mu      sync.RWMutex
	current = EN // Default language
)

// Translations for all supported languages.
var translations = map[Language]map[string]string{
	EN: {
		// App
		"app_name": "IME Indicator",

		// Tray
		"tooltip_keyboard":         "%s Keyboard",
		"tray_status":              "Layout: %s",
		"tray_keyboard_settings":   "Keyboard settings...",
		"tray_keyboard_hint":       "Open Windows keyboard settings",
		"tray_startup_folder":      "Open startup folder",
		"tray_startup_folder_hint": "Open the shell:startup folder",
		"tray_autostart":           "Run at startup",
		"tray_autostart_hint":      "Create a shortcut in the startup folder",
		"tray_notifications":       "Notifications",
		"tray_notifications_hint":  "Show notifications",
		"tray_check_update":        "Check for update",
		"tray_check_update_hint":   "Look for a newer release",
		"tray_update_available":    "Update available: %s",
		"tray_hotkey":              "Refresh hotkey: %s",
		"tray_hotkey_hint":         "Choose a hotkey that redraws the icon",
		"tray_about":               "About...",
		"tray_quit":                "Quit",
		"tray_quit_hint":           "Close application",

		// Update
		"update_title":      "Update",
		"update_available":  "Version %s is available.",
		"update_up_to_date": "You are running the latest version.",
		"update_failed":     "Could not check for updates.",
		"update_open":       "Open the download page?",

		// About window
		"about_title":   "About",
		"about_version": "Version %s",
		"about_layout":  "Current layout: %s",
		"about_update":  "Latest release: %s",
		"about_close":   "Close",

		// Hotkey dialog
		"hotkey_none":             "none",
		"hotkey_modifiers_title":  "Refresh hotkey - modifiers",
		"hotkey_modifiers_prompt": "Select modifiers:",
		"hotkey_key_title":        "Refresh hotkey - key",
		"hotkey_key_prompt":       "Select a key:",
		"hotkey_need_modifier":    "Select at least one modifier",

		// Errors
		"error_title":     "Error",
		"error_autostart": "Could not change the startup shortcut",
		"error_open":      "Could not open %s",
		"error_hooks":     "Layout change tracking is unavailable",
	},

	RU: {
		// App
		"app_name": "IME Indicator",

		// Tray
		"tooltip_keyboard":         "Клавиатура: %s",
		"tray_status":              "Раскладка: %s",
		"tray_keyboard_settings":   "Параметры клавиатуры...",
		"tray_keyboard_hint":       "Открыть параметры клавиатуры Windows",
		"tray_startup_folder":      "Открыть папку автозагрузки",
		"tray_startup_folder_hint": "Открыть папку shell:startup",
		"tray_autostart":           "Запускать при входе",
		"tray_autostart_hint":      "Создать ярлык в папке автозагрузки",
		"tray_notifications":       "Уведомления",
		"tray_notifications_hint":  "Показывать уведомления",
		"tray_check_update":        "Проверить обновления",
		"tray_check_update_hint":   "Поискать новую версию",
		"tray_update_available":    "Доступно обновление: %s",
		"tray_hotkey":              "Клавиша обновления: %s",
		"tray_hotkey_hint":         "Выбрать клавишу, которая перерисовывает иконку",
		"tray_about":               "О программе...",
		"tray_quit":                "Выход",
		"tray_quit_hint":           "Закрыть приложение",

		// Update
		"update_title":      "Обновление",
		"update_available":  "Доступна версия %s.",
		"update_up_to_date": "У вас последняя версия.",
		"update_failed":     "Не удалось проверить обновления.",
		"update_open":       "Открыть страницу загрузки?",

		// About window
		"about_title":   "О программе",
		"about_version": "Версия %s",
		"about_layout":  "Текущая раскладка: %s",
		"about_update":  "Последний релиз: %s",
		"about_close":   "Закрыть",

		// Hotkey dialog
		"hotkey_none":             "нет",
		"hotkey_modifiers_title":  "Клавиша обновления - модификаторы",
		"hotkey_modifiers_prompt": "Выберите модификаторы:",
		"hotkey_key_title":        "Клавиша обновления - клавиша",
		"hotkey_key_prompt":       "Выберите клавишу:",
		"hotkey_need_modifier":    "Необходимо выбрать хотя бы один модификатор",

		// Errors
		"error_title":     "Ошибка",
		"error_autostart": "Не удалось изменить ярлык автозагрузки",
		"error_open":      "Не удалось открыть %s",
		"error_hooks":     "Отслеживание смены раскладки недоступно",
	},
}

// T returns the translation for the given key.
func T(key string) string {
	mu.RLock()
	defer mu.RUnlock()

	if strings, ok := translations[current]; ok {
		if s, ok := strings[key]; ok {
			return s
		}
	}
	// Fallback to English, then to the key itself
	if s, ok := translations[EN][key]; ok {
		return s
	}
	return key
}

// Tf formats the translation for key with args.
func Tf(key string, args ...any) string {
	return fmt.Sprintf(T(key), args...)
}

// SetLanguage sets the current UI language. Unknown languages fall back to English.
func SetLanguage(lang Language) {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := translations[lang]; !ok {
		lang = EN
	}
	current = lang
}

// GetLanguage returns the current UI language.
func GetLanguage() Language {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Tag returns the language tag of the current UI language, used to name
// keyboard layouts in the same language as the menu.
func Tag() language.Tag {
	return language.Make(string(GetLanguage()))
}

// AvailableLanguages returns list of supported languages.
func AvailableLanguages() []Language {
	return []Language{EN, RU}
}
