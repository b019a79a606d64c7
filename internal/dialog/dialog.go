// Package dialog предоставляет GUI диалоги приложения.
package dialog

import (
	"errors"
	"strings"

	"github.com/ncruces/zenity"

	"ime-indicator/internal/config"
	"ime-indicator/internal/i18n"
)

// ErrCanceled возвращается, когда пользователь закрыл диалог.
var ErrCanceled = zenity.ErrCanceled

// ErrNoModifier возвращается, если не выбран ни один модификатор.
var ErrNoModifier = errors.New("no modifier selected")

var modOptions = []string{"Ctrl", "Shift", "Alt", "Win"}

var modValues = []config.Modifier{config.ModCtrl, config.ModShift, config.ModAlt, config.ModSuper}

// KeyNames - клавиши, которые можно назначить на обновление, в порядке списка.
var KeyNames = func() []string {
	keys := []string{"space", "return", "tab"}
	for c := 'a'; c <= 'z'; c++ {
		keys = append(keys, string(c))
	}
	for _, f := range []string{"f1", "f2", "f3", "f4", "f5", "f6", "f7", "f8", "f9", "f10", "f11", "f12"} {
		keys = append(keys, f)
	}
	return keys
}()

// SelectHotkey открывает диалог выбора горячей клавиши.
// Возвращает выбранную конфигурацию или ошибку если пользователь отменил.
func SelectHotkey(current config.HotkeyConfig) (config.HotkeyConfig, error) {
	// Шаг 1: Выбор модификаторов
	selectedMods, err := zenity.ListMultiple(
		i18n.T("hotkey_modifiers_prompt"),
		modOptions,
		zenity.Title(i18n.T("hotkey_modifiers_title")),
		zenity.DefaultItems(modifierLabels(current.Modifiers)...),
	)
	if err != nil {
		return current, err // Пользователь отменил
	}

	newMods := parseModifierLabels(selectedMods)
	if len(newMods) == 0 {
		return current, ErrNoModifier
	}

	// Шаг 2: Выбор клавиши
	labels := make([]string, len(KeyNames))
	for i, k := range KeyNames {
		labels[i] = KeyLabel(k)
	}

	selectedKey, err := zenity.List(
		i18n.T("hotkey_key_prompt"),
		labels,
		zenity.Title(i18n.T("hotkey_key_title")),
		zenity.DefaultItems(KeyLabel(current.Key)),
	)
	if err != nil {
		return current, err // Пользователь отменил
	}

	return config.HotkeyConfig{
		Modifiers: newMods,
		Key:       strings.ToLower(selectedKey),
	}, nil
}

// KeyLabel возвращает подпись клавиши для списка: "Space", "F5", "K".
func KeyLabel(key string) string {
	switch {
	case key == "":
		return ""
	case len(key) == 1:
		return strings.ToUpper(key)
	case key[0] == 'f':
		return strings.ToUpper(key)
	default:
		return strings.ToUpper(key[:1]) + key[1:]
	}
}

func modifierLabels(mods []config.Modifier) []string {
	labels := make([]string, 0, len(mods))
	for _, m := range mods {
		for i, v := range modValues {
			if m == v {
				labels = append(labels, modOptions[i])
				break
			}
		}
	}
	return labels
}

func parseModifierLabels(labels []string) []config.Modifier {
	mods := make([]config.Modifier, 0, len(labels))
	for _, s := range labels {
		for i, opt := range modOptions {
			if s == opt {
				mods = append(mods, modValues[i])
				break
			}
		}
	}
	return mods
}

// ShowInfo показывает информационное сообщение.
func ShowInfo(title, message string) {
	_ = zenity.Info(message, zenity.Title(title))
}

// Ask задаёт вопрос с кнопками OK и Отмена. Возвращает true для OK.
func Ask(title, message string) bool {
	return zenity.Question(message, zenity.Title(title)) == nil
}

// ShowError показывает сообщение об ошибке.
func ShowError(title, message string) {
	_ = zenity.Error(message, zenity.Title(title))
}
