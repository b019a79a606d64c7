// Package layout определяет язык активной раскладки клавиатуры и тему ОС.
//
// Все обращения к ОС спрятаны за интерфейсами KeyboardLayoutSource,
// LocaleSource и ThemeSource, поэтому Probe тестируется с фейками.
package layout

import (
	"errors"
	"strings"

	"golang.org/x/text/language"
)

// Code - двухбуквенный код языка в верхнем регистре ("EN", "RU").
type Code string

const (
	// CodeUnknown - код-заглушка, когда раскладку определить не удалось.
	CodeUnknown Code = "XX"

	// DisplayNameUnknown - имя языка для подсказки при ошибке.
	DisplayNameUnknown = "ERROR"
)

// ErrNoForegroundWindow возвращается, когда у ОС нет активного окна.
var ErrNoForegroundWindow = errors.New("no foreground window")

// ErrUnknownLocale возвращается для LCID без известного имени локали.
var ErrUnknownLocale = errors.New("unknown locale")

// Language описывает язык активной раскладки.
type Language struct {
	Code        Code
	Tag         language.Tag
	DisplayName string
}

// Unknown возвращает язык-заглушку для ошибок.
func Unknown() Language {
	return Language{
		Code:        CodeUnknown,
		Tag:         language.Und,
		DisplayName: DisplayNameUnknown,
	}
}

// KeyboardLayoutSource возвращает идентификатор раскладки (HKL)
// потока, которому принадлежит активное окно.
type KeyboardLayoutSource interface {
	ForegroundLayout() (uintptr, error)
}

// LocaleSource переводит LCID в имя локали ("en-US").
type LocaleSource interface {
	LocaleName(lcid uint16) (string, error)
}

// ThemeSource читает системную настройку светлой темы.
type ThemeSource interface {
	SystemUsesLightTheme() (bool, error)
}

// ThemeOverride принудительно задаёт тему вместо системной.
type ThemeOverride string

const (
	ThemeAuto  ThemeOverride = "auto"
	ThemeDark  ThemeOverride = "dark"
	ThemeLight ThemeOverride = "light"
)

// Probe - чистый запрос состояния ОС без побочных эффектов.
type Probe struct {
	layouts  KeyboardLayoutSource
	locales  LocaleSource
	themes   ThemeSource
	override ThemeOverride
	namer    *Namer
}

// Option настраивает Probe.
type Option func(*Probe)

// WithThemeOverride задаёт принудительную тему.
func WithThemeOverride(o ThemeOverride) Option {
	return func(p *Probe) {
		p.override = o
	}
}

// WithNamer задаёт язык, на котором строятся имена раскладок.
func WithNamer(n *Namer) Option {
	return func(p *Probe) {
		p.namer = n
	}
}

// NewProbe создаёт Probe поверх источников ОС.
// locales может быть nil - тогда используется встроенная таблица LCID.
func NewProbe(layouts KeyboardLayoutSource, locales LocaleSource, themes ThemeSource, opts ...Option) *Probe {
	p := &Probe{
		layouts:  layouts,
		locales:  locales,
		themes:   themes,
		override: ThemeAuto,
		namer:    NewNamer(language.English),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewSystemProbe создаёт Probe с платформенными источниками.
func NewSystemProbe(opts ...Option) *Probe {
	layouts, locales, themes := systemSources()
	return NewProbe(layouts, locales, themes, opts...)
}

// CurrentLanguageCode возвращает код языка активной раскладки или "XX".
func (p *Probe) CurrentLanguageCode() Code {
	return p.CurrentLanguage().Code
}

// CurrentLanguage возвращает язык активной раскладки.
// Никогда не возвращает ошибку: любой сбой даёт Unknown().
func (p *Probe) CurrentLanguage() Language {
	if p.layouts == nil {
		return Unknown()
	}
	hkl, err := p.layouts.ForegroundLayout()
	if err != nil {
		return Unknown()
	}
	lang, err := p.Resolve(LCID(hkl))
	if err != nil {
		return Unknown()
	}
	return lang
}

// Resolve переводит LCID в Language.
func (p *Probe) Resolve(lcid uint16) (Language, error) {
	name, err := p.localeName(lcid)
	if err != nil {
		return Unknown(), err
	}
	return p.namer.Language(name)
}

func (p *Probe) localeName(lcid uint16) (string, error) {
	if p.locales != nil {
		if name, err := p.locales.LocaleName(lcid); err == nil && name != "" {
			return name, nil
		}
	}
	return TableLocaleName(lcid)
}

// CurrentThemeIsDark возвращает true для тёмной темы.
// При ошибке чтения настройки считаем тему тёмной.
func (p *Probe) CurrentThemeIsDark() bool {
	switch p.override {
	case ThemeDark:
		return true
	case ThemeLight:
		return false
	}
	if p.themes == nil {
		return true
	}
	light, err := p.themes.SystemUsesLightTheme()
	if err != nil {
		return true
	}
	return !light
}

// LCID выделяет идентификатор локали из младших 16 бит HKL.
func LCID(hkl uintptr) uint16 {
	return uint16(hkl & 0xFFFF)
}

// ParseThemeOverride разбирает значение из конфигурации.
func ParseThemeOverride(s string) ThemeOverride {
	switch ThemeOverride(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeDark:
		return ThemeDark
	case ThemeLight:
		return ThemeLight
	default:
		return ThemeAuto
	}
}
