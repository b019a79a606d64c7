//go:build !windows

package layout

import "errors"

var errUnsupported = errors.New("keyboard layout probing is only supported on Windows")

type unsupportedLayouts struct{}

func (unsupportedLayouts) ForegroundLayout() (uintptr, error) {
	return 0, errUnsupported
}

type unsupportedTheme struct{}

func (unsupportedTheme) SystemUsesLightTheme() (bool, error) {
	return false, errUnsupported
}

// Без базы локалей ОС используется встроенная таблица.
func systemSources() (KeyboardLayoutSource, LocaleSource, ThemeSource) {
	return unsupportedLayouts{}, nil, unsupportedTheme{}
}
