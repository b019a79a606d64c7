//go:build linux

package hotkey

import (
	"golang.design/x/hotkey"

	"ime-indicator/internal/config"
)

// На X11 Alt - это Mod1, Win - Mod4.
var modifierMap = map[config.Modifier]hotkey.Modifier{
	config.ModCtrl:  hotkey.ModCtrl,
	config.ModShift: hotkey.ModShift,
	config.ModAlt:   hotkey.Mod1,
	config.ModSuper: hotkey.Mod4,
}
