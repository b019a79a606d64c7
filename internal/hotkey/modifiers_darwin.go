//go:build darwin

package hotkey

import (
	"golang.design/x/hotkey"

	"ime-indicator/internal/config"
)

var modifierMap = map[config.Modifier]hotkey.Modifier{
	config.ModCtrl:  hotkey.ModCtrl,
	config.ModShift: hotkey.ModShift,
	config.ModAlt:   hotkey.ModOption,
	config.ModSuper: hotkey.ModCmd,
}
