// Package winevent подписывается на системные события, после которых
// может смениться раскладка: смена активного окна и отпускание клавиши Win.
package winevent

import "errors"

// ErrUnsupported возвращается на платформах без системных хуков.
var ErrUnsupported = errors.New("system hooks are only supported on Windows")

// Handlers вызываются из потока хуков. Они должны возвращаться сразу:
// долгий обработчик низкоуровневого хука клавиатуры тормозит ввод во всей системе.
type Handlers struct {
	OnForeground func()
	OnMetaKeyUp  func()
}

func (h Handlers) foreground() {
	if h.OnForeground != nil {
		h.OnForeground()
	}
}

func (h Handlers) metaKeyUp() {
	if h.OnMetaKeyUp != nil {
		h.OnMetaKeyUp()
	}
}

const (
	wmKeyUp    = 0x0101
	wmSysKeyUp = 0x0105
	vkLWin     = 0x5B
	vkRWin     = 0x5C
)

// kbdllHookStruct повторяет раскладку KBDLLHOOKSTRUCT.
type kbdllHookStruct struct {
	VkCode      uint32
	ScanCode    uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

// keyboard разбирает сообщение низкоуровневого хука клавиатуры.
// Win+Space переключает раскладку, поэтому ждём отпускания любой Win.
func (h Handlers) keyboard(wParam uintptr, kb *kbdllHookStruct) {
	if kb == nil || (wParam != wmKeyUp && wParam != wmSysKeyUp) {
		return
	}
	if kb.VkCode == vkLWin || kb.VkCode == vkRWin {
		h.metaKeyUp()
	}
}
