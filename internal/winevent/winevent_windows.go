//go:build windows

package winevent

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/lxn/win"
	"golang.org/x/sys/windows"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")

	procSetWinEventHook     = user32.NewProc("SetWinEventHook")
	procUnhookWinEvent      = user32.NewProc("UnhookWinEvent")
	procSetWindowsHookExW   = user32.NewProc("SetWindowsHookExW")
	procUnhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	procCallNextHookEx      = user32.NewProc("CallNextHookEx")
	procPostThreadMessageW  = user32.NewProc("PostThreadMessageW")
)

const (
	eventSystemForeground = 0x0003
	winEventOutOfContext  = 0x0000
	whKeyboardLL          = 13
)

// Hooks - установленные хуки и поток, который прокачивает их сообщения.
type Hooks struct {
	handlers Handlers
	threadID uint32
	done     chan struct{}

	// Колбэки держим в полях, чтобы их не собрал GC.
	winEventCallback uintptr
	keyboardCallback uintptr
}

// Start устанавливает хуки в отдельном потоке ОС с собственным циклом сообщений.
func Start(handlers Handlers) (*Hooks, error) {
	h := &Hooks{
		handlers: handlers,
		done:     make(chan struct{}),
	}
	ready := make(chan error, 1)
	go h.loop(ready)
	if err := <-ready; err != nil {
		<-h.done
		return nil, err
	}
	return h, nil
}

func (h *Hooks) loop(ready chan<- error) {
	// Хуки привязаны к потоку, который их установил.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(h.done)

	h.threadID = windows.GetCurrentThreadId()

	h.winEventCallback = windows.NewCallback(func(hook, event, hwnd, idObject, idChild, thread, ts uintptr) uintptr {
		h.handlers.foreground()
		return 0
	})
	weh, _, err := procSetWinEventHook.Call(
		eventSystemForeground,
		eventSystemForeground,
		0,
		h.winEventCallback,
		0,
		0,
		winEventOutOfContext,
	)
	if weh == 0 {
		ready <- fmt.Errorf("SetWinEventHook: %v", err)
		return
	}
	defer procUnhookWinEvent.Call(weh)

	h.keyboardCallback = windows.NewCallback(h.keyboardProc)
	kbd, _, err := procSetWindowsHookExW.Call(whKeyboardLL, h.keyboardCallback, 0, 0)
	if kbd == 0 {
		ready <- fmt.Errorf("SetWindowsHookEx(WH_KEYBOARD_LL): %v", err)
		return
	}
	defer procUnhookWindowsHookEx.Call(kbd)

	ready <- nil

	var msg win.MSG
	for win.GetMessage(&msg, 0, 0, 0) > 0 {
		win.TranslateMessage(&msg)
		win.DispatchMessage(&msg)
	}
}

func (h *Hooks) keyboardProc(nCode, wParam, lParam uintptr) uintptr {
	if int32(nCode) >= 0 {
		h.handlers.keyboard(wParam, (*kbdllHookStruct)(unsafe.Pointer(lParam)))
	}
	ret, _, _ := procCallNextHookEx.Call(0, nCode, wParam, lParam)
	return ret
}

// Stop снимает хуки и завершает поток сообщений.
func (h *Hooks) Stop() {
	if h == nil {
		return
	}
	procPostThreadMessageW.Call(uintptr(h.threadID), win.WM_QUIT, 0, 0)
	<-h.done
}
