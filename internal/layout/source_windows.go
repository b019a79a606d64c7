//go:build windows

package layout

import (
	"fmt"
	"unsafe"

	"github.com/lxn/win"
	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procGetKeyboardLayout = user32.NewProc("GetKeyboardLayout")
	procLCIDToLocaleName  = kernel32.NewProc("LCIDToLocaleName")
)

const (
	localeNameMaxLength = 85

	personalizeKey  = `Software\Microsoft\Windows\CurrentVersion\Themes\Personalize`
	lightThemeValue = "SystemUsesLightTheme"
)

type windowsLayouts struct{}

// ForegroundLayout возвращает HKL потока активного окна.
func (windowsLayouts) ForegroundLayout() (uintptr, error) {
	hwnd := win.GetForegroundWindow()
	if hwnd == 0 {
		return 0, ErrNoForegroundWindow
	}
	tid := win.GetWindowThreadProcessId(hwnd, nil)
	if tid == 0 {
		return 0, fmt.Errorf("GetWindowThreadProcessId: thread not found")
	}
	hkl, _, _ := procGetKeyboardLayout.Call(uintptr(tid))
	if hkl == 0 {
		return 0, fmt.Errorf("GetKeyboardLayout: empty layout for thread %d", tid)
	}
	return hkl, nil
}

type windowsLocales struct{}

// LocaleName запрашивает имя локали у ОС.
func (windowsLocales) LocaleName(lcid uint16) (string, error) {
	buf := make([]uint16, localeNameMaxLength)
	n, _, err := procLCIDToLocaleName.Call(
		uintptr(lcid),
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(len(buf)),
		0,
	)
	if n == 0 {
		return "", fmt.Errorf("LCIDToLocaleName 0x%04X: %v", lcid, err)
	}
	name := windows.UTF16ToString(buf)
	if name == "" {
		return "", fmt.Errorf("lcid 0x%04X: %w", lcid, ErrUnknownLocale)
	}
	return name, nil
}

type registryTheme struct{}

// SystemUsesLightTheme читает HKCU\...\Personalize\SystemUsesLightTheme.
func (registryTheme) SystemUsesLightTheme() (bool, error) {
	k, err := registry.OpenKey(registry.CURRENT_USER, personalizeKey, registry.QUERY_VALUE)
	if err != nil {
		return false, fmt.Errorf("open personalize key: %w", err)
	}
	defer k.Close()

	v, _, err := k.GetIntegerValue(lightThemeValue)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", lightThemeValue, err)
	}
	return v != 0, nil
}

func systemSources() (KeyboardLayoutSource, LocaleSource, ThemeSource) {
	return windowsLayouts{}, windowsLocales{}, registryTheme{}
}
