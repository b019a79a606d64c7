// Package tray предоставляет иконку раскладки в системном трее с меню.
package tray

import (
	"github.com/getlantern/systray"

	"ime-indicator/internal/i18n"
)

// Callbacks содержит обработчики событий меню.
type Callbacks struct {
	OnKeyboardSettings    func()
	OnStartupFolder       func()
	OnAutostartToggle     func() bool
	OnNotificationsToggle func() bool
	OnHotkeyClick         func()
	OnCheckUpdate         func()
	OnUpdateClick         func()
	OnAbout               func()
	OnQuit                func()
}

// Options - начальное состояние флажков меню.
type Options struct {
	Autostart     bool
	Notifications bool
	Hotkey        string
}

// Tray управляет иконкой в системном трее.
// SetIcon и SetTooltip реализуют indicator.IconHost.
type Tray struct {
	callbacks Callbacks
	opts      Options

	status      *systray.MenuItem
	update      *systray.MenuItem
	keyboardBtn *systray.MenuItem
	startupBtn  *systray.MenuItem
	autostart   *systray.MenuItem
	notifyOn    *systray.MenuItem
	hotkeyBtn   *systray.MenuItem
	checkBtn    *systray.MenuItem
	aboutBtn    *systray.MenuItem
	quitBtn     *systray.MenuItem

	language string
	hotkey   string
	latest   string
}

// New создаёт новый Tray.
func New(callbacks Callbacks, opts Options) *Tray {
	return &Tray{
		callbacks: callbacks,
		opts:      opts,
		language:  "...",
		hotkey:    opts.Hotkey,
	}
}

// Run запускает системный трей. Блокирующая функция.
// onReady вызывается после построения меню, onExit - после Quit.
func (t *Tray) Run(onReady, onExit func()) {
	systray.Run(func() {
		t.onReady()
		if onReady != nil {
			onReady()
		}
	}, func() {
		if onExit != nil {
			onExit()
		}
	})
}

func (t *Tray) onReady() {
	systray.SetTitle(i18n.T("app_name"))
	systray.SetTooltip(i18n.T("app_name"))

	// Статус
	t.status = systray.AddMenuItem(i18n.Tf("tray_status", t.language), "")
	t.status.Disable()

	// Появляется, когда найдена новая версия
	t.update = systray.AddMenuItem("", "")
	t.update.Hide()

	systray.AddSeparator()

	t.keyboardBtn = systray.AddMenuItem(i18n.T("tray_keyboard_settings"), i18n.T("tray_keyboard_hint"))
	t.startupBtn = systray.AddMenuItem(i18n.T("tray_startup_folder"), i18n.T("tray_startup_folder_hint"))
	t.autostart = systray.AddMenuItemCheckbox(i18n.T("tray_autostart"), i18n.T("tray_autostart_hint"), t.opts.Autostart)

	systray.AddSeparator()

	t.notifyOn = systray.AddMenuItemCheckbox(i18n.T("tray_notifications"), i18n.T("tray_notifications_hint"), t.opts.Notifications)
	t.hotkeyBtn = systray.AddMenuItem(i18n.Tf("tray_hotkey", t.hotkeyLabel()), i18n.T("tray_hotkey_hint"))
	t.checkBtn = systray.AddMenuItem(i18n.T("tray_check_update"), i18n.T("tray_check_update_hint"))
	t.aboutBtn = systray.AddMenuItem(i18n.T("tray_about"), "")

	systray.AddSeparator()

	// Выход
	t.quitBtn = systray.AddMenuItem(i18n.T("tray_quit"), i18n.T("tray_quit_hint"))

	// Обработка событий меню
	go t.handleMenuEvents()
}

func (t *Tray) handleMenuEvents() {
	for {
		select {
		case <-t.keyboardBtn.ClickedCh:
			call(t.callbacks.OnKeyboardSettings)

		case <-t.startupBtn.ClickedCh:
			call(t.callbacks.OnStartupFolder)

		case <-t.autostart.ClickedCh:
			if t.callbacks.OnAutostartToggle != nil {
				setChecked(t.autostart, t.callbacks.OnAutostartToggle())
			}

		case <-t.notifyOn.ClickedCh:
			if t.callbacks.OnNotificationsToggle != nil {
				setChecked(t.notifyOn, t.callbacks.OnNotificationsToggle())
			}

		case <-t.hotkeyBtn.ClickedCh:
			call(t.callbacks.OnHotkeyClick)

		case <-t.update.ClickedCh:
			call(t.callbacks.OnUpdateClick)

		case <-t.checkBtn.ClickedCh:
			call(t.callbacks.OnCheckUpdate)

		case <-t.aboutBtn.ClickedCh:
			call(t.callbacks.OnAbout)

		// Выход
		case <-t.quitBtn.ClickedCh:
			call(t.callbacks.OnQuit)
			systray.Quit()
			return
		}
	}
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}

func setChecked(item *systray.MenuItem, checked bool) {
	if checked {
		item.Check()
	} else {
		item.Uncheck()
	}
}

// SetIcon устанавливает изображение иконки (ICO на Windows, PNG на остальных).
func (t *Tray) SetIcon(data []byte) {
	systray.SetIcon(data)
}

// SetTooltip устанавливает подсказку иконки.
func (t *Tray) SetTooltip(text string) {
	systray.SetTooltip(text)
}

// SetLanguage показывает имя текущей раскладки в строке статуса.
func (t *Tray) SetLanguage(name string) {
	t.language = name
	if t.status != nil {
		t.status.SetTitle(i18n.Tf("tray_status", name))
	}
}

// SetHotkey обновляет подпись пункта горячей клавиши.
func (t *Tray) SetHotkey(label string) {
	t.hotkey = label
	if t.hotkeyBtn != nil {
		t.hotkeyBtn.SetTitle(i18n.Tf("tray_hotkey", t.hotkeyLabel()))
	}
}

// SetUpdateAvailable показывает пункт с новой версией.
func (t *Tray) SetUpdateAvailable(version string) {
	t.latest = version
	if t.update == nil {
		return
	}
	if version == "" {
		t.update.Hide()
		return
	}
	t.update.SetTitle(i18n.Tf("tray_update_available", version))
	t.update.Show()
}

func (t *Tray) hotkeyLabel() string {
	if t.hotkey == "" {
		return i18n.T("hotkey_none")
	}
	return t.hotkey
}
