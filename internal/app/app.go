// Package app связывает трей, системные хуки и контроллер иконки.
package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"ime-indicator/internal/about"
	"ime-indicator/internal/config"
	"ime-indicator/internal/dialog"
	"ime-indicator/internal/hotkey"
	"ime-indicator/internal/i18n"
	"ime-indicator/internal/icon"
	"ime-indicator/internal/indicator"
	"ime-indicator/internal/layout"
	"ime-indicator/internal/notify"
	"ime-indicator/internal/shell"
	"ime-indicator/internal/tray"
	"ime-indicator/internal/update"
	"ime-indicator/internal/winevent"
)

const (
	// ShortcutName - имя ярлыка в папке автозагрузки.
	ShortcutName = "IME Indicator"

	updateTimeout = 30 * time.Second
)

var _ indicator.IconHost = (*tray.Tray)(nil)

// App представляет главное приложение.
type App struct {
	config     *config.Config
	version    string
	controller *indicator.Controller
	events     chan indicator.Event
	hotkey     *hotkey.Handler
	notifier   *notify.Notifier
	autostart  *shell.Autostart
	checker    *update.Checker
	tray       *tray.Tray
	aboutWin   *about.Window

	hooks  *winevent.Hooks
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once

	// Состояние для окна "О программе", пишется из цикла событий.
	mu       sync.Mutex
	language string
	glyph    image.Image
	dark     bool
	latest   string
	// latestURL - страница найденного релиза.
	latestURL string
}

// New создаёт приложение по конфигурации.
func New(cfg *config.Config, version string) (*App, error) {
	i18n.SetLanguage(i18n.Language(cfg.UILanguage()))

	probe := layout.NewSystemProbe(
		layout.WithThemeOverride(layout.ParseThemeOverride(cfg.Theme())),
		layout.WithNamer(layout.NewNamer(i18n.Tag())),
	)

	renderer, err := NewRenderer(cfg)
	if err != nil {
		return nil, err
	}

	exePath, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("locate executable: %w", err)
	}

	a := &App{
		config:    cfg,
		version:   version,
		events:    make(chan indicator.Event, 16),
		notifier:  notify.New(cfg.NotificationsEnabled()),
		autostart: shell.NewAutostart(ShortcutName, exePath, ""),
		checker:   update.NewChecker(cfg.ReleaseURL(), version),
		aboutWin:  about.New(),
	}

	hk := cfg.RefreshHotkey()
	hkLabel := ""
	if hk.Enabled() {
		hkLabel = hk.String()
	}

	a.tray = tray.New(tray.Callbacks{
		OnKeyboardSettings: func() {
			a.open(shell.KeyboardSettingsURI, shell.OpenKeyboardSettings)
		},
		OnStartupFolder: func() {
			a.open(shell.StartupFolderURI, shell.OpenStartupFolder)
		},
		OnAutostartToggle:     a.toggleAutostart,
		OnNotificationsToggle: a.toggleNotifications,
		OnHotkeyClick: func() {
			go a.selectHotkey()
		},
		OnCheckUpdate: func() {
			go a.checkUpdate(true)
		},
		OnUpdateClick: func() {
			page := a.updatePage()
			a.open(page, func() error { return shell.Open(page) })
		},
		OnAbout: func() {
			a.aboutWin.Show(a.aboutInfo())
		},
		OnQuit: func() {
			log.Info().Msg("Выход по команде из меню")
		},
	}, tray.Options{
		Autostart:     a.autostart.Enabled(),
		Notifications: cfg.NotificationsEnabled(),
		Hotkey:        hkLabel,
	})

	a.controller = indicator.New(probe, renderer, a.tray, indicator.Options{
		KeyUpDelay: cfg.KeyUpDelay(),
		Tooltip: func(name string) string {
			return i18n.Tf("tooltip_keyboard", name)
		},
		OnChange: a.onLanguage,
		OnIcon:   a.onIcon,
	})

	a.hotkey = hotkey.New(func() {
		a.post(indicator.EventRefresh)
	})

	return a, nil
}

// NewRenderer создаёт рендерер глифов по настройкам шрифта и размера.
func NewRenderer(cfg *config.Config) (*icon.GlyphRenderer, error) {
	ttf, err := icon.LoadFont(cfg.FontPath())
	if err != nil {
		return nil, err
	}
	return icon.NewGlyphRenderer(cfg.IconSize(), ttf)
}

// Run запускает трей. Блокирующая функция, возвращается после выхода.
func (a *App) Run() {
	a.tray.Run(a.onReady, a.Close)
}

func (a *App) onReady() {
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.done = make(chan struct{})

	go func() {
		defer close(a.done)
		if err := a.controller.Run(ctx, a.events); err != nil {
			log.Error().Err(err).Msg("Цикл событий завершился с ошибкой")
		}
	}()

	hooks, err := winevent.Start(winevent.Handlers{
		OnForeground: func() { a.post(indicator.EventForeground) },
		OnMetaKeyUp:  func() { a.post(indicator.EventMetaKeyUp) },
	})
	switch {
	case errors.Is(err, winevent.ErrUnsupported):
		log.Warn().Msg("Системные хуки недоступны, иконка обновляется только по горячей клавише")
	case err != nil:
		log.Error().Err(err).Msg("Не удалось установить системные хуки")
		a.notifier.Error(i18n.T("error_hooks"))
	default:
		a.hooks = hooks
	}

	if hk := a.config.RefreshHotkey(); hk.Enabled() {
		if err := a.hotkey.Register(hk); err != nil {
			log.Error().Err(err).Msg("Ошибка регистрации горячей клавиши")
		}
	}

	if a.config.CheckUpdates() {
		go a.checkUpdate(false)
	}

	log.Info().Str("version", a.version).Msg("Индикатор раскладки запущен")
}

// post отправляет событие в цикл, не блокируя поток хуков.
// Переполненная очередь означает, что обновление и так впереди.
func (a *App) post(ev indicator.Event) {
	select {
	case a.events <- ev:
	default:
		log.Debug().Stringer("event", ev).Msg("Очередь событий заполнена")
	}
}

func (a *App) onLanguage(lang layout.Language) {
	a.tray.SetLanguage(lang.DisplayName)

	a.mu.Lock()
	a.language = lang.DisplayName
	a.mu.Unlock()
}

func (a *App) onIcon(ic *icon.Icon) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if ic.Image != nil {
		a.glyph = ic.Image
	}
	a.dark = ic.Dark
}

func (a *App) aboutInfo() about.Info {
	a.mu.Lock()
	defer a.mu.Unlock()

	return about.Info{
		Version:  a.version,
		Language: a.language,
		Glyph:    a.glyph,
		Dark:     a.dark,
		Latest:   a.latest,
	}
}

func (a *App) open(target string, fn func() error) {
	if err := fn(); err != nil {
		log.Error().Err(err).Str("target", target).Msg("Не удалось открыть")
		dialog.ShowError(i18n.T("error_title"), i18n.Tf("error_open", target))
	}
}

func (a *App) toggleAutostart() bool {
	enabled, err := a.autostart.Toggle()
	if err != nil {
		log.Error().Err(err).Str("path", a.autostart.Path()).Msg("Не удалось изменить автозапуск")
		dialog.ShowError(i18n.T("error_title"), i18n.T("error_autostart"))
	}
	return enabled
}

func (a *App) toggleNotifications() bool {
	enabled := a.config.ToggleNotifications()
	a.notifier.SetEnabled(enabled)
	return enabled
}

func (a *App) selectHotkey() {
	hk, err := dialog.SelectHotkey(a.config.RefreshHotkey())
	switch {
	case errors.Is(err, dialog.ErrCanceled):
		return
	case errors.Is(err, dialog.ErrNoModifier):
		dialog.ShowError(i18n.T("error_title"), i18n.T("hotkey_need_modifier"))
		return
	case err != nil:
		log.Error().Err(err).Msg("Ошибка диалога горячей клавиши")
		return
	}

	if err := a.hotkey.Register(hk); err != nil {
		log.Error().Err(err).Msg("Ошибка регистрации горячей клавиши")
		dialog.ShowError(i18n.T("error_title"), err.Error())
		return
	}
	a.config.SetRefreshHotkey(hk)
	a.tray.SetHotkey(hk.String())
}

// checkUpdate проверяет обновления. При ручной проверке результат
// показывается в диалоге, при автоматической - только уведомление о новой версии.
func (a *App) checkUpdate(manual bool) {
	ctx, cancel := context.WithTimeout(context.Background(), updateTimeout)
	defer cancel()

	res, err := a.checker.Check(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Не удалось проверить обновления")
	}

	switch res.Status {
	case update.StatusNeedsUpdate:
		tag := res.Latest.TagName
		log.Info().Str("latest", tag).Msg("Доступна новая версия")

		a.mu.Lock()
		a.latest = tag
		a.latestURL = res.Latest.HTMLURL
		a.mu.Unlock()
		a.tray.SetUpdateAvailable(tag)

		if !manual {
			a.notifier.UpdateAvailable(tag)
			return
		}
		msg := i18n.Tf("update_available", tag) + "\n" + i18n.T("update_open")
		if res.Latest.HTMLURL != "" && dialog.Ask(i18n.T("update_title"), msg) {
			a.open(res.Latest.HTMLURL, func() error { return shell.Open(res.Latest.HTMLURL) })
		}

	case update.StatusUpToDate:
		a.mu.Lock()
		a.latest = res.Latest.TagName
		a.mu.Unlock()
		if manual {
			dialog.ShowInfo(i18n.T("update_title"), i18n.T("update_up_to_date"))
		}

	default:
		if manual {
			dialog.ShowError(i18n.T("update_title"), i18n.T("update_failed"))
		}
	}
}

// updatePage возвращает страницу новой версии, а без неё - общий список релизов.
func (a *App) updatePage() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.latestURL != "" {
		return a.latestURL
	}
	return update.ReleasesPage(a.config.ReleaseURL())
}

// Close останавливает хуки и цикл событий. Повторные вызовы ничего не делают.
func (a *App) Close() {
	a.once.Do(func() {
		if a.hooks != nil {
			a.hooks.Stop()
		}
		if err := a.hotkey.Unregister(); err != nil {
			log.Warn().Err(err).Msg("Не удалось снять горячую клавишу")
		}
		a.aboutWin.Close()

		if a.cancel != nil {
			a.cancel()
			<-a.done
		}
		log.Info().Msg("Индикатор раскладки остановлен")
	})
}
