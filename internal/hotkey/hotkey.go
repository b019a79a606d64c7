// Package hotkey регистрирует глобальную горячую клавишу принудительного
// обновления иконки.
package hotkey

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.design/x/hotkey"
	"golang.design/x/hotkey/mainthread"

	"ime-indicator/internal/config"
)

// repeatInterval отсекает повторные нажатия от автоповтора клавиатуры.
const repeatInterval = 300 * time.Millisecond

// Handler обрабатывает события горячей клавиши.
type Handler struct {
	mu      sync.Mutex
	hk      *hotkey.Hotkey
	onPress func()
	stopCh  chan struct{}
}

// New создаёт обработчик горячей клавиши.
func New(onPress func()) *Handler {
	return &Handler{onPress: onPress}
}

// Register регистрирует горячую клавишу, заменяя предыдущую.
// Пустая клавиша только снимает текущую регистрацию.
func (h *Handler) Register(cfg config.HotkeyConfig) error {
	if err := h.Unregister(); err != nil {
		log.Warn().Err(err).Msg("Не удалось снять горячую клавишу")
	}
	if !cfg.Enabled() {
		return nil
	}

	mods := make([]hotkey.Modifier, 0, len(cfg.Modifiers))
	for _, m := range cfg.Modifiers {
		mod, ok := modifierMap[m]
		if !ok {
			return fmt.Errorf("hotkey %s: unknown modifier %q", cfg, m)
		}
		mods = append(mods, mod)
	}
	key, ok := keyMap[cfg.Key]
	if !ok {
		return fmt.Errorf("hotkey %s: unknown key %q", cfg, cfg.Key)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	hk := hotkey.New(mods, key)
	if err := hk.Register(); err != nil {
		return fmt.Errorf("register hotkey %s: %w", cfg, err)
	}

	h.hk = hk
	h.stopCh = make(chan struct{})

	log.Info().Str("hotkey", cfg.String()).Msg("Горячая клавиша зарегистрирована")
	go h.listen(hk, h.stopCh)
	return nil
}

func (h *Handler) listen(hk *hotkey.Hotkey, stopCh chan struct{}) {
	var lastKeydown time.Time
	for {
		select {
		case <-stopCh:
			return
		case _, ok := <-hk.Keydown():
			if !ok {
				return
			}
			now := time.Now()
			if now.Sub(lastKeydown) < repeatInterval {
				continue
			}
			lastKeydown = now
			if h.onPress != nil {
				h.onPress()
			}
		}
	}
}

// Unregister отменяет регистрацию горячей клавиши.
func (h *Handler) Unregister() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.stopCh != nil {
		close(h.stopCh)
		h.stopCh = nil
	}

	if h.hk == nil {
		return nil
	}
	hk := h.hk
	h.hk = nil

	// Unregister может зависнуть, если поток сообщений уже остановлен.
	done := make(chan error, 1)
	go func() {
		done <- hk.Unregister()
	}()
	select {
	case err := <-done:
		return err
	case <-time.After(500 * time.Millisecond):
		log.Warn().Msg("Таймаут снятия горячей клавиши")
		return nil
	}
}

// RunOnMainThread запускает fn, оставляя главный поток для GUI и горячих клавиш.
func RunOnMainThread(fn func()) {
	mainthread.Init(fn)
}

var keyMap = map[string]hotkey.Key{
	"space":  hotkey.KeySpace,
	"return": hotkey.KeyReturn,
	"tab":    hotkey.KeyTab,
	"a":      hotkey.KeyA,
	"b":      hotkey.KeyB,
	"c":      hotkey.KeyC,
	"d":      hotkey.KeyD,
	"e":      hotkey.KeyE,
	"f":      hotkey.KeyF,
	"g":      hotkey.KeyG,
	"h":      hotkey.KeyH,
	"i":      hotkey.KeyI,
	"j":      hotkey.KeyJ,
	"k":      hotkey.KeyK,
	"l":      hotkey.KeyL,
	"m":      hotkey.KeyM,
	"n":      hotkey.KeyN,
	"o":      hotkey.KeyO,
	"p":      hotkey.KeyP,
	"q":      hotkey.KeyQ,
	"r":      hotkey.KeyR,
	"s":      hotkey.KeyS,
	"t":      hotkey.KeyT,
	"u":      hotkey.KeyU,
	"v":      hotkey.KeyV,
	"w":      hotkey.KeyW,
	"x":      hotkey.KeyX,
	"y":      hotkey.KeyY,
	"z":      hotkey.KeyZ,
	"f1":     hotkey.KeyF1,
	"f2":     hotkey.KeyF2,
	"f3":     hotkey.KeyF3,
	"f4":     hotkey.KeyF4,
	"f5":     hotkey.KeyF5,
	"f6":     hotkey.KeyF6,
	"f7":     hotkey.KeyF7,
	"f8":     hotkey.KeyF8,
	"f9":     hotkey.KeyF9,
	"f10":    hotkey.KeyF10,
	"f11":    hotkey.KeyF11,
	"f12":    hotkey.KeyF12,
}
