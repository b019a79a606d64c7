// Package indicator связывает определение раскладки, кэш иконок и трей.
package indicator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bep/debounce"
	"github.com/rs/zerolog/log"

	"ime-indicator/internal/icon"
	"ime-indicator/internal/layout"
)

// DefaultKeyUpDelay - пауза после отпускания Win, за которую ОС успевает
// переключить раскладку.
const DefaultKeyUpDelay = 10 * time.Millisecond

// ErrRefreshing возвращается при повторном входе в Refresh.
var ErrRefreshing = errors.New("refresh already in progress")

// State - состояние контроллера.
type State int

const (
	StateIdle State = iota
	StateRefreshing
)

// Event - внешнее событие, по которому обновляется иконка.
type Event int

const (
	// EventForeground - сменилось активное окно.
	EventForeground Event = iota
	// EventMetaKeyUp - отпущена левая или правая клавиша Win.
	EventMetaKeyUp
	// EventRefresh - явный запрос обновления (старт, горячая клавиша, меню).
	EventRefresh
)

func (e Event) String() string {
	switch e {
	case EventForeground:
		return "foreground"
	case EventMetaKeyUp:
		return "meta-key-up"
	case EventRefresh:
		return "refresh"
	default:
		return fmt.Sprintf("event(%d)", int(e))
	}
}

// Probe отдаёт текущий язык раскладки и тему.
type Probe interface {
	CurrentLanguage() layout.Language
	CurrentThemeIsDark() bool
}

// IconHost - иконка в трее.
type IconHost interface {
	SetIcon(data []byte)
	SetTooltip(text string)
}

// Options настраивает Controller.
type Options struct {
	// KeyUpDelay - задержка перед обновлением после отпускания Win.
	KeyUpDelay time.Duration
	// Tooltip форматирует подсказку по имени языка.
	Tooltip func(displayName string) string
	// OnChange вызывается из цикла событий при смене языка.
	OnChange func(layout.Language)
	// OnIcon вызывается из цикла событий после смены иконки в трее.
	OnIcon func(*icon.Icon)
}

// Controller владеет кэшем иконок и состоянием трея.
// Все методы, кроме Run, вызываются только из цикла событий.
type Controller struct {
	probe    Probe
	cache    *icon.Cache
	host     IconHost
	delay    time.Duration
	tooltip  func(string) string
	onChange func(layout.Language)
	onIcon   func(*icon.Icon)

	state       State
	current     *icon.Icon
	lastTooltip string
	lang        layout.Language
}

// New создаёт контроллер. Кэш начинается пустым в тёмной теме;
// первая же Refresh переводит его на фактическую тему.
func New(probe Probe, renderer icon.Renderer, host IconHost, opts Options) *Controller {
	if opts.KeyUpDelay <= 0 {
		opts.KeyUpDelay = DefaultKeyUpDelay
	}
	if opts.Tooltip == nil {
		opts.Tooltip = func(name string) string {
			return name + " Keyboard"
		}
	}
	return &Controller{
		probe:    probe,
		cache:    icon.NewCache(renderer, true),
		host:     host,
		delay:    opts.KeyUpDelay,
		tooltip:  opts.Tooltip,
		onChange: opts.OnChange,
		onIcon:   opts.OnIcon,
	}
}

// State возвращает текущее состояние.
func (c *Controller) State() State {
	return c.state
}

// Cache возвращает кэш иконок.
func (c *Controller) Cache() *icon.Cache {
	return c.cache
}

// Language возвращает язык, показанный последним обновлением.
func (c *Controller) Language() layout.Language {
	return c.lang
}

// Refresh опрашивает тему и раскладку и обновляет иконку и подсказку.
func (c *Controller) Refresh() error {
	if c.state == StateRefreshing {
		return ErrRefreshing
	}
	c.state = StateRefreshing
	defer func() { c.state = StateIdle }()

	// Тема проверяется первой: кэш не должен смешивать иконки разных тем.
	dark := c.probe.CurrentThemeIsDark()
	if c.cache.SetDark(dark) {
		log.Debug().Bool("dark", dark).Msg("Тема изменилась, кэш иконок очищен")
	}

	lang := c.probe.CurrentLanguage()
	ic, err := c.cache.GetOrCreate(lang.Code)
	if err != nil {
		return fmt.Errorf("refresh %s: %w", lang.Code, err)
	}

	if ic != c.current {
		c.host.SetIcon(ic.Data)
		c.current = ic
		if c.onIcon != nil {
			c.onIcon(ic)
		}
	}
	if tip := c.tooltip(lang.DisplayName); tip != c.lastTooltip {
		c.host.SetTooltip(tip)
		c.lastTooltip = tip
	}

	if lang.Code != c.lang.Code || lang.DisplayName != c.lang.DisplayName {
		c.lang = lang
		log.Debug().Str("code", string(lang.Code)).Str("name", lang.DisplayName).Msg("Раскладка")
		if c.onChange != nil {
			c.onChange(lang)
		}
	}
	return nil
}

// Run - цикл событий. Обновления выполняются строго последовательно;
// отложенное обновление после Win возвращается в этот же цикл.
// При выходе освобождает кэш.
func (c *Controller) Run(ctx context.Context, events <-chan Event) error {
	defer c.cache.Close()

	// Новое отпускание Win отменяет ещё не сработавший таймер.
	delayed := make(chan struct{}, 1)
	schedule := debounce.New(c.delay)

	c.refresh(EventRefresh)

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if ev == EventMetaKeyUp {
				schedule(func() {
					select {
					case delayed <- struct{}{}:
					default:
					}
				})
				continue
			}
			c.refresh(ev)

		case <-delayed:
			c.refresh(EventMetaKeyUp)
		}
	}
}

func (c *Controller) refresh(ev Event) {
	if err := c.Refresh(); err != nil {
		log.Error().Err(err).Stringer("event", ev).Msg("Не удалось обновить иконку")
	}
}
