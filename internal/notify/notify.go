// Package notify предоставляет системные уведомления.
package notify

import (
	"sync/atomic"

	"github.com/gen2brain/beeep"
	"github.com/rs/zerolog/log"

	"ime-indicator/internal/i18n"
)

// Notifier отправляет системные уведомления.
type Notifier struct {
	enabled atomic.Bool
	send    func(title, message, icon string) error
}

// New создаёт новый Notifier.
func New(enabled bool) *Notifier {
	n := &Notifier{send: beeep.Notify}
	n.enabled.Store(enabled)
	return n
}

// SetEnabled включает/выключает уведомления.
func (n *Notifier) SetEnabled(enabled bool) {
	n.enabled.Store(enabled)
}

// Enabled возвращает true, если уведомления включены.
func (n *Notifier) Enabled() bool {
	return n.enabled.Load()
}

// UpdateAvailable сообщает о новой версии.
func (n *Notifier) UpdateAvailable(version string) {
	n.notify(i18n.T("update_title"), i18n.Tf("update_available", version))
}

// Error показывает уведомление об ошибке.
func (n *Notifier) Error(msg string) {
	n.notify(i18n.T("error_title"), msg)
}

func (n *Notifier) notify(title, message string) {
	if !n.Enabled() {
		return
	}
	// Ошибки уведомлений не критичны
	if err := n.send(i18n.T("app_name")+": "+title, message, ""); err != nil {
		log.Warn().Err(err).Msg("Не удалось показать уведомление")
	}
}
