//go:build !windows

package winevent

// Hooks на этой платформе не устанавливаются.
type Hooks struct{}

// Start возвращает ErrUnsupported.
func Start(Handlers) (*Hooks, error) {
	return nil, ErrUnsupported
}

// Stop ничего не делает.
func (h *Hooks) Stop() {}
