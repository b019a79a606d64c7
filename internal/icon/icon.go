// Package icon рисует глифы языков для иконки в трее и кэширует их.
package icon

import (
	"image"

	"ime-indicator/internal/layout"
)

// Icon - нарисованный глиф вместе с его кодировкой для трея.
// Иконкой владеет создавший её Cache.
type Icon struct {
	Code  layout.Code
	Dark  bool
	Image *image.NRGBA
	// Data передаётся в трей: ICO на Windows, PNG на остальных системах.
	Data []byte

	released bool
}

// Release освобождает пиксели и закодированные данные.
// После этого иконку нельзя назначать трею.
func (i *Icon) Release() {
	i.Image = nil
	i.Data = nil
	i.released = true
}

// Released сообщает, вызывался ли Release.
func (i *Icon) Released() bool {
	return i.released
}

// Renderer рисует иконку для кода языка и темы.
type Renderer interface {
	Render(code layout.Code, dark bool) (*Icon, error)
}
