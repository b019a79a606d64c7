package icon

import (
	"fmt"

	"ime-indicator/internal/layout"
)

// Cache хранит иконки по кодам языков для одной темы.
// При смене темы все записи удаляются до добавления новой.
//
// Cache без блокировок, им владеет цикл индикатора.
type Cache struct {
	renderer Renderer
	dark     bool
	entries  map[layout.Code]*Icon
	renders  int
}

// NewCache создаёт пустой кэш для заданной темы.
func NewCache(r Renderer, dark bool) *Cache {
	return &Cache{
		renderer: r,
		dark:     dark,
		entries:  make(map[layout.Code]*Icon),
	}
}

// GetOrCreate возвращает иконку для code, при промахе рисует её.
func (c *Cache) GetOrCreate(code layout.Code) (*Icon, error) {
	if ic, ok := c.entries[code]; ok {
		return ic, nil
	}
	ic, err := c.renderer.Render(code, c.dark)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", code, err)
	}
	c.renders++
	c.entries[code] = ic
	return ic, nil
}

// Invalidate освобождает и удаляет все записи.
func (c *Cache) Invalidate() {
	for code, ic := range c.entries {
		ic.Release()
		delete(c.entries, code)
	}
}

// SetDark переключает кэш на тему и сообщает, сменилась ли она.
// При смене кэш сначала очищается.
func (c *Cache) SetDark(dark bool) bool {
	if dark == c.dark {
		return false
	}
	c.Invalidate()
	c.dark = dark
	return true
}

// Dark - тема, для которой нарисованы записи.
func (c *Cache) Dark() bool {
	return c.dark
}

// Len возвращает число иконок в кэше.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Renders возвращает, сколько иконок кэш уже нарисовал.
func (c *Cache) Renders() int {
	return c.renders
}

// Close освобождает все иконки. Вызывается при завершении.
func (c *Cache) Close() {
	c.Invalidate()
}
