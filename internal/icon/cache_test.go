package icon

import (
	"errors"
	"testing"

	"ime-indicator/internal/layout"
)

type countingRenderer struct {
	calls int
	err   error
}

func (r *countingRenderer) Render(code layout.Code, dark bool) (*Icon, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return &Icon{Code: code, Dark: dark, Data: []byte(code)}, nil
}

func TestCache_ReturnsSameIcon(t *testing.T) {
	r := &countingRenderer{}
	c := NewCache(r, true)

	first, err := c.GetOrCreate("EN")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	second, err := c.GetOrCreate("EN")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}

	if first != second {
		t.Error("expected the same *Icon for repeated code")
	}
	if r.calls != 1 {
		t.Errorf("render calls = %d, want 1", r.calls)
	}
	if c.Renders() != 1 {
		t.Errorf("Renders() = %d, want 1", c.Renders())
	}
}

func TestCache_DistinctCodes(t *testing.T) {
	r := &countingRenderer{}
	c := NewCache(r, true)

	for _, code := range []layout.Code{"EN", "RU", "EN", "JA", "RU"} {
		if _, err := c.GetOrCreate(code); err != nil {
			t.Fatalf("GetOrCreate(%s): %v", code, err)
		}
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}
	if r.calls != 3 {
		t.Errorf("render calls = %d, want 3", r.calls)
	}
}

func TestCache_ThemeChangeEmptiesCache(t *testing.T) {
	r := &countingRenderer{}
	c := NewCache(r, true)

	old, _ := c.GetOrCreate("EN")
	_, _ = c.GetOrCreate("RU")

	if !c.SetDark(false) {
		t.Fatal("SetDark(false) should report a change")
	}
	if c.Len() != 0 {
		t.Fatalf("Len() after theme change = %d, want 0", c.Len())
	}
	if !old.Released() {
		t.Error("evicted icon was not released")
	}

	fresh, err := c.GetOrCreate("EN")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if fresh.Dark {
		t.Error("icon rendered for the old theme")
	}
	if fresh == old {
		t.Error("expected a new icon after theme change")
	}
}

func TestCache_SameThemeKeepsEntries(t *testing.T) {
	c := NewCache(&countingRenderer{}, false)
	_, _ = c.GetOrCreate("EN")

	if c.SetDark(false) {
		t.Error("SetDark with the same theme should not report a change")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestCache_RenderError(t *testing.T) {
	r := &countingRenderer{err: errors.New("boom")}
	c := NewCache(r, true)

	if _, err := c.GetOrCreate("EN"); err == nil {
		t.Fatal("expected error")
	}
	if c.Len() != 0 {
		t.Errorf("failed render must not be cached, Len() = %d", c.Len())
	}
}

func TestCache_Close(t *testing.T) {
	c := NewCache(&countingRenderer{}, true)
	en, _ := c.GetOrCreate("EN")
	ru, _ := c.GetOrCreate("RU")

	c.Close()

	if c.Len() != 0 {
		t.Errorf("Len() after Close = %d, want 0", c.Len())
	}
	if !en.Released() || !ru.Released() {
		t.Error("Close must release every icon")
	}
	if en.Data != nil {
		t.Error("released icon still holds data")
	}
}
