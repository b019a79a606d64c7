// Package about показывает окно с версией и текущей раскладкой.
package about

import (
	"image"
	"image/color"
	"sync"

	"gioui.org/app"
	"gioui.org/font"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"ime-indicator/internal/i18n"
)

// Info - данные для окна.
type Info struct {
	Version  string
	Language string
	Glyph    image.Image
	Dark     bool
	// Latest - тег последнего релиза, пустой, если он неизвестен.
	Latest string
}

type palette struct {
	bg, text, dim, accent color.NRGBA
}

var (
	darkPalette = palette{
		bg:     color.NRGBA{R: 30, G: 30, B: 34, A: 255},
		text:   color.NRGBA{R: 240, G: 240, B: 245, A: 255},
		dim:    color.NRGBA{R: 140, G: 140, B: 150, A: 255},
		accent: color.NRGBA{R: 88, G: 166, B: 255, A: 255},
	}
	lightPalette = palette{
		bg:     color.NRGBA{R: 243, G: 243, B: 243, A: 255},
		text:   color.NRGBA{R: 20, G: 20, B: 24, A: 255},
		dim:    color.NRGBA{R: 100, G: 100, B: 110, A: 255},
		accent: color.NRGBA{R: 0, G: 103, B: 192, A: 255},
	}
)

func paletteFor(dark bool) palette {
	if dark {
		return darkPalette
	}
	return lightPalette
}

// Window представляет окно "О программе". Открыто не больше одного.
type Window struct {
	mu      sync.Mutex
	window  *app.Window
	running bool
	info    Info
	glyph   paint.ImageOp
	closeBt widget.Clickable
}

// New создаёт окно "О программе".
func New() *Window {
	return &Window{}
}

// Show открывает окно. Уже открытое окно обновляется и поднимается наверх.
func (w *Window) Show(info Info) {
	w.mu.Lock()
	w.setInfo(info)
	if w.running {
		win := w.window
		w.mu.Unlock()
		if win != nil {
			win.Perform(system.ActionRaise)
			win.Invalidate()
		}
		return
	}
	w.running = true
	w.window = new(app.Window)
	w.mu.Unlock()

	go w.runEventLoop()
}

// Close закрывает окно, если оно открыто.
func (w *Window) Close() {
	w.mu.Lock()
	win := w.window
	running := w.running
	w.mu.Unlock()

	if running && win != nil {
		win.Perform(system.ActionClose)
	}
}

// setInfo вызывается под mu.
func (w *Window) setInfo(info Info) {
	w.info = info
	if info.Glyph != nil {
		w.glyph = paint.NewImageOp(info.Glyph)
	} else {
		w.glyph = paint.ImageOp{}
	}
}

func (w *Window) snapshot() (Info, paint.ImageOp) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.info, w.glyph
}

func (w *Window) runEventLoop() {
	defer func() {
		w.mu.Lock()
		w.running = false
		w.window = nil
		w.mu.Unlock()
	}()

	w.window.Option(
		app.Title(i18n.T("about_title")),
		app.Size(unit.Dp(320), unit.Dp(240)),
		app.MinSize(unit.Dp(320), unit.Dp(240)),
		app.MaxSize(unit.Dp(320), unit.Dp(240)),
	)

	var ops op.Ops
	th := material.NewTheme()

	for {
		switch e := w.window.Event().(type) {
		case app.DestroyEvent:
			return
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			if w.closeBt.Clicked(gtx) {
				w.window.Perform(system.ActionClose)
			}
			w.draw(gtx, th)
			e.Frame(gtx.Ops)
		}
	}
}

func (w *Window) draw(gtx layout.Context, th *material.Theme) layout.Dimensions {
	info, glyph := w.snapshot()
	pal := paletteFor(info.Dark)

	rect := clip.Rect{Max: gtx.Constraints.Max}
	paint.FillShape(gtx.Ops, pal.bg, rect.Op())

	label := func(size unit.Sp, c color.NRGBA, s string) layout.Widget {
		return func(gtx layout.Context) layout.Dimensions {
			th.Palette.Fg = c
			lbl := material.Label(th, size, s)
			lbl.Alignment = text.Middle
			return lbl.Layout(gtx)
		}
	}

	rows := []layout.FlexChild{
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			if glyph.Size() == (image.Point{}) {
				return layout.Dimensions{}
			}
			return widget.Image{
				Src:   glyph,
				Fit:   widget.Contain,
				Scale: 48 / float32(glyph.Size().Y),
			}.Layout(gtx)
		}),
		layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			th.Palette.Fg = pal.text
			lbl := material.Label(th, unit.Sp(16), i18n.T("app_name"))
			lbl.Font.Weight = font.Medium
			lbl.Alignment = text.Middle
			return lbl.Layout(gtx)
		}),
	}
	for _, line := range Lines(info) {
		rows = append(rows, layout.Rigid(label(unit.Sp(12), pal.dim, line)))
	}
	rows = append(rows,
		layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			btn := material.Button(th, &w.closeBt, i18n.T("about_close"))
			btn.Background = pal.accent
			btn.Color = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			return btn.Layout(gtx)
		}),
	)

	return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical, Alignment: layout.Middle}.Layout(gtx, rows...)
	})
}

// Lines возвращает строки текста под заголовком.
func Lines(info Info) []string {
	lines := []string{i18n.Tf("about_version", info.Version)}
	if info.Language != "" {
		lines = append(lines, i18n.Tf("about_layout", info.Language))
	}
	if info.Latest != "" {
		lines = append(lines, i18n.Tf("about_update", info.Latest))
	}
	return lines
}
