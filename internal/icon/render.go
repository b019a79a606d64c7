package icon

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"ime-indicator/internal/layout"
)

// DefaultSize - сторона квадратной иконки в пикселях.
const DefaultSize = 128

// Ширина глифа Go Mono 0.6em, текст занимает до 94% ширины иконки.
const (
	glyphAdvanceEm = 0.6
	usableWidth    = 0.94
	maxEmRatio     = 0.8
)

// GlyphRenderer рисует код языка по центру прозрачного квадрата.
// Не безопасен для конкурентного использования.
type GlyphRenderer struct {
	font  *opentype.Font
	size  int
	faces map[int]font.Face
}

// LoadFont читает TrueType шрифт из path.
// Пустой path означает встроенный Go Mono.
func LoadFont(path string) ([]byte, error) {
	if path == "" {
		return gomono.TTF, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	return data, nil
}

// NewGlyphRenderer разбирает ttf один раз. При nil используется Go Mono,
// при size <= 0 - DefaultSize.
func NewGlyphRenderer(size int, ttf []byte) (*GlyphRenderer, error) {
	if size <= 0 {
		size = DefaultSize
	}
	if ttf == nil {
		ttf = gomono.TTF
	}
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &GlyphRenderer{
		font:  f,
		size:  size,
		faces: make(map[int]font.Face),
	}, nil
}

// Size возвращает сторону иконки в пикселях.
func (r *GlyphRenderer) Size() int {
	return r.size
}

// Render рисует code белым для тёмной темы и чёрным для светлой.
func (r *GlyphRenderer) Render(code layout.Code, dark bool) (*Icon, error) {
	text := string(code)
	face, err := r.face(utf8.RuneCountInString(text))
	if err != nil {
		return nil, err
	}

	img := image.NewNRGBA(image.Rect(0, 0, r.size, r.size))
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(Foreground(dark)),
		Face: face,
	}

	m := face.Metrics()
	capHeight := m.CapHeight
	if capHeight <= 0 {
		capHeight = m.Ascent * 7 / 10
	}
	advance := d.MeasureString(text)
	d.Dot = fixed.Point26_6{
		X: (fixed.I(r.size) - advance) / 2,
		Y: (fixed.I(r.size) + capHeight) / 2,
	}
	d.DrawString(text)

	data, err := encode(img)
	if err != nil {
		return nil, fmt.Errorf("encode icon %s: %w", code, err)
	}

	return &Icon{
		Code:  code,
		Dark:  dark,
		Image: img,
		Data:  data,
	}, nil
}

// Foreground возвращает цвет глифа для темы.
func Foreground(dark bool) color.NRGBA {
	if dark {
		return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	return color.NRGBA{A: 0xff}
}

// face подбирает размер шрифта, чтобы n глифов уместились по ширине.
func (r *GlyphRenderer) face(n int) (font.Face, error) {
	if n < 2 {
		n = 2
	}
	if f, ok := r.faces[n]; ok {
		return f, nil
	}

	size := float64(r.size) * usableWidth / (glyphAdvanceEm * float64(n))
	if limit := float64(r.size) * maxEmRatio; size > limit {
		size = limit
	}

	f, err := opentype.NewFace(r.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create font face: %w", err)
	}
	r.faces[n] = f
	return f, nil
}
