//go:build windows

package icon

import "image"

// systray грузит иконки через LoadImage, которому нужен ICO.
func encode(img image.Image) ([]byte, error) {
	pngData, err := encodePNG(img)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	return wrapPNGInICO(pngData, b.Dx(), b.Dy()), nil
}
