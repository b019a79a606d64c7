//go:build !windows

package icon

import "image"

func encode(img image.Image) ([]byte, error) {
	return encodePNG(img)
}
