package icon

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/png"
)

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// wrapPNGInICO заворачивает PNG в ICO с одной записью.
// LoadImage принимает PNG внутри ICO начиная с Vista.
func wrapPNGInICO(pngData []byte, w, h int) []byte {
	const headerSize = 6
	const entrySize = 16

	// 0 означает 256 и больше.
	bw, bh := byte(w), byte(h)
	if w >= 256 {
		bw = 0
	}
	if h >= 256 {
		bh = 0
	}

	buf := make([]byte, headerSize+entrySize+len(pngData))

	binary.LittleEndian.PutUint16(buf[0:], 0) // зарезервировано
	binary.LittleEndian.PutUint16(buf[2:], 1) // тип: ICO
	binary.LittleEndian.PutUint16(buf[4:], 1) // число записей

	off := headerSize
	buf[off+0] = bw
	buf[off+1] = bh
	buf[off+2] = 0 // размер палитры
	buf[off+3] = 0
	binary.LittleEndian.PutUint16(buf[off+4:], 1)  // плоскости
	binary.LittleEndian.PutUint16(buf[off+6:], 32) // бит на пиксель
	binary.LittleEndian.PutUint32(buf[off+8:], uint32(len(pngData)))
	binary.LittleEndian.PutUint32(buf[off+12:], headerSize+entrySize)

	copy(buf[headerSize+entrySize:], pngData)
	return buf
}
