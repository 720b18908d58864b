// Package bmp writes a decoded block grid as a 24-bit BMP file.
package bmp

import (
	"bufio"
	"io"

	"github.com/cocosip/go-jpeg-baseline/jpeg/baseline"
)

const (
	fileHeaderSize = 14
	coreHeaderSize = 12
)

// Write emits img as a BMP with a BITMAPCOREHEADER: rows bottom-up,
// 3 bytes per pixel in B,G,R order, each row zero-padded to a 4-byte
// boundary. Grayscale images repeat the single channel across all
// three bytes.
func Write(w io.Writer, img *baseline.Image) error {
	bw := bufio.NewWriter(w)

	padding := (4 - (img.Width*3)%4) % 4
	size := fileHeaderSize + coreHeaderSize + img.Height*img.Width*3 + img.Height*padding

	bw.WriteByte('B')
	bw.WriteByte('M')
	putUint32(bw, uint32(size))
	putUint32(bw, 0)
	putUint32(bw, fileHeaderSize+coreHeaderSize)
	putUint32(bw, coreHeaderSize)
	putUint16(bw, uint16(img.Width))
	putUint16(bw, uint16(img.Height))
	putUint16(bw, 1)  // planes
	putUint16(bw, 24) // bits per pixel

	mcuCols := img.MCUColumns()
	for y := img.Height - 1; y >= 0; y-- {
		mcuRow := y / 8
		pixelRow := y % 8
		for x := 0; x < img.Width; x++ {
			mcu := &img.MCUs[mcuRow*mcuCols+x/8]
			pixel := pixelRow*8 + x%8
			if img.NumComponents == 3 {
				bw.WriteByte(mcu.Samp[2][pixel])
				bw.WriteByte(mcu.Samp[1][pixel])
				bw.WriteByte(mcu.Samp[0][pixel])
			} else {
				v := mcu.Samp[0][pixel]
				bw.WriteByte(v)
				bw.WriteByte(v)
				bw.WriteByte(v)
			}
		}
		for i := 0; i < padding; i++ {
			bw.WriteByte(0)
		}
	}

	return bw.Flush()
}

func putUint16(w *bufio.Writer, v uint16) {
	w.WriteByte(byte(v))
	w.WriteByte(byte(v >> 8))
}

func putUint32(w *bufio.Writer, v uint32) {
	w.WriteByte(byte(v))
	w.WriteByte(byte(v >> 8))
	w.WriteByte(byte(v >> 16))
	w.WriteByte(byte(v >> 24))
}
