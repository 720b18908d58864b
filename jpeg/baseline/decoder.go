package baseline

import (
	"bytes"

	"github.com/cocosip/go-jpeg-baseline/jpeg/common"
)

// MCU is one minimum coded unit: an 8x8 block per component. Coef
// holds signed frequency coefficients, rewritten in place with spatial
// samples by the inverse transform; Samp holds the final clamped 0-255
// channel values written by the color stage. Keeping the two in
// separate typed buffers avoids the representation games a shared
// buffer would need.
type MCU struct {
	Coef [3][64]int32
	Samp [3][64]uint8
}

// Image is the decoded block grid: MCUs in row-major MCU order, each
// holding NumComponents channels of 64 samples in raster order within
// the block. The pixel at (x, y) lives in MCU (y/8)*MCUColumns+(x/8)
// at sample position (y%8)*8+(x%8).
type Image struct {
	MCUs          []MCU
	Width         int
	Height        int
	NumComponents int
}

// MCUColumns returns the number of MCUs per row
func (img *Image) MCUColumns() int {
	return common.DivCeil(img.Width, 8)
}

// MCURows returns the number of MCU rows
func (img *Image) MCURows() int {
	return common.DivCeil(img.Height, 8)
}

// DecodeImage decodes a baseline JPEG stream into its block grid. The
// pipeline is strictly sequential: header parsing, entropy decoding,
// dequantization, inverse transform, color conversion. Any failure
// discards the whole decode.
func DecodeImage(data []byte) (*Image, error) {
	header, err := ReadHeader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	mcus, err := decodeScan(header)
	if err != nil {
		return nil, err
	}

	dequantize(header, mcus)
	inverseTransform(header, mcus)
	convertColor(header, mcus)

	return &Image{
		MCUs:          mcus,
		Width:         header.Width,
		Height:        header.Height,
		NumComponents: header.NumComponents,
	}, nil
}

// Decode decodes baseline JPEG data into interleaved row-major pixel
// samples (RGB for color, single channel for grayscale)
func Decode(data []byte) (pixelData []byte, width, height, components int, err error) {
	img, err := DecodeImage(data)
	if err != nil {
		return nil, 0, 0, 0, err
	}

	mcuCols := img.MCUColumns()
	pixelData = make([]byte, img.Width*img.Height*img.NumComponents)
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			mcu := &img.MCUs[(y/8)*mcuCols+x/8]
			sample := (y%8)*8 + x%8
			offset := (y*img.Width + x) * img.NumComponents
			for c := 0; c < img.NumComponents; c++ {
				pixelData[offset+c] = mcu.Samp[c][sample]
			}
		}
	}

	return pixelData, img.Width, img.Height, img.NumComponents, nil
}

// dequantize multiplies every coefficient, at its zig-zag scan
// position, by the component's quantization table and leaves the
// product at the coefficient's natural position
func dequantize(h *Header, mcus []MCU) {
	for i := range mcus {
		for c := 0; c < h.NumComponents; c++ {
			qt := &h.QuantTables[h.Components[c].Tq]
			block := &mcus[i].Coef[c]
			for k := 0; k < 64; k++ {
				block[common.ZigZag[k]] *= qt.Table[k]
			}
		}
	}
}

// inverseTransform applies the 2-D inverse DCT to every block
func inverseTransform(h *Header, mcus []MCU) {
	for i := range mcus {
		for c := 0; c < h.NumComponents; c++ {
			common.IDCT(&mcus[i].Coef[c])
		}
	}
}

// convertColor produces the final clamped samples. Color images map
// YCbCr to RGB per sample; grayscale images skip the conversion and
// only undo the -128 level shift.
func convertColor(h *Header, mcus []MCU) {
	if h.NumComponents == 1 {
		for i := range mcus {
			for j := 0; j < 64; j++ {
				mcus[i].Samp[0][j] = uint8(common.Clamp(mcus[i].Coef[0][j]+128, 0, 255))
			}
		}
		return
	}

	for i := range mcus {
		mcu := &mcus[i]
		for j := 0; j < 64; j++ {
			r, g, b := common.YCbCrToRGB(mcu.Coef[0][j], mcu.Coef[1][j], mcu.Coef[2][j])
			mcu.Samp[0][j] = uint8(r)
			mcu.Samp[1][j] = uint8(g)
			mcu.Samp[2][j] = uint8(b)
		}
	}
}
