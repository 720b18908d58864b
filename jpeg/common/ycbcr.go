package common

// YCbCrToRGB converts one sample from YCbCr to RGB. Inputs are still
// centered at -128..127 as produced by the inverse DCT; outputs are
// clamped to 0..255. The arithmetic is done in float64 and truncated,
// which is what keeps the output bit-faithful to reference decoders
// using the same direct conversion.
func YCbCrToRGB(y, cb, cr int32) (r, g, b int32) {
	yf := float64(y)
	cbf := float64(cb)
	crf := float64(cr)

	r = int32(yf + 1.402*crf + 128)
	g = int32((yf-0.114*(yf+1.772*cbf)-0.299*(yf+1.402*crf))/0.587 + 128)
	b = int32(yf + 1.772*cbf + 128)

	r = Clamp(r, 0, 255)
	g = Clamp(g, 0, 255)
	b = Clamp(b, 0, 255)
	return r, g, b
}
