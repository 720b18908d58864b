package common

import "math"

// idctMap holds the 8-point inverse DCT basis: idctMap[i*8+j] is the
// contribution of frequency i to sample j, scaled by 1/2 (1/(2*sqrt 2)
// for the zero-frequency term).
var idctMap [64]float64

func init() {
	for i := 0; i < 8; i++ {
		c := 0.5
		if i == 0 {
			c = 1.0 / math.Sqrt2 / 2.0
		}
		for j := 0; j < 8; j++ {
			idctMap[i*8+j] = c * math.Cos((2.0*float64(j)+1.0)*float64(i)*math.Pi/16.0)
		}
	}
}

// IDCT performs the separable 2-D inverse DCT on an 8x8 block of
// dequantized coefficients in natural order, in place. Columns are
// transformed first, then rows of the intermediate; the final store
// truncates toward zero rather than rounding, matching reference
// decoders that use the direct double-precision transform.
func IDCT(block *[64]int32) {
	var tmp [64]float64

	for col := 0; col < 8; col++ {
		for i := 0; i < 8; i++ {
			sum := 0.0
			for j := 0; j < 8; j++ {
				sum += float64(block[j*8+col]) * idctMap[j*8+i]
			}
			tmp[i*8+col] = sum
		}
	}

	for row := 0; row < 8; row++ {
		for i := 0; i < 8; i++ {
			sum := 0.0
			for j := 0; j < 8; j++ {
				sum += tmp[row*8+j] * idctMap[j*8+i]
			}
			block[row*8+i] = int32(sum)
		}
	}
}
