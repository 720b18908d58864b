package baseline

import (
	"fmt"

	"github.com/cocosip/go-jpeg-baseline/jpeg/common"
)

// decodeScan walks the destuffed entropy buffer one MCU at a time and
// fills every component block with its quantized coefficients. DC
// prediction carries across MCUs in scan order; a nonzero restart
// interval resets the predictors and byte-aligns the bit cursor every
// restartInterval MCUs (the restart markers themselves were stripped
// during extraction).
func decodeScan(h *Header) ([]MCU, error) {
	mcus := make([]MCU, h.MCURows()*h.MCUColumns())
	b := common.NewBitReader(h.EntropyData)

	var pred [3]int32
	for i := range mcus {
		for c := 0; c < h.NumComponents; c++ {
			comp := &h.Components[c]
			err := decodeBlock(b, &mcus[i].Coef[c], &pred[c],
				&h.DCTables[comp.Td], &h.ACTables[comp.Ta])
			if err != nil {
				return nil, fmt.Errorf("MCU %d, component %d: %w", i, c+1, err)
			}
		}

		if h.RestartInterval != 0 && (i+1)%h.RestartInterval == 0 {
			pred = [3]int32{}
			b.Align()
		}
	}

	return mcus, nil
}

// decodeBlock decodes one 8x8 block of coefficients: the DC difference
// first, then AC coefficients in zig-zag order until end-of-block or
// position 63.
func decodeBlock(b *common.BitReader, block *[64]int32, pred *int32, dcTable, acTable *common.HuffmanTable) error {
	length, err := dcTable.DecodeSymbol(b)
	if err != nil {
		return fmt.Errorf("DC value: %w", err)
	}

	coeff, err := b.ReadBits(int(length))
	if err != nil {
		return fmt.Errorf("DC value: %w", err)
	}
	if length != 0 && coeff < 1<<(length-1) {
		// top bit clear means negative
		coeff -= 1<<length - 1
	}
	*pred += coeff
	block[0] = *pred

	for i := 1; i < 64; i++ {
		symbol, err := acTable.DecodeSymbol(b)
		if err != nil {
			return fmt.Errorf("AC value: %w", err)
		}

		// symbol 0 ends the block, leaving the rest zero
		if symbol == 0 {
			for ; i < 64; i++ {
				block[common.ZigZag[i]] = 0
			}
			return nil
		}

		numZeroes := int(symbol >> 4)
		coeffLength := symbol & 0x0F

		for j := 0; j < numZeroes && i < 64; j++ {
			block[common.ZigZag[i]] = 0
			i++
		}

		if coeffLength > 10 {
			return fmt.Errorf("AC coefficient length %d greater than 10: %w", coeffLength, common.ErrEntropy)
		}

		if coeffLength != 0 {
			if i == 64 {
				return fmt.Errorf("zero run-length exceeded block: %w", common.ErrEntropy)
			}

			coeff, err := b.ReadBits(int(coeffLength))
			if err != nil {
				return fmt.Errorf("AC value: %w", err)
			}
			if coeff < 1<<(coeffLength-1) {
				coeff -= 1<<coeffLength - 1
			}
			block[common.ZigZag[i]] = coeff
		}
	}

	return nil
}
