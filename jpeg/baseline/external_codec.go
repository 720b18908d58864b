package baseline

import (
	"fmt"

	"github.com/cocosip/go-dicom/pkg/dicom/transfer"
	"github.com/cocosip/go-dicom/pkg/imaging/codec"
)

// BaselineCodec implements the external codec.Codec interface so the
// decoder can serve as the JPEG Baseline (Process 1) transfer syntax
// handler in a DICOM pipeline.
type BaselineCodec struct {
	transferSyntax *transfer.TransferSyntax
}

// NewBaselineCodec creates a new JPEG Baseline codec
func NewBaselineCodec() *BaselineCodec {
	return &BaselineCodec{
		transferSyntax: transfer.JPEGBaseline8Bit,
	}
}

// Name returns the codec name
func (c *BaselineCodec) Name() string {
	return "JPEG Baseline (Process 1)"
}

// TransferSyntax returns the transfer syntax this codec handles
func (c *BaselineCodec) TransferSyntax() *transfer.TransferSyntax {
	return c.transferSyntax
}

// Encode is not supported; this codec is decode-only
func (c *BaselineCodec) Encode(src *codec.PixelData, dst *codec.PixelData, params codec.Parameters) error {
	return fmt.Errorf("JPEG Baseline encoding is not supported by this codec")
}

// Decode decodes JPEG Baseline data to uncompressed pixel data
func (c *BaselineCodec) Decode(src *codec.PixelData, dst *codec.PixelData, params codec.Parameters) error {
	if src == nil || dst == nil {
		return fmt.Errorf("source and destination PixelData cannot be nil")
	}
	if len(src.Data) == 0 {
		return fmt.Errorf("source pixel data is empty")
	}

	pixelData, width, height, components, err := Decode(src.Data)
	if err != nil {
		return fmt.Errorf("JPEG Baseline decode failed: %w", err)
	}

	if src.Width != 0 && (width != int(src.Width) || height != int(src.Height)) {
		return fmt.Errorf("decoded dimensions (%dx%d) don't match expected (%dx%d)",
			width, height, src.Width, src.Height)
	}

	dst.Data = pixelData
	dst.Width = uint16(width)
	dst.Height = uint16(height)
	dst.NumberOfFrames = src.NumberOfFrames
	dst.BitsAllocated = 8
	dst.BitsStored = 8
	dst.HighBit = 7
	dst.SamplesPerPixel = uint16(components)
	dst.PixelRepresentation = 0
	dst.PlanarConfiguration = 0 // Always interleaved after decode
	if components == 3 {
		dst.PhotometricInterpretation = "RGB"
	} else {
		dst.PhotometricInterpretation = "MONOCHROME2"
	}
	dst.TransferSyntaxUID = transfer.ExplicitVRLittleEndian.UID().UID()

	return nil
}

// RegisterBaselineCodec registers the JPEG Baseline codec with the
// global go-dicom registry
func RegisterBaselineCodec() {
	registry := codec.GetGlobalRegistry()
	registry.RegisterCodec(transfer.JPEGBaseline8Bit, NewBaselineCodec())
}
