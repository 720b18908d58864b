package baseline

import (
	"testing"

	"github.com/cocosip/go-dicom/pkg/dicom/transfer"
	"github.com/cocosip/go-dicom/pkg/imaging/codec"
)

func TestBaselineCodecInterface(t *testing.T) {
	baselineCodec := NewBaselineCodec()

	// Verify interface implementation
	var _ codec.Codec = baselineCodec

	name := baselineCodec.Name()
	if name == "" {
		t.Error("Codec name should not be empty")
	}
	t.Logf("Codec name: %s", name)

	ts := baselineCodec.TransferSyntax()
	if ts == nil {
		t.Fatal("Transfer syntax should not be nil")
	}
	if ts.UID().UID() != transfer.JPEGBaseline8Bit.UID().UID() {
		t.Errorf("Transfer syntax UID mismatch: got %s, want %s",
			ts.UID().UID(), transfer.JPEGBaseline8Bit.UID().UID())
	}
}

func TestBaselineCodecDecode(t *testing.T) {
	src := &codec.PixelData{
		Data:           colorFlatJPEG([3]byte{1, 2, 3}),
		Width:          8,
		Height:         8,
		NumberOfFrames: 1,
	}

	baselineCodec := NewBaselineCodec()
	dst := &codec.PixelData{}
	if err := baselineCodec.Decode(src, dst, nil); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if dst.Width != 8 || dst.Height != 8 {
		t.Errorf("Dimensions mismatch: got %dx%d, want 8x8", dst.Width, dst.Height)
	}
	if dst.SamplesPerPixel != 3 {
		t.Errorf("Samples per pixel = %d, want 3", dst.SamplesPerPixel)
	}
	if dst.BitsAllocated != 8 || dst.BitsStored != 8 || dst.HighBit != 7 {
		t.Errorf("Bit layout = %d/%d/%d, want 8/8/7",
			dst.BitsAllocated, dst.BitsStored, dst.HighBit)
	}
	if dst.PhotometricInterpretation != "RGB" {
		t.Errorf("Photometric interpretation = %q, want RGB", dst.PhotometricInterpretation)
	}
	if dst.PlanarConfiguration != 0 {
		t.Errorf("Planar configuration = %d, want 0", dst.PlanarConfiguration)
	}
	if dst.TransferSyntaxUID != transfer.ExplicitVRLittleEndian.UID().UID() {
		t.Errorf("Transfer syntax UID = %q, want Explicit VR Little Endian", dst.TransferSyntaxUID)
	}
	if len(dst.Data) != 8*8*3 {
		t.Errorf("Data length = %d, want %d", len(dst.Data), 8*8*3)
	}
}

func TestBaselineCodecDecodeGrayscale(t *testing.T) {
	src := &codec.PixelData{Data: grayFlatJPEG()}

	dst := &codec.PixelData{}
	if err := NewBaselineCodec().Decode(src, dst, nil); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if dst.SamplesPerPixel != 1 {
		t.Errorf("Samples per pixel = %d, want 1", dst.SamplesPerPixel)
	}
	if dst.PhotometricInterpretation != "MONOCHROME2" {
		t.Errorf("Photometric interpretation = %q, want MONOCHROME2", dst.PhotometricInterpretation)
	}
}

func TestBaselineCodecDecodeErrors(t *testing.T) {
	baselineCodec := NewBaselineCodec()

	if err := baselineCodec.Decode(nil, &codec.PixelData{}, nil); err == nil {
		t.Error("Decode with nil source should fail")
	}
	if err := baselineCodec.Decode(&codec.PixelData{}, &codec.PixelData{}, nil); err == nil {
		t.Error("Decode with empty source data should fail")
	}

	// declared dimensions disagree with the coded frame
	src := &codec.PixelData{
		Data:   grayFlatJPEG(),
		Width:  16,
		Height: 16,
	}
	if err := baselineCodec.Decode(src, &codec.PixelData{}, nil); err == nil {
		t.Error("Decode with mismatched dimensions should fail")
	}
}

func TestBaselineCodecEncodeUnsupported(t *testing.T) {
	src := &codec.PixelData{Data: make([]byte, 64), Width: 8, Height: 8}
	err := NewBaselineCodec().Encode(src, &codec.PixelData{}, nil)
	if err == nil {
		t.Error("Encode should fail, codec is decode-only")
	}
}
