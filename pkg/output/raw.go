package output

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/df07/go-diorama-raytracer/pkg/renderer"
)

// Raw frame layout, zstd compressed:
//
//	magic   [4]byte "DRFB"
//	width   uint32 little endian
//	height  uint32 little endian
//	pixels  width*height uint32 little endian, packed 0x00RRGGBB
var rawMagic = [4]byte{'D', 'R', 'F', 'B'}

const (
	maxRawDimension  = 1 << 14
	rawInitialPixels = 1 << 16 // Pixel capacity reserved before any row is read
)

// ErrBadRawFrame is returned when a raw dump has the wrong magic or an implausible size
var ErrBadRawFrame = errors.New("malformed raw frame")

// EncodeRaw writes fb to w in the compressed raw format
func EncodeRaw(w io.Writer, fb *renderer.FrameBuffer) error {
	if err := fb.Validate(); err != nil {
		return err
	}

	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("failed to create zstd encoder: %w", err)
	}

	header := struct {
		Magic         [4]byte
		Width, Height uint32
	}{rawMagic, uint32(fb.Width), uint32(fb.Height)}

	if err := binary.Write(enc, binary.LittleEndian, header); err != nil {
		enc.Close()
		return fmt.Errorf("failed to write raw header: %w", err)
	}
	if err := binary.Write(enc, binary.LittleEndian, fb.Pixels); err != nil {
		enc.Close()
		return fmt.Errorf("failed to write raw pixels: %w", err)
	}
	return enc.Close()
}

// DecodeRaw reads a frame written by EncodeRaw
func DecodeRaw(r io.Reader) (*renderer.FrameBuffer, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	defer dec.Close()

	var header struct {
		Magic         [4]byte
		Width, Height uint32
	}
	if err := binary.Read(dec, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRawFrame, err)
	}
	if header.Magic != rawMagic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrBadRawFrame, header.Magic[:])
	}
	if header.Width > maxRawDimension || header.Height > maxRawDimension {
		return nil, fmt.Errorf("%w: size %dx%d", ErrBadRawFrame, header.Width, header.Height)
	}

	width, height := int(header.Width), int(header.Height)

	// Grow with the rows actually present so a lying header fails before
	// the full frame is allocated
	pixels := make([]uint32, 0, min(width*height, rawInitialPixels))
	row := make([]uint32, width)
	for y := 0; y < height; y++ {
		if err := binary.Read(dec, binary.LittleEndian, row); err != nil {
			return nil, fmt.Errorf("%w: truncated pixels at row %d: %v", ErrBadRawFrame, y, err)
		}
		pixels = append(pixels, row...)
	}

	fb, err := renderer.FrameBufferFromPixels(width, height, pixels)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRawFrame, err)
	}
	return fb, nil
}

// WriteRaw saves fb to path in the compressed raw format
func WriteRaw(path string, fb *renderer.FrameBuffer) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if err := EncodeRaw(file, fb); err != nil {
		return err
	}
	return file.Close()
}

// ReadRaw loads a frame saved by WriteRaw
func ReadRaw(path string) (*renderer.FrameBuffer, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open raw frame: %w", err)
	}
	defer file.Close()

	return DecodeRaw(file)
}
