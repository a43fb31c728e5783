package renderer

import (
	"errors"
	"fmt"
	"image"

	"github.com/df07/go-diorama-raytracer/pkg/core"
)

// ErrBufferSize is returned when a frame buffer cannot hold its declared size
var ErrBufferSize = errors.New("invalid frame buffer size")

// DefaultBackground is the color a new frame buffer clears to
var DefaultBackground = core.ColorFromHex(0x3377ff)

// FrameBuffer is a row-major grid of 0xRRGGBB pixels. Distinct rows may be
// written from different goroutines; a single row must not be shared.
type FrameBuffer struct {
	Width      int
	Height     int
	Pixels     []uint32
	background uint32
}

// NewFrameBuffer allocates a width x height buffer cleared to DefaultBackground
func NewFrameBuffer(width, height int) (*FrameBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBufferSize, width, height)
	}
	fb := &FrameBuffer{
		Width:      width,
		Height:     height,
		Pixels:     make([]uint32, width*height),
		background: DefaultBackground.Hex(),
	}
	fb.Clear()
	return fb, nil
}

// FrameBufferFromPixels wraps an existing row-major pixel slice without copying
func FrameBufferFromPixels(width, height int, pixels []uint32) (*FrameBuffer, error) {
	fb := &FrameBuffer{
		Width:      width,
		Height:     height,
		Pixels:     pixels,
		background: DefaultBackground.Hex(),
	}
	if err := fb.Validate(); err != nil {
		return nil, err
	}
	return fb, nil
}

// Validate reports whether the pixel slice matches the declared dimensions
func (fb *FrameBuffer) Validate() error {
	if fb == nil {
		return fmt.Errorf("%w: nil buffer", ErrBufferSize)
	}
	if fb.Width <= 0 || fb.Height <= 0 || len(fb.Pixels) != fb.Width*fb.Height {
		return fmt.Errorf("%w: %dx%d with %d pixels", ErrBufferSize, fb.Width, fb.Height, len(fb.Pixels))
	}
	return nil
}

// Put writes a packed pixel; out-of-range coordinates are ignored
func (fb *FrameBuffer) Put(x, y int, pixel uint32) {
	if x >= 0 && x < fb.Width && y >= 0 && y < fb.Height {
		fb.Pixels[y*fb.Width+x] = pixel
	}
}

// Set writes a color at (x, y)
func (fb *FrameBuffer) Set(x, y int, c core.Color) {
	fb.Put(x, y, c.Hex())
}

// At returns the packed pixel at (x, y) and whether the coordinates are in range
func (fb *FrameBuffer) At(x, y int) (uint32, bool) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return 0, false
	}
	return fb.Pixels[y*fb.Width+x], true
}

// Row returns row y as a slice aliasing the buffer
func (fb *FrameBuffer) Row(y int) []uint32 {
	start := y * fb.Width
	return fb.Pixels[start : start+fb.Width]
}

// WriteRow replaces row y with the given pixels
func (fb *FrameBuffer) WriteRow(y int, row []uint32) {
	copy(fb.Row(y), row)
}

// Fill sets every pixel
func (fb *FrameBuffer) Fill(pixel uint32) {
	for i := range fb.Pixels {
		fb.Pixels[i] = pixel
	}
}

// SetBackground changes the color used by Clear
func (fb *FrameBuffer) SetBackground(c core.Color) {
	fb.background = c.Hex()
}

// Clear fills the buffer with the background color
func (fb *FrameBuffer) Clear() {
	fb.Fill(fb.background)
}

// ToImage converts the buffer to an opaque RGBA image
func (fb *FrameBuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			p := fb.Pixels[y*fb.Width+x]
			i := img.PixOffset(x, y)
			img.Pix[i+0] = uint8(p >> 16)
			img.Pix[i+1] = uint8(p >> 8)
			img.Pix[i+2] = uint8(p)
			img.Pix[i+3] = 255
		}
	}
	return img
}

// UnpackColor converts a packed 0xRRGGBB pixel back to a color
func UnpackColor(pixel uint32) core.Color {
	return core.ColorFromHex(pixel)
}
