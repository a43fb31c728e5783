package loaders

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"io"
	"os"

	_ "golang.org/x/image/bmp" // BMP decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // TIFF decoder
	_ "golang.org/x/image/webp" // WebP decoder

	"github.com/df07/go-diorama-raytracer/pkg/core"
	"github.com/df07/go-diorama-raytracer/pkg/material"
)

// ErrUnsupportedFormat is returned for files no registered decoder recognizes
var ErrUnsupportedFormat = errors.New("unsupported image format")

// ImageData contains a decoded image as a row-major color array (y=0 at top)
type ImageData struct {
	Width  int
	Height int
	Pixels []core.Color
	Format string // Decoder name, e.g. "png"
}

// TextureOptions controls how images become textures
type TextureOptions struct {
	MaxSize int  // Longest side after downscaling; 0 keeps the original size
	Mipmaps bool // Build the mip chain
}

// DefaultTextureOptions returns the options used for scene textures
func DefaultTextureOptions() TextureOptions {
	return TextureOptions{MaxSize: 512, Mipmaps: true}
}

// LoadImage loads a PNG, JPEG, BMP, TIFF or WebP image
func LoadImage(filename string) (*ImageData, error) {
	return LoadImageMaxSize(filename, 0)
}

// LoadImageMaxSize loads an image and downscales it so neither side exceeds maxSize
func LoadImageMaxSize(filename string, maxSize int) (*ImageData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	data, err := DecodeImage(file, maxSize)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return data, nil
}

// DecodeImage decodes an image from r, downscaling it to maxSize when positive
func DecodeImage(r io.Reader, maxSize int) (*ImageData, error) {
	// Decode image (auto-detects the format from the header)
	img, format, err := image.Decode(r)
	if errors.Is(err, image.ErrFormat) {
		return nil, ErrUnsupportedFormat
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	img = Downscale(img, maxSize)

	// Convert to color array
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Color, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535], convert to [0, 1]
			pixels[y*width+x] = core.NewColor(
				float32(r)/65535.0,
				float32(g)/65535.0,
				float32(b)/65535.0,
			)
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
		Format: format,
	}, nil
}

// Downscale resamples img so that its longest side is at most maxSize,
// keeping the aspect ratio. Images already within bounds are returned as is.
func Downscale(img image.Image, maxSize int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return img
	}

	scale := float64(maxSize) / float64(max(w, h))
	nw := max(1, int(float64(w)*scale))
	nh := max(1, int(float64(h)*scale))

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}

// NewTextureFromImage converts decoded image data into a texture
func NewTextureFromImage(data *ImageData, mipmaps bool) *material.Texture {
	if mipmaps {
		return material.NewMipmappedTexture(data.Width, data.Height, data.Pixels)
	}
	return material.NewTexture(data.Width, data.Height, data.Pixels)
}

// LoadTexture loads an image file as a texture
func LoadTexture(filename string, opts TextureOptions) (*material.Texture, error) {
	data, err := LoadImageMaxSize(filename, opts.MaxSize)
	if err != nil {
		return nil, err
	}
	return NewTextureFromImage(data, opts.Mipmaps), nil
}
