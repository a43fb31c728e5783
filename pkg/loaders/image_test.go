package loaders

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

// writePNG creates a w x h PNG whose pixels are produced by fill
func writePNG(t *testing.T, path string, w, h int, fill func(x, y int) color.RGBA) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, fill(x, y))
		}
	}

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestLoadImage(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "test.png")

	// Top-left white, top-right red, bottom-left green, bottom-right blue
	colors := [][]color.RGBA{
		{{255, 255, 255, 255}, {255, 0, 0, 255}},
		{{0, 255, 0, 255}, {0, 0, 255, 255}},
	}
	writePNG(t, testFile, 2, 2, func(x, y int) color.RGBA { return colors[y][x] })

	data, err := LoadImage(testFile)
	require.NoError(t, err)

	assert.Equal(t, 2, data.Width)
	assert.Equal(t, 2, data.Height)
	assert.Equal(t, "png", data.Format)
	require.Len(t, data.Pixels, 4)

	assert.InDelta(t, 1, data.Pixels[0].G, 1e-6)
	assert.InDelta(t, 1, data.Pixels[1].R, 1e-6)
	assert.InDelta(t, 0, data.Pixels[1].G, 1e-6)
	assert.InDelta(t, 1, data.Pixels[2].G, 1e-6)
	assert.InDelta(t, 1, data.Pixels[3].B, 1e-6)
}

func TestDecodeImageBMP(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 1))
	for x := 0; x < 3; x++ {
		img.SetRGBA(x, 0, color.RGBA{A: 255})
	}
	img.SetRGBA(2, 0, color.RGBA{B: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, img))

	data, err := DecodeImage(&buf, 0)
	require.NoError(t, err)
	assert.Equal(t, "bmp", data.Format)
	assert.InDelta(t, 1, data.Pixels[2].B, 1e-6)
}

func TestDecodeImageUnsupported(t *testing.T) {
	_, err := DecodeImage(bytes.NewReader([]byte("definitely not an image")), 0)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = LoadImage(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

func TestDownscale(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 32))

	small := Downscale(img, 16)
	assert.Equal(t, 16, small.Bounds().Dx())
	assert.Equal(t, 8, small.Bounds().Dy())

	assert.Same(t, img, Downscale(img, 64), "images within bounds are untouched")
	assert.Same(t, img, Downscale(img, 0))
}

func TestLoadTexture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checker.png")
	writePNG(t, path, 128, 64, func(x, y int) color.RGBA {
		if (x/8+y/8)%2 == 0 {
			return color.RGBA{255, 255, 255, 255}
		}
		return color.RGBA{0, 0, 0, 255}
	})

	tex, err := LoadTexture(path, TextureOptions{MaxSize: 32, Mipmaps: true})
	require.NoError(t, err)
	assert.Equal(t, 32, tex.Width())
	assert.Equal(t, 16, tex.Height())
	// 16x8 is the only level with at least 16 texels
	assert.Equal(t, 2, tex.MipLevels())

	tex, err = LoadTexture(path, TextureOptions{})
	require.NoError(t, err)
	assert.Equal(t, 128, tex.Width())
	assert.Equal(t, 0, tex.MipLevels())
}
