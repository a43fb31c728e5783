package output

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-diorama-raytracer/pkg/renderer"
)

func gradientBuffer(t *testing.T, w, h int) *renderer.FrameBuffer {
	t.Helper()
	fb, err := renderer.NewFrameBuffer(w, h)
	require.NoError(t, err)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			fb.Put(x, y, uint32(x*255/w)<<16|uint32(y*255/h)<<8|0x40)
		}
	}
	return fb
}

func TestWritePNG(t *testing.T) {
	fb := gradientBuffer(t, 16, 8)
	path := FramePath(t.TempDir(), "cube", 3, "png")
	assert.Equal(t, "frame_0003.png", filepath.Base(path))

	require.NoError(t, WritePNG(path, fb.ToImage()))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	img, err := png.Decode(file)
	require.NoError(t, err)
	assert.Equal(t, 16, img.Bounds().Dx())

	r, g, b, _ := img.At(15, 7).RGBA()
	p, _ := fb.At(15, 7)
	assert.Equal(t, uint32(p>>16&0xff), r>>8)
	assert.Equal(t, uint32(p>>8&0xff), g>>8)
	assert.Equal(t, uint32(p&0xff), b>>8)
}

func TestRawRoundTrip(t *testing.T) {
	fb := gradientBuffer(t, 37, 21)
	path := filepath.Join(t.TempDir(), "nested", "frame.raw")

	require.NoError(t, WriteRaw(path, fb))
	got, err := ReadRaw(path)
	require.NoError(t, err)

	assert.Equal(t, fb.Width, got.Width)
	assert.Equal(t, fb.Height, got.Height)
	assert.Equal(t, fb.Pixels, got.Pixels)
}

func TestRawIsCompressed(t *testing.T) {
	fb, err := renderer.NewFrameBuffer(128, 128)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, EncodeRaw(&buf, fb))
	// A single background color compresses far below 4 bytes per pixel
	assert.Less(t, buf.Len(), 128*128)
}

func TestDecodeRawRejectsGarbage(t *testing.T) {
	_, err := DecodeRaw(bytes.NewReader([]byte("not zstd at all")))
	assert.Error(t, err)

	_, err = ReadRaw(filepath.Join(t.TempDir(), "missing.raw"))
	assert.Error(t, err)

	// Valid zstd stream with the wrong magic
	var bad bytes.Buffer
	enc, err := zstd.NewWriter(&bad)
	require.NoError(t, err)
	_, err = enc.Write([]byte("XXXX\x02\x00\x00\x00\x02\x00\x00\x00"))
	require.NoError(t, err)
	require.NoError(t, enc.Close())
	_, err = DecodeRaw(&bad)
	assert.ErrorIs(t, err, ErrBadRawFrame)

	// Truncated pixel data
	var short bytes.Buffer
	enc, err = zstd.NewWriter(&short)
	require.NoError(t, err)
	_, err = enc.Write([]byte("DRFB\x02\x00\x00\x00\x02\x00\x00\x00\x01\x02"))
	require.NoError(t, err)
	require.NoError(t, enc.Close())
	_, err = DecodeRaw(&short)
	assert.ErrorIs(t, err, ErrBadRawFrame)
}

func TestDecodeRawOversizedHeaderFailsCheaply(t *testing.T) {
	// Claims the largest accepted frame but carries a single row
	var lying bytes.Buffer
	enc, err := zstd.NewWriter(&lying)
	require.NoError(t, err)
	header := []byte("DRFB\x00\x40\x00\x00\x00\x40\x00\x00")
	_, err = enc.Write(append(header, make([]byte, 4*maxRawDimension)...))
	require.NoError(t, err)
	require.NoError(t, enc.Close())

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	_, err = DecodeRaw(&lying)
	runtime.ReadMemStats(&after)

	assert.ErrorIs(t, err, ErrBadRawFrame)
	assert.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(256<<20), "must not allocate the 1 GiB frame up front")
}

func TestEncodeRawInvalidBuffer(t *testing.T) {
	var buf bytes.Buffer
	err := EncodeRaw(&buf, &renderer.FrameBuffer{Width: 4, Height: 4})
	assert.ErrorIs(t, err, renderer.ErrBufferSize)
}

func TestDrawHUD(t *testing.T) {
	fb, err := renderer.NewFrameBuffer(200, 100)
	require.NoError(t, err)
	fb.Fill(0xffffff)

	stats := renderer.RenderStats{Width: 200, Height: 100, Workers: 4, TotalPixels: 20000, PrimaryHits: 5000, Elapsed: 12 * time.Millisecond}
	lines := HUDLines("cube", 7, stats)
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "frame 7")
	assert.Contains(t, lines[2], "25.0%")

	img := Annotate(fb, lines)

	// Panel interior left of the text is darkened
	panel := img.RGBAAt(hudMargin+1, hudMargin+1)
	assert.Less(t, panel.R, uint8(200))

	// Far corner is untouched
	corner := img.RGBAAt(199, 99)
	assert.Equal(t, uint8(255), corner.R)

	// The frame buffer itself is not modified
	p, _ := fb.At(hudMargin+1, hudMargin+1)
	assert.Equal(t, uint32(0xffffff), p)
}

func TestDrawHUDNoLines(t *testing.T) {
	fb := gradientBuffer(t, 8, 8)
	img := fb.ToImage()
	before := append([]uint8(nil), img.Pix...)
	DrawHUD(img, nil)
	assert.Equal(t, before, img.Pix)
}
