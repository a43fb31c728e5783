package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-diorama-raytracer/pkg/core"
)

func TestNewFrameBuffer(t *testing.T) {
	_, err := NewFrameBuffer(0, 10)
	assert.ErrorIs(t, err, ErrBufferSize)

	fb, err := NewFrameBuffer(4, 3)
	require.NoError(t, err)
	assert.Len(t, fb.Pixels, 12)
	for _, p := range fb.Pixels {
		assert.Equal(t, DefaultBackground.Hex(), p)
	}

	broken := &FrameBuffer{Width: 4, Height: 3, Pixels: make([]uint32, 5)}
	assert.ErrorIs(t, broken.Validate(), ErrBufferSize)
}

func TestFrameBufferAccess(t *testing.T) {
	fb, err := NewFrameBuffer(4, 3)
	require.NoError(t, err)

	fb.Put(1, 2, 0x112233)
	fb.Put(-1, 0, 0xffffff)
	fb.Put(4, 0, 0xffffff)

	p, ok := fb.At(1, 2)
	assert.True(t, ok)
	assert.Equal(t, uint32(0x112233), p)
	_, ok = fb.At(4, 0)
	assert.False(t, ok)

	fb.Set(0, 0, core.NewColor(1, 0, 0))
	p, _ = fb.At(0, 0)
	assert.Equal(t, uint32(0xff0000), p)

	fb.WriteRow(1, []uint32{1, 2, 3, 4})
	assert.Equal(t, []uint32{1, 2, 3, 4}, fb.Row(1))

	// Rows alias the buffer
	fb.Row(0)[3] = 0xabcdef
	p, _ = fb.At(3, 0)
	assert.Equal(t, uint32(0xabcdef), p)
}

func TestFrameBufferClear(t *testing.T) {
	fb, err := NewFrameBuffer(2, 2)
	require.NoError(t, err)

	fb.Fill(0x010203)
	assert.Equal(t, []uint32{0x010203, 0x010203, 0x010203, 0x010203}, fb.Pixels)

	fb.SetBackground(core.NewColor(0, 1, 0))
	fb.Clear()
	assert.Equal(t, []uint32{0x00ff00, 0x00ff00, 0x00ff00, 0x00ff00}, fb.Pixels)
}

func TestFrameBufferToImage(t *testing.T) {
	fb, err := NewFrameBuffer(3, 2)
	require.NoError(t, err)
	fb.Put(2, 1, 0x804020)

	img := fb.ToImage()
	assert.Equal(t, 3, img.Bounds().Dx())
	c := img.RGBAAt(2, 1)
	assert.Equal(t, uint8(0x80), c.R)
	assert.Equal(t, uint8(0x40), c.G)
	assert.Equal(t, uint8(0x20), c.B)
	assert.Equal(t, uint8(255), c.A)

	assert.Equal(t, core.ColorFromHex(0x804020), UnpackColor(0x804020))
}
