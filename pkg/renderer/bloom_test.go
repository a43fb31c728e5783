package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-diorama-raytracer/pkg/core"
)

func TestApplyBloom_DarkFrameUnchanged(t *testing.T) {
	fb, err := NewFrameBuffer(20, 20)
	require.NoError(t, err)
	fb.Fill(0x202020)
	before := append([]uint32(nil), fb.Pixels...)

	ApplyBloom(fb, 0.5, 1)
	assert.Equal(t, before, fb.Pixels)
}

func TestApplyBloom_SpreadsBrightPixels(t *testing.T) {
	fb, err := NewFrameBuffer(30, 30)
	require.NoError(t, err)
	fb.Fill(0x000000)
	for y := 10; y < 20; y++ {
		for x := 10; x < 20; x++ {
			fb.Put(x, y, 0xffffff)
		}
	}

	ApplyBloom(fb, 0.8, 1)

	// Within the blur radius of the bright block, outside it
	near := UnpackColor(fb.Pixels[15*30+7])
	assert.Greater(t, near.R, float32(0))

	// Farther than the radius stays dark
	far, _ := fb.At(2, 2)
	assert.Equal(t, uint32(0), far)

	// Already white pixels clamp
	center, _ := fb.At(15, 15)
	assert.Equal(t, uint32(0xffffff), center)
}

func TestApplyBloom_ZeroIntensityIsNoop(t *testing.T) {
	fb, err := NewFrameBuffer(4, 4)
	require.NoError(t, err)
	fb.Set(1, 1, core.NewColor(1, 1, 1))
	before := append([]uint32(nil), fb.Pixels...)

	ApplyBloom(fb, 0, 0)
	assert.Equal(t, before, fb.Pixels)
}
