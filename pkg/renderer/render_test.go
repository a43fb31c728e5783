package renderer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-diorama-raytracer/pkg/core"
	"github.com/df07/go-diorama-raytracer/pkg/scene"
)

func newCubeCamera() *Camera {
	return NewCamera(core.NewVec3(5, 3, 5), core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))
}

func TestRender_CubeScene(t *testing.T) {
	const width, height = 64, 48
	rt := newTestRaytracer()
	s := scene.NewCubeScene()

	fb, err := NewFrameBuffer(width, height)
	require.NoError(t, err)

	stats, err := rt.Render(fb, s, newCubeCamera())
	require.NoError(t, err)

	bg := scene.CubeBackground.Hex()
	center, _ := fb.At(width/2, height/2)
	assert.NotEqual(t, bg, center, "the cube covers the image center")

	// Pink: red dominates blue dominates green
	c := UnpackColor(center)
	assert.Greater(t, c.R, c.B)
	assert.Greater(t, c.B, c.G)

	for _, corner := range [][2]int{{0, 0}, {width - 1, 0}, {0, height - 1}, {width - 1, height - 1}} {
		p, _ := fb.At(corner[0], corner[1])
		assert.Equal(t, bg, p, "corner %v", corner)
	}

	assert.Equal(t, width*height, stats.TotalPixels)
	assert.Equal(t, height, stats.Rows)
	assert.Equal(t, 1, stats.Workers)
	assert.Greater(t, stats.PrimaryHits, 0)
	assert.Greater(t, stats.PrimaryMisses, stats.PrimaryHits)
}

func TestRenderParallel_MatchesSequential(t *testing.T) {
	const width, height = 40, 30
	s := scene.NewDioramaScene(scene.BuildContext{})
	camera := NewCamera(core.NewVec3(7, 5, 7), core.NewVec3(0, 0.5, 0), core.NewVec3(0, 1, 0))

	sequential, err := NewFrameBuffer(width, height)
	require.NoError(t, err)
	_, err = newTestRaytracer().Render(sequential, s, camera)
	require.NoError(t, err)

	for _, workers := range []int{1, 3, 0} {
		parallel, err := NewFrameBuffer(width, height)
		require.NoError(t, err)

		rt := NewRaytracer(Config{Workers: workers}, core.NopLogger{})
		stats, err := rt.RenderParallel(parallel, s, camera)
		require.NoError(t, err)

		assert.Equal(t, sequential.Pixels, parallel.Pixels, "workers=%d", workers)
		assert.Equal(t, width*height, stats.TotalPixels)
		assert.Equal(t, height, stats.Rows)
		assert.GreaterOrEqual(t, stats.Workers, 1)
	}
}

func TestRenderParallelContext_Cancelled(t *testing.T) {
	rt := newTestRaytracer()
	fb, err := NewFrameBuffer(16, 16)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = rt.RenderParallelContext(ctx, fb, scene.NewCubeScene(), newCubeCamera())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRender_InvalidBuffer(t *testing.T) {
	rt := newTestRaytracer()
	s := scene.NewCubeScene()

	_, err := rt.Render(&FrameBuffer{Width: 2, Height: 2}, s, newCubeCamera())
	assert.ErrorIs(t, err, ErrBufferSize)

	_, err = rt.RenderParallel(nil, s, newCubeCamera())
	assert.ErrorIs(t, err, ErrBufferSize)
}
