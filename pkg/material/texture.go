package material

import (
	"github.com/chewxy/math32"

	"github.com/df07/go-diorama-raytracer/pkg/core"
)

const (
	tileSize     = 8  // Texels per tile edge in the blocked storage layout
	mipMinArea   = 16 // Levels below this many texels are not generated
	maxMipLevels = 10 // Upper bound on generated levels beyond the base image
)

// Texture is an immutable decoded image sampled with nearest-neighbor lookup.
// Texels are stored in tileSize x tileSize blocks; the layout is not visible
// through the sampling methods.
type Texture struct {
	width, height int
	tilesX        int
	texels        []core.Color
	mips          []*Texture // mips[i] is level i+1
}

// NewTexture creates a texture from row-major pixels (pixels[y*width+x], y=0 at top)
func NewTexture(width, height int, pixels []core.Color) *Texture {
	if width <= 0 || height <= 0 {
		width, height = 1, 1
		pixels = []core.Color{core.Black}
	}

	tilesX := (width + tileSize - 1) / tileSize
	tilesY := (height + tileSize - 1) / tileSize
	t := &Texture{
		width:  width,
		height: height,
		tilesX: tilesX,
		texels: make([]core.Color, tilesX*tilesY*tileSize*tileSize),
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*width + x
			if i < len(pixels) {
				t.texels[t.offset(x, y)] = pixels[i]
			}
		}
	}
	return t
}

// NewMipmappedTexture creates a texture together with its chain of half-sized levels
func NewMipmappedTexture(width, height int, pixels []core.Color) *Texture {
	t := NewTexture(width, height, pixels)
	t.mips = buildMipChain(t)
	return t
}

// buildMipChain repeatedly box-filters 2x2 blocks until a level would fall
// below mipMinArea texels or maxMipLevels levels exist
func buildMipChain(base *Texture) []*Texture {
	var chain []*Texture
	prev := base
	for len(chain) < maxMipLevels {
		w := max(1, prev.width/2)
		h := max(1, prev.height/2)
		if w*h < mipMinArea || (w == prev.width && h == prev.height) {
			break
		}

		pixels := make([]core.Color, w*h)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				x0, y0 := 2*x, 2*y
				x1, y1 := min(x0+1, prev.width-1), min(y0+1, prev.height-1)
				sum := prev.At(x0, y0).Add(prev.At(x1, y0)).Add(prev.At(x0, y1)).Add(prev.At(x1, y1))
				pixels[y*w+x] = sum.Scale(0.25)
			}
		}

		level := NewTexture(w, h, pixels)
		chain = append(chain, level)
		prev = level
	}
	return chain
}

func (t *Texture) offset(x, y int) int {
	tile := (y/tileSize)*t.tilesX + x/tileSize
	return tile*tileSize*tileSize + (y%tileSize)*tileSize + x%tileSize
}

// Width returns the base level width
func (t *Texture) Width() int { return t.width }

// Height returns the base level height
func (t *Texture) Height() int { return t.height }

// MipLevels returns the number of generated levels beyond the base image
func (t *Texture) MipLevels() int { return len(t.mips) }

// Level returns mip level n, where level 0 is the texture itself
func (t *Texture) Level(n int) *Texture {
	if n <= 0 || len(t.mips) == 0 {
		return t
	}
	return t.mips[min(n, len(t.mips))-1]
}

// At returns the texel at (x, y), clamping out-of-range coordinates
func (t *Texture) At(x, y int) core.Color {
	x = max(0, min(x, t.width-1))
	y = max(0, min(y, t.height-1))
	return t.texels[t.offset(x, y)]
}

// Sample returns the nearest texel for (u, v), wrapping both into [0, 1).
// V=0 is the bottom of the image and V=1 the top.
func (t *Texture) Sample(u, v float32) core.Color {
	u = core.Fract(u)
	v = core.Fract(v)

	x := int(u * float32(t.width))
	y := int((1 - v) * float32(t.height))

	return t.At(x, y)
}

// SampleTiled repeats the texture tileU x tileV times across the unit UV square
func (t *Texture) SampleTiled(u, v, tileU, tileV float32) core.Color {
	return t.Sample(u*tileU, v*tileV)
}

// SampleTiledMip is SampleTiled against the mip level chosen from the tiling density
func (t *Texture) SampleTiledMip(u, v, tileU, tileV float32) core.Color {
	return t.Level(MipLevelForTiling(tileU, tileV)).SampleTiled(u, v, tileU, tileV)
}

// SampleNormal decodes a tangent-space normal from the texel at the given mip level
func (t *Texture) SampleNormal(u, v, tileU, tileV float32, level int) core.Vec3 {
	return DecodeNormal(t.Level(level).SampleTiled(u, v, tileU, tileV))
}

// MipLevelForTiling returns floor(log2(max(|tileU|, |tileV|))), or 0 below 2x tiling
func MipLevelForTiling(tileU, tileV float32) int {
	density := math32.Max(math32.Abs(tileU), math32.Abs(tileV))
	if density < 2 {
		return 0
	}
	return int(math32.Floor(math32.Log2(density)))
}

// DecodeNormal maps an RGB texel from [0, 1] to a unit vector in [-1, 1]^3
func DecodeNormal(c core.Color) core.Vec3 {
	n := core.NewVec3(c.R*2-1, c.G*2-1, c.B*2-1)
	if n.Len() < 1e-6 {
		return core.NewVec3(0, 0, 1)
	}
	return core.Normalize(n)
}
