package core

import (
	"image/color"

	"github.com/chewxy/math32"
)

// Color is a linear RGB value with channels nominally in [0, 1].
// Intermediate shading results may exceed 1; they are clamped when stored.
type Color struct {
	R, G, B float32
}

// Black is the zero color
var Black = Color{}

// NewColor creates a color from float channels
func NewColor(r, g, b float32) Color {
	return Color{R: r, G: g, B: b}
}

// NewColorRGB8 creates a color from 8-bit channels
func NewColorRGB8(r, g, b uint8) Color {
	return Color{R: float32(r) / 255, G: float32(g) / 255, B: float32(b) / 255}
}

// ColorFromHex decodes a 0xRRGGBB value
func ColorFromHex(hex uint32) Color {
	return NewColorRGB8(uint8(hex>>16), uint8(hex>>8), uint8(hex))
}

// Add returns the channel-wise sum
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B}
}

// Scale multiplies every channel by s
func (c Color) Scale(s float32) Color {
	return Color{c.R * s, c.G * s, c.B * s}
}

// Mul returns the channel-wise product
func (c Color) Mul(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B}
}

// Clamp limits every channel to [0, 1]
func (c Color) Clamp() Color {
	return Color{Clamp(c.R, 0, 1), Clamp(c.G, 0, 1), Clamp(c.B, 0, 1)}
}

// Luminance returns the perceptual luminance using 0.299/0.587/0.114 weights
func (c Color) Luminance() float32 {
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}

// MaxChannel returns the largest channel value
func (c Color) MaxChannel() float32 {
	return math32.Max(c.R, math32.Max(c.G, c.B))
}

// Bytes clamps the color and converts it to 8-bit channels
func (c Color) Bytes() (r, g, b uint8) {
	c = c.Clamp()
	return toByte(c.R), toByte(c.G), toByte(c.B)
}

// Hex packs the clamped color as 0xRRGGBB
func (c Color) Hex() uint32 {
	r, g, b := c.Bytes()
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// RGBA converts to an opaque image/color value
func (c Color) RGBA() color.RGBA {
	r, g, b := c.Bytes()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func toByte(v float32) uint8 {
	return uint8(math32.Floor(v*255 + 0.5))
}
