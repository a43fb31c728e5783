package renderer

import "github.com/df07/go-diorama-raytracer/pkg/core"

// bloomRadius is the half-width of the box blur kernel
const bloomRadius = 5

// ApplyBloom adds a blurred copy of the pixels brighter than threshold
// (luminance in [0,1]) back onto the frame, scaled by intensity and clamped.
func ApplyBloom(fb *FrameBuffer, threshold, intensity float32) {
	if fb == nil || fb.Validate() != nil || intensity <= 0 {
		return
	}
	w, h := fb.Width, fb.Height

	// Extract bright pixels
	bright := make([]core.Color, len(fb.Pixels))
	for i, p := range fb.Pixels {
		c := core.ColorFromHex(p)
		if c.Luminance() > threshold {
			bright[i] = c
		}
	}

	// Separable box blur with clamped edges
	horizontal := make([]core.Color, len(bright))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sum := core.Black
			for dx := -bloomRadius; dx <= bloomRadius; dx++ {
				nx := min(max(x+dx, 0), w-1)
				sum = sum.Add(bright[y*w+nx])
			}
			horizontal[y*w+x] = sum.Scale(1.0 / (2*bloomRadius + 1))
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sum := core.Black
			for dy := -bloomRadius; dy <= bloomRadius; dy++ {
				ny := min(max(y+dy, 0), h-1)
				sum = sum.Add(horizontal[ny*w+x])
			}
			blurred := sum.Scale(1.0 / (2*bloomRadius + 1))

			i := y*w + x
			original := core.ColorFromHex(fb.Pixels[i])
			fb.Pixels[i] = original.Add(blurred.Scale(intensity)).Hex()
		}
	}
}
