package output

import (
	"fmt"
	"image"
	"time"

	"github.com/fogleman/gg"

	"github.com/df07/go-diorama-raytracer/pkg/renderer"
)

const (
	hudMargin  = 6
	hudPadding = 4
)

// HUDLines formats the overlay text for a rendered frame
func HUDLines(sceneName string, frame int, stats renderer.RenderStats) []string {
	return []string{
		fmt.Sprintf("%s  frame %d", sceneName, frame),
		fmt.Sprintf("%dx%d  %d workers", stats.Width, stats.Height, stats.Workers),
		fmt.Sprintf("hits %.1f%%  %v", stats.HitRatio()*100, stats.Elapsed.Round(time.Millisecond)),
	}
}

// DrawHUD draws lines in a translucent panel at the top-left corner of img,
// modifying it in place. The default gg face (7x13 bitmap) is used.
func DrawHUD(img *image.RGBA, lines []string) {
	if len(lines) == 0 {
		return
	}

	dc := gg.NewContextForRGBA(img)
	lineHeight := dc.FontHeight() * 1.3

	var width float64
	for _, line := range lines {
		w, _ := dc.MeasureString(line)
		width = max(width, w)
	}
	height := lineHeight * float64(len(lines))

	dc.SetRGBA(0, 0, 0, 0.6)
	dc.DrawRectangle(hudMargin, hudMargin, width+2*hudPadding, height+2*hudPadding)
	dc.Fill()

	dc.SetRGB(1, 1, 1)
	for i, line := range lines {
		y := hudMargin + hudPadding + lineHeight*float64(i+1) - (lineHeight - dc.FontHeight())
		dc.DrawString(line, hudMargin+hudPadding, y)
	}
}

// Annotate converts fb to an image with the HUD drawn over it
func Annotate(fb *renderer.FrameBuffer, lines []string) *image.RGBA {
	img := fb.ToImage()
	DrawHUD(img, lines)
	return img
}
