package renderer

import (
	"fmt"
	"time"
)

// RenderStats contains statistics about one rendered frame
type RenderStats struct {
	Width         int           // Frame width in pixels
	Height        int           // Frame height in pixels
	TotalPixels   int           // Total number of pixels rendered
	PrimaryHits   int           // Camera rays that hit a primitive
	PrimaryMisses int           // Camera rays that escaped to the background
	Rows          int           // Rows completed
	Workers       int           // Goroutines used; 1 for sequential renders
	Elapsed       time.Duration // Wall time of the render call
}

// RowStats tracks the primary ray outcomes of a single row
type RowStats struct {
	Hits   int
	Misses int
}

// AddRow folds one row's counts into the frame totals
func (rs *RenderStats) AddRow(row RowStats) {
	rs.PrimaryHits += row.Hits
	rs.PrimaryMisses += row.Misses
	rs.TotalPixels += row.Hits + row.Misses
	rs.Rows++
}

// HitRatio returns the fraction of camera rays that hit geometry
func (rs RenderStats) HitRatio() float64 {
	if rs.TotalPixels == 0 {
		return 0
	}
	return float64(rs.PrimaryHits) / float64(rs.TotalPixels)
}

// PixelsPerSecond returns the render throughput
func (rs RenderStats) PixelsPerSecond() float64 {
	if rs.Elapsed <= 0 {
		return 0
	}
	return float64(rs.TotalPixels) / rs.Elapsed.Seconds()
}

func (rs RenderStats) String() string {
	return fmt.Sprintf("%dx%d, %d workers, %.1f%% hits, %v (%.0f px/s)",
		rs.Width, rs.Height, rs.Workers, rs.HitRatio()*100, rs.Elapsed.Round(time.Millisecond), rs.PixelsPerSecond())
}
