package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/df07/go-diorama-raytracer/pkg/scene"
)

// Render fills fb row by row on the calling goroutine
func (rt *Raytracer) Render(fb *FrameBuffer, s *scene.Scene, camera *Camera) (RenderStats, error) {
	if err := fb.Validate(); err != nil {
		return RenderStats{}, err
	}
	return rt.RenderSnapshot(fb, s, camera.Snapshot(fb.Width, fb.Height))
}

// RenderSnapshot is Render with an already frozen camera
func (rt *Raytracer) RenderSnapshot(fb *FrameBuffer, s *scene.Scene, snapshot CameraSnapshot) (RenderStats, error) {
	if err := fb.Validate(); err != nil {
		return RenderStats{}, err
	}

	start := time.Now()
	stats := RenderStats{Width: fb.Width, Height: fb.Height, Workers: 1}
	for y := 0; y < fb.Height; y++ {
		stats.AddRow(rt.renderRow(s, snapshot, y, fb.Row(y)))
	}
	stats.Elapsed = time.Since(start)

	rt.logger.Debugf("sequential render: %s", stats)
	return stats, nil
}

// RenderParallel fills fb with rows shaded concurrently. The camera is
// snapshotted before any worker starts.
func (rt *Raytracer) RenderParallel(fb *FrameBuffer, s *scene.Scene, camera *Camera) (RenderStats, error) {
	return rt.RenderParallelContext(context.Background(), fb, s, camera)
}

// RenderParallelContext is RenderParallel with cooperative cancellation
// checked before each row. A cancelled frame is left partially written.
func (rt *Raytracer) RenderParallelContext(ctx context.Context, fb *FrameBuffer, s *scene.Scene, camera *Camera) (RenderStats, error) {
	if err := fb.Validate(); err != nil {
		return RenderStats{}, err
	}
	snapshot := camera.Snapshot(fb.Width, fb.Height)

	start := time.Now()
	pool := NewWorkerPool(ctx, rt, s, snapshot, fb.Height, rt.config.Workers)
	pool.Start()

	for y := 0; y < fb.Height; y++ {
		pool.SubmitTask(RowTask{Y: y, Row: fb.Row(y), TaskID: y})
	}

	stats := RenderStats{Width: fb.Width, Height: fb.Height, Workers: pool.GetNumWorkers()}
	var firstErr error
	for i := 0; i < fb.Height; i++ {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		if result.Error != nil {
			if firstErr == nil {
				firstErr = result.Error
			}
			continue
		}
		stats.AddRow(result.Stats)
	}
	pool.Stop()
	stats.Elapsed = time.Since(start)

	if firstErr != nil {
		return stats, fmt.Errorf("render cancelled after %d of %d rows: %w", stats.Rows, fb.Height, firstErr)
	}

	rt.logger.Debugf("parallel render: %s", stats)
	return stats, nil
}

// renderRow shades every pixel of row y into row
func (rt *Raytracer) renderRow(s *scene.Scene, snapshot CameraSnapshot, y int, row []uint32) RowStats {
	var stats RowStats
	for x := range row {
		ray := snapshot.Ray(x, y)
		c, hit := rt.trace(s, ray.Origin, ray.Direction, 0)
		row[x] = c.Hex()
		if hit {
			stats.Hits++
		} else {
			stats.Misses++
		}
	}
	return stats
}
