package renderer

import (
	"context"
	"runtime"
	"sync"

	"github.com/df07/go-diorama-raytracer/pkg/scene"
)

// RowTask represents one scanline for the worker pool
type RowTask struct {
	Y      int
	Row    []uint32 // Destination pixels; owned by this task alone
	TaskID int      // For deterministic ordering
}

// RowResult contains the result from rendering a row
type RowResult struct {
	TaskID int
	Stats  RowStats
	Error  error
}

// WorkerPool manages parallel row rendering. All workers share the same
// read-only scene and camera snapshot.
type WorkerPool struct {
	taskQueue   chan RowTask
	resultQueue chan RowResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual row rendering tasks
type Worker struct {
	ID          int
	ctx         context.Context
	raytracer   *Raytracer
	scene       *scene.Scene
	snapshot    CameraSnapshot
	taskQueue   chan RowTask
	resultQueue chan RowResult
}

// NewWorkerPool creates a worker pool for a frame of numRows rows
func NewWorkerPool(ctx context.Context, rt *Raytracer, s *scene.Scene, snapshot CameraSnapshot, numRows, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if numRows > 0 && numWorkers > numRows {
		numWorkers = numRows
	}

	wp := &WorkerPool{
		taskQueue:   make(chan RowTask, numRows),   // Buffer for all rows
		resultQueue: make(chan RowResult, numRows), // Buffer for all results
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		worker := &Worker{
			ID:          i,
			ctx:         ctx,
			raytracer:   rt,
			scene:       s,
			snapshot:    snapshot,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		}
		wp.workers = append(wp.workers, worker)
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a row task to the worker pool
func (wp *WorkerPool) SubmitTask(task RowTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed row result
func (wp *WorkerPool) GetResult() (RowResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		// Cancelled frames drain the queue without rendering
		if err := w.ctx.Err(); err != nil {
			w.resultQueue <- RowResult{TaskID: task.TaskID, Error: err}
			continue
		}

		stats := w.raytracer.renderRow(w.scene, w.snapshot, task.Y, task.Row)
		w.resultQueue <- RowResult{
			TaskID: task.TaskID,
			Stats:  stats,
		}
	}
}
