package gpumark

import (
	"sync"
)

// Launch executes a compiled kernel over the given geometry and blocks
// until every work-group has completed. The executor model is
// synchronous: a launch is one unit of work, and output buffers are
// safe to read once Launch returns.
func (ctx *Context) Launch(k *CompiledKernel, ws WorkSize, args ...interface{}) error {
	if k == nil || k.fn == nil {
		return NewLaunchError("Launch", "nil kernel", nil)
	}
	if err := ws.validate(ctx.device.MaxGroup); err != nil {
		return err
	}

	grid := ws.Grid()
	groups := grid.Size()

	numWorkers := ctx.workers
	if groups < numWorkers {
		numWorkers = groups
	}

	// Cache-aware scheduling: each worker processes a contiguous run of
	// groups to maximize cache reuse.
	groupsPerWorker := ceilDiv(groups, numWorkers)

	var wg sync.WaitGroup
	wg.Add(numWorkers)

	for workerID := 0; workerID < numWorkers; workerID++ {
		start := workerID * groupsPerWorker
		end := start + groupsPerWorker
		if end > groups {
			end = groups
		}

		go func(start, end int) {
			defer wg.Done()

			for id := start; id < end; id++ {
				g := Group{
					ID:   linearTo3D(id, grid),
					Dim:  ws.Local,
					Grid: grid,
				}
				k.fn(g, args...)
			}
		}(start, end)
	}

	wg.Wait()
	return nil
}

// linearTo3D converts a linear group index to 3D coordinates.
func linearTo3D(linear int, dim Dim3) Dim3 {
	z := linear / (dim.X * dim.Y)
	y := (linear % (dim.X * dim.Y)) / dim.X
	x := linear % dim.X
	return Dim3{X: x, Y: y, Z: z}
}
