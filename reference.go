// Package gpumark reference implementations for verification
package gpumark

import (
	"runtime"
	"sync"
)

// Reference contains simple, trusted host implementations of both
// workloads. Reference results are computed once per workload and held
// immutable for every variant comparison; the methods keep no state, so
// repeated calls on the same workload yield identical results.
type Reference struct{}

// MatMul computes the product matrix with the straightforward triple
// loop, accumulating each output element in a float32, like the device
// kernels do.
func (r Reference) MatMul(w *MatMulWorkload) []float32 {
	c := make([]float32, w.OutputLen())
	r.MatMulInto(w, c)
	return c
}

// MatMulInto computes the product into dst, which must hold M×N
// elements.
func (r Reference) MatMulInto(w *MatMulWorkload, dst []float32) {
	for i := 0; i < w.M; i++ {
		for j := 0; j < w.N; j++ {
			sum := float32(0)
			for k := 0; k < w.K; k++ {
				sum += w.A[i*w.K+k] * w.B[k*w.N+j]
			}
			dst[i*w.N+j] = sum
		}
	}
}

// Sum computes the exact sum with a single sequential accumulation.
func (r Reference) Sum(w *SumWorkload) uint32 {
	var sum uint32
	for _, v := range w.Data {
		sum += v
	}
	return sum
}

// ParallelSum computes the same exact sum fanned out across the host's
// execution units. Each worker accumulates a private partial sum over a
// contiguous chunk; partials are combined after the fork-join, so there
// is no shared accumulator to race on. Integer addition commutes, so
// the result is identical to Sum for every input.
func (r Reference) ParallelSum(w *SumWorkload) uint32 {
	workers := runtime.NumCPU()
	if workers > w.N {
		workers = w.N
	}
	if workers <= 1 {
		return r.Sum(w)
	}

	chunk := ceilDiv(w.N, workers)
	partials := make([]uint32, workers)

	var wg sync.WaitGroup
	wg.Add(workers)
	for id := 0; id < workers; id++ {
		start := id * chunk
		if start > w.N {
			start = w.N
		}
		end := start + chunk
		if end > w.N {
			end = w.N
		}
		go func(id, start, end int) {
			defer wg.Done()
			var sum uint32
			for _, v := range w.Data[start:end] {
				sum += v
			}
			partials[id] = sum
		}(id, start, end)
	}
	wg.Wait()

	var sum uint32
	for _, p := range partials {
		sum += p
	}
	return sum
}
