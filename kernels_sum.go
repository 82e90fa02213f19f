package gpumark

import (
	"sync/atomic"
)

// Reduction kernel variants. All five entry points share one argument
// convention: (in DevicePtr, n int, out DevicePtr), where out is a
// single-element accumulator the caller zeroes before launch. Groups
// run concurrently, so every contribution to the accumulator goes
// through an atomic add; all arithmetic is exact uint32 addition.

// SumProgram returns the program holding the reduction entry points.
func SumProgram() *Program {
	p := NewProgram("sum")
	p.Register("sum_naive", sumNaive)
	p.Register("sum_loop", sumLoop)
	p.Register("sum_loop_coalesced", sumLoopCoalesced)
	p.Register("sum_local", sumLocal)
	p.Register("sum_tree", sumTree)
	return p
}

func sumArgs(args []interface{}) (in []uint32, n int, out []uint32) {
	in = args[0].(DevicePtr).Uint32()
	n = args[1].(int)
	out = args[2].(DevicePtr).Uint32()
	return
}

// sumNaive contributes every element with its own atomic add.
func sumNaive(g Group, args ...interface{}) {
	in, n, out := sumArgs(args)

	for tx := 0; tx < g.Dim.X; tx++ {
		gid := g.GlobalX(tx)
		if gid < n {
			atomic.AddUint32(&out[0], in[gid])
		}
	}
}

// sumLoop gives each thread a run of SumValuesPerThread consecutive
// elements to accumulate privately before one atomic add.
func sumLoop(g Group, args ...interface{}) {
	in, n, out := sumArgs(args)

	for tx := 0; tx < g.Dim.X; tx++ {
		gid := g.GlobalX(tx)
		base := gid * SumValuesPerThread
		sum := uint32(0)
		for i := 0; i < SumValuesPerThread; i++ {
			if idx := base + i; idx < n {
				sum += in[idx]
			}
		}
		if sum != 0 {
			atomic.AddUint32(&out[0], sum)
		}
	}
}

// sumLoopCoalesced is sumLoop with the access pattern interleaved at
// group width, so consecutive threads touch consecutive addresses on
// every pass.
func sumLoopCoalesced(g Group, args ...interface{}) {
	in, n, out := sumArgs(args)

	groupBase := g.ID.X * g.Dim.X * SumValuesPerThread
	for tx := 0; tx < g.Dim.X; tx++ {
		sum := uint32(0)
		for i := 0; i < SumValuesPerThread; i++ {
			if idx := groupBase + i*g.Dim.X + tx; idx < n {
				sum += in[idx]
			}
		}
		if sum != 0 {
			atomic.AddUint32(&out[0], sum)
		}
	}
}

// sumLocal stages one element per thread in group-local storage, folds
// the staging buffer on thread 0, and contributes a single atomic add
// per group. Requires a group size of SumGroupSize.
func sumLocal(g Group, args ...interface{}) {
	in, n, out := sumArgs(args)

	var buf [SumGroupSize]uint32
	for tx := 0; tx < g.Dim.X; tx++ {
		gid := g.GlobalX(tx)
		if gid < n {
			buf[tx] = in[gid]
		} else {
			buf[tx] = 0
		}
	}

	// Thread 0 folds the staged values.
	sum := uint32(0)
	for tx := 0; tx < g.Dim.X; tx++ {
		sum += buf[tx]
	}
	atomic.AddUint32(&out[0], sum)
}

// sumTree stages like sumLocal, then combines with a halving tree:
// each step adds the upper half of the buffer onto the lower half.
// Requires a power-of-two group size.
func sumTree(g Group, args ...interface{}) {
	in, n, out := sumArgs(args)

	var buf [SumGroupSize]uint32
	for tx := 0; tx < g.Dim.X; tx++ {
		gid := g.GlobalX(tx)
		if gid < n {
			buf[tx] = in[gid]
		} else {
			buf[tx] = 0
		}
	}

	for stride := g.Dim.X / 2; stride > 0; stride /= 2 {
		for tx := 0; tx < stride; tx++ {
			buf[tx] += buf[tx+stride]
		}
	}

	atomic.AddUint32(&out[0], buf[0])
}
