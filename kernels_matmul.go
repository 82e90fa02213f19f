package gpumark

// Matrix-multiplication kernel variants. All three entry points share
// one argument convention: (A, B, C DevicePtr, M, K, N int), with A of
// shape M×K, B of shape K×N and C of shape M×N, row-major. Geometry is
// a per-variant policy held in the variant table; kernels bounds-guard
// so a rounded-up global extent never writes out of range.

// MatMulProgram returns the program holding the matmul entry points.
func MatMulProgram() *Program {
	p := NewProgram("matmul")
	p.Register("matmul_naive", matmulNaive)
	p.Register("matmul_block", matmulBlock)
	p.Register("matmul_many", matmulMany)
	return p
}

func matmulArgs(args []interface{}) (a, b, c []float32, m, k, n int) {
	a = args[0].(DevicePtr).Float32()
	b = args[1].(DevicePtr).Float32()
	c = args[2].(DevicePtr).Float32()
	m = args[3].(int)
	k = args[4].(int)
	n = args[5].(int)
	return
}

// matmulNaive computes one output element per thread straight from
// global memory.
func matmulNaive(g Group, args ...interface{}) {
	a, b, c, m, k, n := matmulArgs(args)

	for ty := 0; ty < g.Dim.Y; ty++ {
		row := g.GlobalY(ty)
		if row >= m {
			continue
		}
		for tx := 0; tx < g.Dim.X; tx++ {
			col := g.GlobalX(tx)
			if col >= n {
				continue
			}
			sum := float32(0)
			for kk := 0; kk < k; kk++ {
				sum += a[row*k+kk] * b[kk*n+col]
			}
			c[row*n+col] = sum
		}
	}
}

// matmulBlock stages square tiles of A and B in group-local storage and
// accumulates the inner product tile by tile. The load and compute
// phases are separated the way a barrier would separate them on a real
// device; in-group threads run sequentially, so the phase loops are the
// whole synchronization. Requires a MatMulTileDim-square group.
func matmulBlock(g Group, args ...interface{}) {
	a, b, c, m, k, n := matmulArgs(args)

	const T = MatMulTileDim
	var tileA, tileB [T][T]float32
	var acc [T][T]float32

	numTiles := ceilDiv(k, T)
	for t := 0; t < numTiles; t++ {
		// Load phase: every thread fetches one element of each tile.
		// Out-of-range positions load zero and contribute nothing.
		for ty := 0; ty < T; ty++ {
			row := g.GlobalY(ty)
			for tx := 0; tx < T; tx++ {
				col := g.GlobalX(tx)
				ka := t*T + tx
				kb := t*T + ty
				if row < m && ka < k {
					tileA[ty][tx] = a[row*k+ka]
				} else {
					tileA[ty][tx] = 0
				}
				if kb < k && col < n {
					tileB[ty][tx] = b[kb*n+col]
				} else {
					tileB[ty][tx] = 0
				}
			}
		}

		// Compute phase: accumulate this tile's contribution.
		for ty := 0; ty < T; ty++ {
			for tx := 0; tx < T; tx++ {
				sum := acc[ty][tx]
				for kk := 0; kk < T; kk++ {
					sum += tileA[ty][kk] * tileB[kk][tx]
				}
				acc[ty][tx] = sum
			}
		}
	}

	for ty := 0; ty < T; ty++ {
		row := g.GlobalY(ty)
		if row >= m {
			continue
		}
		for tx := 0; tx < T; tx++ {
			col := g.GlobalX(tx)
			if col < n {
				c[row*n+col] = acc[ty][tx]
			}
		}
	}
}

// matmulMany computes MatMulOutputsPerThread row-adjacent output
// elements per thread. Its geometry divides the global Y extent by the
// multiplicity, so each Y work-item covers a band of rows.
func matmulMany(g Group, args ...interface{}) {
	a, b, c, m, k, n := matmulArgs(args)

	for ty := 0; ty < g.Dim.Y; ty++ {
		band := g.GlobalY(ty)
		for tx := 0; tx < g.Dim.X; tx++ {
			col := g.GlobalX(tx)
			if col >= n {
				continue
			}
			for i := 0; i < MatMulOutputsPerThread; i++ {
				row := band*MatMulOutputsPerThread + i
				if row >= m {
					break
				}
				sum := float32(0)
				for kk := 0; kk < k; kk++ {
					sum += a[row*k+kk] * b[kk*n+col]
				}
				c[row*n+col] = sum
			}
		}
	}
}
