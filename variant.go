package gpumark

// Variant descriptors bind a labeled strategy to its entry point and
// launch-geometry policy. New variants are added by extending these
// tables; the runner's control flow never changes.

// MatMulVariant describes one accelerator matmul strategy.
type MatMulVariant struct {
	Label    string
	Entry    string
	Geometry func(w *MatMulWorkload) WorkSize
}

// MatMulVariants returns the benchmarked matmul strategies in report
// order.
func MatMulVariants() []MatMulVariant {
	return []MatMulVariant{
		{
			Label: "GPU naive",
			Entry: "matmul_naive",
			Geometry: func(w *MatMulWorkload) WorkSize {
				return WorkSize2D(MatMulGroupDim, MatMulGroupDim, w.N, w.M)
			},
		},
		{
			Label: "GPU block",
			Entry: "matmul_block",
			Geometry: func(w *MatMulWorkload) WorkSize {
				return WorkSize2D(MatMulGroupDim, MatMulGroupDim, w.N, w.M)
			},
		},
		{
			Label: "GPU many",
			Entry: "matmul_many",
			Geometry: func(w *MatMulWorkload) WorkSize {
				// Group height divided by the per-thread output
				// multiplicity; each Y work-item covers a band of rows.
				return WorkSize2D(
					MatMulGroupDim, MatMulGroupDim/MatMulOutputsPerThread,
					w.N, ceilDiv(w.M, MatMulOutputsPerThread))
			},
		},
	}
}

// SumVariant describes one accelerator reduction strategy.
type SumVariant struct {
	Label    string
	Entry    string
	Geometry func(n int) WorkSize
}

// SumVariants returns the benchmarked reduction strategies in report
// order.
func SumVariants() []SumVariant {
	return []SumVariant{
		{
			Label: "GPU naive",
			Entry: "sum_naive",
			Geometry: func(n int) WorkSize {
				return WorkSize1D(SumGroupSize, n)
			},
		},
		{
			Label: "GPU loop",
			Entry: "sum_loop",
			Geometry: func(n int) WorkSize {
				return WorkSize1D(SumGroupSize, ceilDiv(n, SumValuesPerThread))
			},
		},
		{
			Label: "GPU loop coalesced",
			Entry: "sum_loop_coalesced",
			Geometry: func(n int) WorkSize {
				return WorkSize1D(SumGroupSize, ceilDiv(n, SumValuesPerThread))
			},
		},
		{
			Label: "GPU local",
			Entry: "sum_local",
			Geometry: func(n int) WorkSize {
				return WorkSize1D(SumGroupSize, n)
			},
		},
		{
			Label: "GPU tree",
			Entry: "sum_tree",
			Geometry: func(n int) WorkSize {
				return WorkSize1D(SumGroupSize, n)
			},
		},
	}
}
