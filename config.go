// Package gpumark configuration constants
package gpumark

// Launch limits
const (
	// MaxThreadsPerGroup caps the work-group size a launch may request
	MaxThreadsPerGroup = 1024
)

// Matrix-multiplication kernel geometry
const (
	// MatMulGroupDim is the work-group edge for the 2D matmul kernels
	MatMulGroupDim = 16

	// MatMulTileDim is the group-local tile edge for the blocked kernel
	MatMulTileDim = 16

	// MatMulOutputsPerThread is the per-thread output multiplicity of the
	// multi-output kernel; its group height is MatMulGroupDim divided by
	// this factor
	MatMulOutputsPerThread = 4
)

// Reduction kernel geometry
const (
	// SumGroupSize is the work-group size for the 1D reduction kernels
	SumGroupSize = 128

	// SumValuesPerThread is how many elements each thread of the looped
	// reduction kernels accumulates
	SumValuesPerThread = 64
)

// Benchmarking defaults
const (
	// DefaultTrials is the trial count per benchmarked configuration
	DefaultTrials = 10

	// MatMulTolerance is the pass threshold on the average relative
	// error of a matmul variant against the reference
	MatMulTolerance = 0.01
)
