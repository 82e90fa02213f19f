package gpumark

import (
	"math"
)

// FastRand is a deterministic pseudo-random generator using a linear
// congruential generator (LCG). The same seed always produces the same
// sequence, on every platform, which the validation cycle depends on.
type FastRand struct {
	state uint64
}

// NewFastRand creates a generator from a 32-bit seed.
func NewFastRand(seed uint32) *FastRand {
	return &FastRand{state: uint64(seed)}
}

// NextUint32 returns the next value of the sequence.
func (r *FastRand) NextUint32() uint32 {
	r.state = r.state*1103515245 + 12345 // LCG parameters from Numerical Recipes
	return uint32(r.state >> 16)
}

// NextFloat returns the next value normalized to [0, 1).
func (r *FastRand) NextFloat() float32 {
	// Map onto [0,1) through float64 so rounding can never reach 1.0.
	return float32(float64(r.NextUint32()) / float64(1<<32))
}

// NextBounded returns the next value reduced to [0, bound].
func (r *FastRand) NextBounded(bound uint32) uint32 {
	return uint32((uint64(r.NextUint32()) * (uint64(bound) + 1)) >> 32)
}

// MatMulWorkload is an immutable dense matrix-multiplication problem
// instance: C = A×B with A of shape M×K and B of shape K×N, both
// row-major.
type MatMulWorkload struct {
	M, K, N int
	A, B    []float32
}

// NewMatMulWorkload generates a matmul workload from a seed. Matrix
// element values cover the generator's full [0, 1) float range.
func NewMatMulWorkload(m, k, n int, seed uint32) *MatMulWorkload {
	r := NewFastRand(seed)
	a := make([]float32, m*k)
	for i := range a {
		a[i] = r.NextFloat()
	}
	b := make([]float32, k*n)
	for i := range b {
		b[i] = r.NextFloat()
	}
	return &MatMulWorkload{M: m, K: k, N: n, A: a, B: b}
}

// MatMulSeed is the canonical seed for a matmul problem shape.
func MatMulSeed(m, k, n int) uint32 {
	return uint32(m + k + n)
}

// Flops returns the operation count of one multiplication, counting one
// multiply and one add per inner-product term.
func (w *MatMulWorkload) Flops() int64 {
	return 2 * int64(w.M) * int64(w.K) * int64(w.N)
}

// OutputLen returns the element count of the product matrix.
func (w *MatMulWorkload) OutputLen() int {
	return w.M * w.N
}

// SumWorkload is an immutable reduction problem instance: a flat
// sequence of N unsigned values whose exact sum fits in uint32.
type SumWorkload struct {
	N    int
	Data []uint32
}

// NewSumWorkload generates a reduction workload from a seed. Values are
// drawn uniformly from [0, MaxUint32/N], so the exact sum cannot
// overflow the uint32 accumulator.
func NewSumWorkload(n int, seed uint32) *SumWorkload {
	r := NewFastRand(seed)
	bound := uint32(math.MaxUint32 / uint64(n))
	data := make([]uint32, n)
	for i := range data {
		data[i] = r.NextBounded(bound)
	}
	return &SumWorkload{N: n, Data: data}
}
