// Package gpumark tolerance-based verification of candidate results
package gpumark

import (
	"fmt"
	"math"
)

// MatMulVerdict is the validation outcome of one matmul variant against
// the reference product. The variant passes if the relative error
// |a-b| / max(|a|,|b|), averaged over all output elements, stays within
// tolerance. Elements where both values are zero contribute no error.
type MatMulVerdict struct {
	Pass        bool
	AvgRelError float64 // Relative error averaged over all elements
	MaxRelError float64 // Worst single-element relative error
	TotalItems  int
	FirstBad    int // Index of first element exceeding tolerance, -1 if none
}

// VerifyMatMul compares a candidate product against the reference.
func VerifyMatMul(reference, candidate []float32, tol float64) MatMulVerdict {
	v := MatMulVerdict{
		TotalItems: len(reference),
		FirstBad:   -1,
	}

	if len(reference) != len(candidate) {
		v.AvgRelError = math.Inf(1)
		return v
	}

	var diffSum float64
	for i := range reference {
		a := float64(reference[i])
		b := float64(candidate[i])
		if a == 0 && b == 0 {
			continue
		}
		diff := math.Abs(a-b) / math.Max(math.Abs(a), math.Abs(b))
		diffSum += diff
		if diff > v.MaxRelError {
			v.MaxRelError = diff
		}
		if diff > tol && v.FirstBad == -1 {
			v.FirstBad = i
		}
	}

	if v.TotalItems > 0 {
		v.AvgRelError = diffSum / float64(v.TotalItems)
	}
	v.Pass = v.AvgRelError <= tol
	return v
}

// String formats the verdict for display.
func (v MatMulVerdict) String() string {
	if v.Pass {
		return fmt.Sprintf("PASS: average relative error %.4f%%", v.AvgRelError*100)
	}
	return fmt.Sprintf("FAIL: average relative error %.4f%% exceeds tolerance\n"+
		"  Max relative error: %e\n"+
		"  First element over tolerance: index %d of %d",
		v.AvgRelError*100, v.MaxRelError, v.FirstBad, v.TotalItems)
}

// VerifySum checks the exact-equality rule of the reduction workload.
// All accumulations are exact integer additions, so any mismatch means
// the candidate implementation is wrong and the whole benchmarking pass
// must stop; the returned error is fatal.
func VerifySum(label string, want, got uint32) error {
	if want == got {
		return nil
	}
	return NewValidationError("VerifySum",
		fmt.Sprintf("%s: sum mismatch: reference %d, got %d (off by %d)",
			label, want, got, int64(got)-int64(want)))
}
