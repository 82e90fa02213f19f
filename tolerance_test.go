package gpumark

import (
	"strings"
	"testing"
)

func TestVerifyMatMulIdentical(t *testing.T) {
	ref := []float32{19, 22, 43, 50}
	v := VerifyMatMul(ref, ref, MatMulTolerance)
	if !v.Pass {
		t.Fatalf("identical arrays must pass: %s", v)
	}
	if v.AvgRelError != 0 || v.MaxRelError != 0 {
		t.Errorf("identical arrays must report zero error, got avg=%v max=%v", v.AvgRelError, v.MaxRelError)
	}
	if v.FirstBad != -1 {
		t.Errorf("FirstBad = %d, want -1", v.FirstBad)
	}
}

// A single output element perturbed by 50% must fail the 1% average
// tolerance on a small matrix.
func TestVerifyMatMulFlagsCorruption(t *testing.T) {
	ref := []float32{19, 22, 43, 50}
	bad := []float32{19, 22, 43 * 1.5, 50}

	v := VerifyMatMul(ref, bad, MatMulTolerance)
	if v.Pass {
		t.Fatalf("corrupted candidate must fail: %s", v)
	}
	if v.FirstBad != 2 {
		t.Errorf("FirstBad = %d, want 2", v.FirstBad)
	}
	if !strings.Contains(v.String(), "FAIL") {
		t.Errorf("verdict string should mark failure: %s", v)
	}
}

// Small per-element noise stays within the average tolerance.
func TestVerifyMatMulToleratesNoise(t *testing.T) {
	w := NewMatMulWorkload(8, 8, 8, 77)
	ref := Reference{}.MatMul(w)

	noisy := make([]float32, len(ref))
	for i, x := range ref {
		noisy[i] = x * (1 + 1e-4)
	}
	if v := VerifyMatMul(ref, noisy, MatMulTolerance); !v.Pass {
		t.Errorf("0.01%% noise must pass: %s", v)
	}
}

func TestVerifyMatMulLengthMismatch(t *testing.T) {
	if v := VerifyMatMul([]float32{1, 2}, []float32{1}, MatMulTolerance); v.Pass {
		t.Error("length mismatch must fail")
	}
}

// Zero-only elements contribute no error; a zero-vs-nonzero pair does.
func TestVerifyMatMulZeroHandling(t *testing.T) {
	if v := VerifyMatMul([]float32{0, 0}, []float32{0, 0}, MatMulTolerance); !v.Pass || v.AvgRelError != 0 {
		t.Errorf("all-zero arrays must pass with zero error: %s", v)
	}
	if v := VerifyMatMul([]float32{0, 1}, []float32{1, 1}, MatMulTolerance); v.Pass {
		t.Errorf("zero-vs-one element must count as full relative error: %s", v)
	}
}

func TestVerifySumExact(t *testing.T) {
	if err := VerifySum("GPU tree", 15, 15); err != nil {
		t.Fatalf("matching sums must pass: %v", err)
	}

	err := VerifySum("GPU tree", 15, 16)
	if err == nil {
		t.Fatal("mismatched sums must fail")
	}
	if !IsValidationError(err) {
		t.Errorf("mismatch must be a validation error, got %v", err)
	}
	if !IsFatal(err) {
		t.Error("an exact-equality mismatch is fatal for the run")
	}
	if !strings.Contains(err.Error(), "GPU tree") {
		t.Errorf("diagnostic must name the variant: %v", err)
	}
}
