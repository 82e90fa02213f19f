package gpumark

import (
	"testing"
)

func newTestContext(t *testing.T) *Context {
	t.Helper()
	dev, err := ChooseDevice(nil)
	if err != nil {
		t.Fatalf("ChooseDevice failed: %v", err)
	}
	return NewContext(dev)
}

func runMatMulVariant(t *testing.T, ctx *Context, w *MatMulWorkload, v MatMulVariant) []float32 {
	t.Helper()
	exec, err := NewMatMulExecutor(ctx, w)
	if err != nil {
		t.Fatalf("%s: executor setup failed: %v", v.Label, err)
	}
	defer exec.Release()

	kernel, err := exec.Compile(v)
	if err != nil {
		t.Fatalf("%s: compile failed: %v", v.Label, err)
	}
	out, err := exec.Execute(kernel, v)
	if err != nil {
		t.Fatalf("%s: execute failed: %v", v.Label, err)
	}
	return append([]float32(nil), out...)
}

// Every variant must reproduce the canonical 2x2 product within
// tolerance.
func TestMatMulVariants2x2(t *testing.T) {
	ctx := newTestContext(t)
	defer ctx.Destroy()

	w := &MatMulWorkload{
		M: 2, K: 2, N: 2,
		A: []float32{1, 2, 3, 4},
		B: []float32{5, 6, 7, 8},
	}
	want := []float32{19, 22, 43, 50}

	for _, v := range MatMulVariants() {
		got := runMatMulVariant(t, ctx, w, v)
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("%s: C[%d] = %v, want %v", v.Label, i, got[i], want[i])
			}
		}
	}
}

// Every variant must agree with the reference within the 1% average
// relative error across shapes, including shapes that do not divide
// evenly into the work-group geometry.
func TestMatMulVariantsAgainstReference(t *testing.T) {
	ctx := newTestContext(t)
	defer ctx.Destroy()

	shapes := []struct{ m, k, n int }{
		{16, 16, 16},
		{32, 48, 64},
		{17, 19, 23}, // ragged: exercises the bounds guards
		{1, 64, 1},
		{64, 1, 64},
	}

	for _, s := range shapes {
		w := NewMatMulWorkload(s.m, s.k, s.n, MatMulSeed(s.m, s.k, s.n))
		ref := Reference{}.MatMul(w)

		for _, v := range MatMulVariants() {
			got := runMatMulVariant(t, ctx, w, v)
			verdict := VerifyMatMul(ref, got, MatMulTolerance)
			if !verdict.Pass {
				t.Errorf("%s on %dx%dx%d: %s", v.Label, s.m, s.k, s.n, verdict)
			}
		}
	}
}

// Inputs must be re-uploaded every trial, so corruption of the device
// input buffers between trials cannot leak into the next result.
func TestMatMulExecutorReuploadsInputs(t *testing.T) {
	ctx := newTestContext(t)
	defer ctx.Destroy()

	w := NewMatMulWorkload(16, 16, 16, 3)
	exec, err := NewMatMulExecutor(ctx, w)
	if err != nil {
		t.Fatal(err)
	}
	defer exec.Release()

	v := MatMulVariants()[0]
	kernel, err := exec.Compile(v)
	if err != nil {
		t.Fatal(err)
	}

	first, err := exec.Execute(kernel, v)
	if err != nil {
		t.Fatal(err)
	}
	firstCopy := append([]float32(nil), first...)

	// Scribble over the device-resident inputs, as a faulty in-place
	// kernel would.
	for i := range exec.dA.Float32() {
		exec.dA.Float32()[i] = -1
	}

	second, err := exec.Execute(kernel, v)
	if err != nil {
		t.Fatal(err)
	}
	for i := range firstCopy {
		if second[i] != firstCopy[i] {
			t.Fatalf("trial result changed after input corruption at %d: %v vs %v", i, second[i], firstCopy[i])
		}
	}
}
