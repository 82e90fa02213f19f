package gpumark

import (
	"testing"
)

func TestMemoryAllocation(t *testing.T) {
	ctx := newTestContext(t)
	defer ctx.Destroy()

	sizes := []int{100, 1000, 10000, 1000000}
	for _, size := range sizes {
		ptr, err := ctx.Malloc(size * 4)
		if err != nil {
			t.Fatalf("failed to allocate %d bytes: %v", size*4, err)
		}

		slice := ptr.Float32()
		if len(slice) != size {
			t.Errorf("expected slice length %d, got %d", size, len(slice))
		}

		for i := 0; i < min(100, size); i++ {
			slice[i] = float32(i)
		}
		for i := 0; i < min(100, size); i++ {
			if slice[i] != float32(i) {
				t.Errorf("memory corruption at index %d", i)
			}
		}

		if err := ctx.Free(ptr); err != nil {
			t.Fatalf("failed to free memory: %v", err)
		}
	}

	if _, err := ctx.Malloc(0); err == nil {
		t.Error("zero-size allocation must fail")
	}
}

func TestMemcpyRoundTrip(t *testing.T) {
	ctx := newTestContext(t)
	defer ctx.Destroy()

	const n = 1000
	src := make([]float32, n)
	dst := make([]float32, n)
	r := NewFastRand(5)
	for i := range src {
		src[i] = r.NextFloat()
	}

	dMem, err := ctx.Malloc(n * 4)
	if err != nil {
		t.Fatal(err)
	}
	defer ctx.Free(dMem)

	if err := ctx.Memcpy(dMem, src, n*4, MemcpyHostToDevice); err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if err := ctx.Memcpy(dst, dMem, n*4, MemcpyDeviceToHost); err != nil {
		t.Fatalf("download failed: %v", err)
	}
	for i := range src {
		if src[i] != dst[i] {
			t.Fatalf("round trip mismatch at %d: %v vs %v", i, src[i], dst[i])
		}
	}

	// uint32 operands share the same byte-wise path.
	u := []uint32{1, 2, 3, 4, 5}
	if err := ctx.Memcpy(dMem, u, len(u)*4, MemcpyHostToDevice); err != nil {
		t.Fatalf("uint32 upload failed: %v", err)
	}
	for i, want := range u {
		if got := dMem.Uint32()[i]; got != want {
			t.Errorf("uint32 view[%d] = %d, want %d", i, got, want)
		}
	}

	if err := ctx.Memcpy(dMem, src, (n+1)*4, MemcpyHostToDevice); err == nil {
		t.Error("oversized copy must fail")
	}
	if err := ctx.Memcpy(dMem, 42, 4, MemcpyHostToDevice); err == nil {
		t.Error("unsupported operand type must fail")
	}
}

func TestMemoryPoolReuse(t *testing.T) {
	mp := NewMemoryPool()

	first, err := mp.Allocate(1024)
	if err != nil {
		t.Fatal(err)
	}
	if err := mp.Free(first); err != nil {
		t.Fatal(err)
	}

	// A same-size allocation must come out of the free list.
	second, err := mp.Allocate(1024)
	if err != nil {
		t.Fatal(err)
	}
	if second.ptr != first.ptr {
		t.Error("pool did not reuse the freed block")
	}
}

func TestMemoryPoolErrors(t *testing.T) {
	mp := NewMemoryPool()

	ptr, err := mp.Allocate(100)
	if err != nil {
		t.Fatal(err)
	}
	if err := mp.Free(ptr); err != nil {
		t.Fatalf("first free failed: %v", err)
	}
	if err := mp.Free(ptr); err == nil {
		t.Error("double free should have failed")
	}

	if err := mp.Free(DevicePtr{}); err == nil {
		t.Error("freeing an unknown pointer should fail")
	}
}

func TestMemoryPoolStats(t *testing.T) {
	mp := NewMemoryPool()

	ptrs := make([]DevicePtr, 10)
	for i := range ptrs {
		p, err := mp.Allocate(1024 * 1024)
		if err != nil {
			t.Fatal(err)
		}
		ptrs[i] = p
	}

	allocated, peak := mp.GetStats()
	if allocated <= 0 || peak < allocated {
		t.Errorf("stats inconsistent: allocated=%d peak=%d", allocated, peak)
	}

	for _, p := range ptrs[:5] {
		mp.Free(p)
	}
	allocated2, peak2 := mp.GetStats()
	if allocated2 >= allocated {
		t.Error("allocated should have decreased")
	}
	if peak2 != peak {
		t.Error("peak should not have changed")
	}
}
