package gpumark

import (
	"testing"
)

func TestCompileResolvesEntryPoints(t *testing.T) {
	ctx := newTestContext(t)
	defer ctx.Destroy()

	for _, entry := range []string{"matmul_naive", "matmul_block", "matmul_many"} {
		k, err := ctx.Compile(MatMulProgram(), entry)
		if err != nil {
			t.Errorf("compile %q failed: %v", entry, err)
			continue
		}
		if k.Entry() != entry {
			t.Errorf("Entry() = %q, want %q", k.Entry(), entry)
		}
	}

	for _, entry := range []string{"sum_naive", "sum_loop", "sum_loop_coalesced", "sum_local", "sum_tree"} {
		if _, err := ctx.Compile(SumProgram(), entry); err != nil {
			t.Errorf("compile %q failed: %v", entry, err)
		}
	}
}

// An unknown entry point is a compile fault, which must abort the
// benchmarking pass.
func TestCompileUnknownEntry(t *testing.T) {
	ctx := newTestContext(t)
	defer ctx.Destroy()

	_, err := ctx.Compile(MatMulProgram(), "matmul_warp_shuffle")
	if err == nil {
		t.Fatal("unknown entry point must fail to compile")
	}
	if !IsFatal(err) {
		t.Errorf("compile fault must be fatal, got %v", err)
	}
}

func TestProgramDuplicateEntryPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("duplicate registration must panic")
		}
	}()

	p := NewProgram("dup")
	fn := func(g Group, args ...interface{}) {}
	p.Register("k", fn)
	p.Register("k", fn)
}
