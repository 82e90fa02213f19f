package gpumark

import (
	"fmt"
)

// Program is a named collection of kernel entry points, the analogue of
// a compiled source blob on a real accelerator. The harness binds to
// kernels purely by entry-point string and never inspects kernel
// internals.
type Program struct {
	name    string
	entries map[string]GroupFunc
}

// NewProgram creates an empty program with the given name.
func NewProgram(name string) *Program {
	return &Program{
		name:    name,
		entries: make(map[string]GroupFunc),
	}
}

// Register adds an entry point to the program. Registering the same
// entry twice is a programming error and panics.
func (p *Program) Register(entry string, fn GroupFunc) {
	if _, dup := p.entries[entry]; dup {
		panic(fmt.Sprintf("program %s: duplicate entry point %s", p.name, entry))
	}
	p.entries[entry] = fn
}

// Name returns the program name.
func (p *Program) Name() string {
	return p.name
}

// CompiledKernel is a resolved entry point ready for launch. Callers
// compile once per variant and reuse the kernel across that variant's
// trials; compiled kernels are never shared across variants.
type CompiledKernel struct {
	program string
	entry   string
	fn      GroupFunc
}

// Entry returns the entry-point name the kernel was compiled from.
func (k *CompiledKernel) Entry() string {
	return k.entry
}

// Compile resolves an entry point of a program on this context. An
// unknown entry point is a compile fault, which is fatal for the
// benchmarking pass.
func (ctx *Context) Compile(p *Program, entry string) (*CompiledKernel, error) {
	fn, ok := p.entries[entry]
	if !ok {
		return nil, NewCompileError("Compile",
			fmt.Sprintf("program %s has no entry point %q", p.name, entry), nil)
	}
	return &CompiledKernel{
		program: p.name,
		entry:   entry,
		fn:      fn,
	}, nil
}
