package gpumark

// Executors own the device-side buffers for one workload's trial
// sequence. Buffers are sized exactly to the workload, allocated once,
// and reused across trials; inputs are re-uploaded on every execution
// so an in-place kernel fault cannot leak state between trials, and
// outputs are re-downloaded so the measurement covers the full
// kernel-visible transfer cycle.

// MatMulExecutor drives matmul variants on the device.
type MatMulExecutor struct {
	ctx        *Context
	w          *MatMulWorkload
	prog       *Program
	dA, dB, dC DevicePtr
	hostC      []float32
}

// NewMatMulExecutor allocates device buffers for the workload.
func NewMatMulExecutor(ctx *Context, w *MatMulWorkload) (*MatMulExecutor, error) {
	e := &MatMulExecutor{
		ctx:   ctx,
		w:     w,
		prog:  MatMulProgram(),
		hostC: make([]float32, w.OutputLen()),
	}

	var err error
	if e.dA, err = ctx.Malloc(w.M * w.K * 4); err != nil {
		return nil, err
	}
	if e.dB, err = ctx.Malloc(w.K * w.N * 4); err != nil {
		e.Release()
		return nil, err
	}
	if e.dC, err = ctx.Malloc(w.M * w.N * 4); err != nil {
		e.Release()
		return nil, err
	}
	return e, nil
}

// Compile resolves a variant's entry point. The result is valid for
// this executor's workload only and should be reused across the
// variant's trials.
func (e *MatMulExecutor) Compile(v MatMulVariant) (*CompiledKernel, error) {
	return e.ctx.Compile(e.prog, v.Entry)
}

// Execute runs one trial: upload inputs, launch with the variant's
// geometry, download the product. The returned slice is reused by the
// next call.
func (e *MatMulExecutor) Execute(k *CompiledKernel, v MatMulVariant) ([]float32, error) {
	w := e.w
	if err := e.ctx.Memcpy(e.dA, w.A, w.M*w.K*4, MemcpyHostToDevice); err != nil {
		return nil, err
	}
	if err := e.ctx.Memcpy(e.dB, w.B, w.K*w.N*4, MemcpyHostToDevice); err != nil {
		return nil, err
	}

	if err := e.ctx.Launch(k, v.Geometry(w), e.dA, e.dB, e.dC, w.M, w.K, w.N); err != nil {
		return nil, err
	}

	if err := e.ctx.Memcpy(e.hostC, e.dC, w.M*w.N*4, MemcpyDeviceToHost); err != nil {
		return nil, err
	}
	return e.hostC, nil
}

// Release frees the device buffers. Safe to call more than once for
// buffers already freed.
func (e *MatMulExecutor) Release() {
	for _, ptr := range []DevicePtr{e.dA, e.dB, e.dC} {
		if ptr.Size() > 0 {
			e.ctx.Free(ptr)
		}
	}
	e.dA, e.dB, e.dC = DevicePtr{}, DevicePtr{}, DevicePtr{}
}

// SumExecutor drives reduction variants on the device.
type SumExecutor struct {
	ctx  *Context
	w    *SumWorkload
	prog *Program
	dIn  DevicePtr
	dOut DevicePtr
}

// NewSumExecutor allocates device buffers for the workload.
func NewSumExecutor(ctx *Context, w *SumWorkload) (*SumExecutor, error) {
	e := &SumExecutor{
		ctx:  ctx,
		w:    w,
		prog: SumProgram(),
	}

	var err error
	if e.dIn, err = ctx.Malloc(w.N * 4); err != nil {
		return nil, err
	}
	if e.dOut, err = ctx.Malloc(4); err != nil {
		e.Release()
		return nil, err
	}
	return e, nil
}

// Compile resolves a variant's entry point.
func (e *SumExecutor) Compile(v SumVariant) (*CompiledKernel, error) {
	return e.ctx.Compile(e.prog, v.Entry)
}

// Execute runs one trial: upload the input, zero the accumulator,
// launch, download the sum.
func (e *SumExecutor) Execute(k *CompiledKernel, v SumVariant) (uint32, error) {
	w := e.w
	if err := e.ctx.Memcpy(e.dIn, w.Data, w.N*4, MemcpyHostToDevice); err != nil {
		return 0, err
	}
	zero := []uint32{0}
	if err := e.ctx.Memcpy(e.dOut, zero, 4, MemcpyHostToDevice); err != nil {
		return 0, err
	}

	if err := e.ctx.Launch(k, v.Geometry(w.N), e.dIn, w.N, e.dOut); err != nil {
		return 0, err
	}

	result := []uint32{0}
	if err := e.ctx.Memcpy(result, e.dOut, 4, MemcpyDeviceToHost); err != nil {
		return 0, err
	}
	return result[0], nil
}

// Release frees the device buffers.
func (e *SumExecutor) Release() {
	for _, ptr := range []DevicePtr{e.dIn, e.dOut} {
		if ptr.Size() > 0 {
			e.ctx.Free(ptr)
		}
	}
	e.dIn, e.dOut = DevicePtr{}, DevicePtr{}
}
