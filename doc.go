// Package gpumark is a correctness-checked benchmarking harness for
// accelerator-style compute kernels executed on the CPU.
//
// It compares several implementations of the same numeric workload —
// dense matrix multiplication and large-array reduction — across a
// sequential host baseline, a parallel host baseline, and a set of
// device kernel variants that differ in memory-access strategy. Every
// variant runs through the same execute/measure/validate cycle: a
// deterministic workload is generated, a trusted reference result is
// computed on the host, each variant is timed over repeated trials,
// and its output is certified against the reference before its numbers
// are reported.
//
// The device model follows the explicit-transfer accelerator shape:
// buffers are allocated from a Context, inputs are uploaded before each
// trial, kernels are compiled by entry-point name and launched with a
// work-group geometry, and outputs are downloaded after completion.
// Work-groups execute in parallel across host workers while threads
// within a group run sequentially, so group-local staging behaves like
// OpenCL local memory without barrier emulation.
//
// Example:
//
//	dev, _ := gpumark.ChooseDevice(os.Args[1:])
//	ctx := gpumark.NewContext(dev)
//	defer ctx.Destroy()
//
//	w := gpumark.NewMatMulWorkload(1024, 1024, 1024, gpumark.MatMulSeed(1024, 1024, 1024))
//	h := gpumark.NewHarness(ctx, os.Stdout, os.Stderr)
//	if err := h.RunMatMul(w, gpumark.MatMulVariants()); err != nil {
//		log.Fatal(err)
//	}
//	if h.Failed() {
//		os.Exit(1)
//	}
package gpumark
