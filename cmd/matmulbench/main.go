// Command matmulbench benchmarks the dense matrix-multiplication
// kernel variants against the host reference and validates every
// variant within the relative-error tolerance. The process exits
// non-zero if any variant fails validation.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/openkernels/gpumark"
)

var (
	mFlag      = flag.Int("m", 1024, "Height of the first matrix")
	kFlag      = flag.Int("k", 1024, "Width of the first matrix and height of the second")
	nFlag      = flag.Int("n", 1024, "Width of the second matrix")
	trialsFlag = flag.Int("trials", gpumark.DefaultTrials, "Trials per benchmarked configuration")
	seedFlag   = flag.Uint("seed", 0, "Workload seed (0 derives the seed from the shape)")
	logFlag    = flag.String("log", "", "Write a JSON session log to this file")
)

func main() {
	flag.Parse()

	// Remaining arguments select the device.
	dev, err := gpumark.ChooseDevice(flag.Args())
	if err != nil {
		log.Fatal(err)
	}
	ctx := gpumark.NewContext(dev)
	defer ctx.Destroy()

	seed := uint32(*seedFlag)
	if seed == 0 {
		seed = gpumark.MatMulSeed(*mFlag, *kFlag, *nFlag)
	}
	w := gpumark.NewMatMulWorkload(*mFlag, *kFlag, *nFlag, seed)
	fmt.Printf("Data generated for M=%d, K=%d, N=%d on %s\n", *mFlag, *kFlag, *nFlag, dev.Name)

	h := gpumark.NewHarness(ctx, os.Stdout, os.Stderr)
	h.SetTrials(*trialsFlag)
	if *logFlag != "" {
		h.SetLogger(gpumark.NewSessionLogger(*logFlag))
	}

	if err := h.RunMatMul(w, gpumark.MatMulVariants()); err != nil {
		os.Exit(1)
	}
	if h.Failed() {
		os.Exit(1)
	}
}
