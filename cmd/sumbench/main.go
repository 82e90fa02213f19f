// Command sumbench benchmarks the array-reduction kernel variants
// against the sequential and parallel host baselines. Every sum is
// exact integer arithmetic, so any disagreement aborts the run with a
// non-zero exit status.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/openkernels/gpumark"
)

var (
	nFlag      = flag.Int("n", 100*1000*1000, "Number of elements to reduce")
	trialsFlag = flag.Int("trials", gpumark.DefaultTrials, "Trials per benchmarked configuration")
	seedFlag   = flag.Uint("seed", 42, "Workload seed")
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

	w := gpumark.NewSumWorkload(*nFlag, uint32(*seedFlag))
	fmt.Printf("Data generated for N=%d on %s\n", *nFlag, dev.Name)

	h := gpumark.NewHarness(ctx, os.Stdout, os.Stderr)
	h.SetTrials(*trialsFlag)
	if *logFlag != "" {
		h.SetLogger(gpumark.NewSessionLogger(*logFlag))
	}

	if err := h.RunSum(w, gpumark.SumVariants()); err != nil {
		os.Exit(1)
	}
	if h.Failed() {
		os.Exit(1)
	}
}
