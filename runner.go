package gpumark

import (
	"io"
	"time"
)

// Harness drives the full benchmarking pass for one workload: host
// baselines first, then every accelerator variant through an identical
// execute/measure/validate cycle. A single control flow runs everything
// sequentially; trials never overlap and variants never mix.
//
// Failure propagation follows two paths. Compile faults, launch faults
// and exact-equality mismatches are fatal: the run unwinds immediately
// and no further variant is measured. A matmul variant exceeding the
// relative-error tolerance is a soft failure: its diagnostic is
// reported, benchmarking continues, and Failed reports true at the end.
type Harness struct {
	ctx    *Context
	rep    *Reporter
	ref    Reference
	trials int
	clock  func() time.Time
	logger *SessionLogger
	failed bool
}

// NewHarness creates a harness reporting to the given streams.
func NewHarness(ctx *Context, out, errw io.Writer) *Harness {
	return &Harness{
		ctx:    ctx,
		rep:    NewReporter(out, errw),
		trials: DefaultTrials,
		clock:  time.Now,
	}
}

// SetTrials overrides the trial count per configuration.
func (h *Harness) SetTrials(n int) {
	if n > 0 {
		h.trials = n
	}
}

// SetLogger attaches a JSON session logger.
func (h *Harness) SetLogger(l *SessionLogger) {
	h.logger = l
}

// Failed reports whether any variant failed validation. The process
// completion status must reflect this.
func (h *Harness) Failed() bool {
	return h.failed
}

func (h *Harness) newTimer() *LapTimer {
	return newLapTimer(h.clock)
}

// throughput derives operations per second scaled by unit; a degenerate
// zero mean reports zero rather than infinity.
func throughput(ops float64, meanSec float64) float64 {
	if meanSec <= 0 {
		return 0
	}
	return ops / meanSec
}

func (h *Harness) record(res SessionResult) {
	if h.logger != nil {
		h.logger.Log(res)
	}
}

// RunMatMul benchmarks the host baseline and every matmul variant on
// one workload. Tolerance failures are soft; device faults abort.
func (h *Harness) RunMatMul(w *MatMulWorkload, variants []MatMulVariant) error {
	gflop := float64(w.Flops()) / 1e9

	// Host baseline, benchmarked with the same trial discipline. Its
	// last output is frozen as the reference result for every variant.
	hostOut := make([]float32, w.OutputLen())
	t := h.newTimer()
	for i := 0; i < h.trials; i++ {
		h.ref.MatMulInto(w, hostOut)
		t.NextLap()
	}
	stats := t.Stats()
	h.rep.Stats("CPU", stats)
	h.rep.Throughput("CPU", throughput(gflop, stats.MeanSec), "GFlops")
	h.record(SessionResult{
		Workload: "matmul", Label: "CPU", Status: "pass",
		Trials: stats.Trials, MeanSec: stats.MeanSec, StdSec: stats.StdSec,
		Throughput: throughput(gflop, stats.MeanSec), Unit: "GFlops",
	})

	reference := append([]float32(nil), hostOut...)

	exec, err := NewMatMulExecutor(h.ctx, w)
	if err != nil {
		return err
	}
	defer exec.Release()

	for _, v := range variants {
		kernel, err := exec.Compile(v)
		if err != nil {
			h.fatal("matmul", v.Label, err)
			return err
		}

		t := h.newTimer()
		var last []float32
		for i := 0; i < h.trials; i++ {
			out, err := exec.Execute(kernel, v)
			if err != nil {
				h.fatal("matmul", v.Label, err)
				return err
			}
			last = out
			t.NextLap()
		}

		stats := t.Stats()
		h.rep.Stats(v.Label, stats)
		h.rep.Throughput(v.Label, throughput(gflop, stats.MeanSec), "GFlops")

		verdict := VerifyMatMul(reference, last, MatMulTolerance)
		h.rep.MatMulVerdict(v.Label, verdict)

		status := "pass"
		if !verdict.Pass {
			h.failed = true
			status = "fail"
		}
		h.record(SessionResult{
			Workload: "matmul", Label: v.Label, Status: status,
			Trials: stats.Trials, MeanSec: stats.MeanSec, StdSec: stats.StdSec,
			Throughput: throughput(gflop, stats.MeanSec), Unit: "GFlops",
			AvgRelError: verdict.AvgRelError,
		})
	}
	return nil
}

// RunSum benchmarks the host baselines and every reduction variant on
// one workload. All checks are exact; the first mismatch or device
// fault aborts the run.
func (h *Harness) RunSum(w *SumWorkload, variants []SumVariant) error {
	millions := float64(w.N) / 1e6
	refSum := h.ref.Sum(w)

	// Sequential baseline, re-checked against the frozen reference each
	// trial to catch mutable-state bugs in the harness itself.
	t := h.newTimer()
	for i := 0; i < h.trials; i++ {
		if err := VerifySum("CPU", refSum, h.ref.Sum(w)); err != nil {
			h.fatal("sum", "CPU", err)
			return err
		}
		t.NextLap()
	}
	h.emitSum("CPU", t.Stats(), millions)

	// The parallel baseline must agree exactly with the sequential one
	// before it can be trusted as a secondary reference.
	t = h.newTimer()
	for i := 0; i < h.trials; i++ {
		if err := VerifySum("CPU parallel", refSum, h.ref.ParallelSum(w)); err != nil {
			h.fatal("sum", "CPU parallel", err)
			return err
		}
		t.NextLap()
	}
	h.emitSum("CPU parallel", t.Stats(), millions)

	exec, err := NewSumExecutor(h.ctx, w)
	if err != nil {
		return err
	}
	defer exec.Release()

	for _, v := range variants {
		kernel, err := exec.Compile(v)
		if err != nil {
			h.fatal("sum", v.Label, err)
			return err
		}

		t := h.newTimer()
		var last uint32
		for i := 0; i < h.trials; i++ {
			sum, err := exec.Execute(kernel, v)
			if err != nil {
				h.fatal("sum", v.Label, err)
				return err
			}
			last = sum
			t.NextLap()
		}

		h.emitSum(v.Label, t.Stats(), millions)

		if err := VerifySum(v.Label, refSum, last); err != nil {
			h.fatal("sum", v.Label, err)
			return err
		}
	}
	return nil
}

func (h *Harness) emitSum(label string, stats TrialStats, millions float64) {
	h.rep.Stats(label, stats)
	h.rep.Throughput(label, throughput(millions, stats.MeanSec), "millions/s")
	h.record(SessionResult{
		Workload: "sum", Label: label, Status: "pass",
		Trials: stats.Trials, MeanSec: stats.MeanSec, StdSec: stats.StdSec,
		Throughput: throughput(millions, stats.MeanSec), Unit: "millions/s",
	})
}

// fatal reports an unrecoverable condition and marks the run failed
// before the caller unwinds.
func (h *Harness) fatal(workload, label string, err error) {
	h.failed = true
	h.rep.Fault(label, err)
	h.record(SessionResult{
		Workload: workload, Label: label, Status: "fail",
		Error: err.Error(),
	})
}
