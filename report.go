package gpumark

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Reporter renders benchmark statistics and validation verdicts.
// Summary lines go to out; failure diagnostics go to errw.
type Reporter struct {
	out  io.Writer
	errw io.Writer
}

// NewReporter creates a reporter over the given streams.
func NewReporter(out, errw io.Writer) *Reporter {
	return &Reporter{out: out, errw: errw}
}

// Stats renders the latency line for one configuration:
// "<Label>: <mean>+-<stddev> s".
func (r *Reporter) Stats(label string, s TrialStats) {
	fmt.Fprintf(r.out, "%s: %g+-%g s\n", label, s.MeanSec, s.StdSec)
}

// Throughput renders the derived-throughput line:
// "<Label>: <throughput> <unit>".
func (r *Reporter) Throughput(label string, value float64, unit string) {
	fmt.Fprintf(r.out, "%s: %g %s\n", label, value, unit)
}

// MatMulVerdict renders the error magnitude of a matmul validation and,
// on failure, a diagnostic naming the variant.
func (r *Reporter) MatMulVerdict(label string, v MatMulVerdict) {
	fmt.Fprintf(r.out, "%s: average difference %.4f%%\n", label, v.AvgRelError*100)
	if !v.Pass {
		fmt.Fprintf(r.errw, "%s: validation failed: %s\n", label, v)
	}
}

// Fault renders a fatal condition before the harness unwinds.
func (r *Reporter) Fault(label string, err error) {
	fmt.Fprintf(r.errw, "%s: %v\n", label, err)
}

// SessionResult captures one benchmarked configuration for the JSON
// session log.
type SessionResult struct {
	Workload    string    `json:"workload"`
	Label       string    `json:"label"`
	Status      string    `json:"status"` // "pass" or "fail"
	Trials      int       `json:"trials"`
	MeanSec     float64   `json:"mean_sec"`
	StdSec      float64   `json:"std_sec"`
	Throughput  float64   `json:"throughput,omitempty"`
	Unit        string    `json:"unit,omitempty"`
	AvgRelError float64   `json:"avg_rel_error,omitempty"`
	Error       string    `json:"error,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// SessionLogger appends per-configuration results to a JSON file,
// flushing after every append so a crash loses nothing.
type SessionLogger struct {
	mu      sync.Mutex
	path    string
	results []SessionResult
}

// NewSessionLogger creates a logger writing to path.
func NewSessionLogger(path string) *SessionLogger {
	return &SessionLogger{path: path}
}

// Log records one result and flushes the file.
func (l *SessionLogger) Log(res SessionResult) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	res.Timestamp = time.Now()
	l.results = append(l.results, res)

	data, err := json.MarshalIndent(l.results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session results: %w", err)
	}
	return os.WriteFile(l.path, data, 0644)
}
