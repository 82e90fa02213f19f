package gpumark

import (
	"math"
	"time"
)

// LapTimer measures a sequence of trial durations. NextLap records the
// time since the previous lap (or since construction/Restart for the
// first one); Avg and Std reduce the recorded laps to summary
// statistics in seconds.
type LapTimer struct {
	now  func() time.Time
	last time.Time
	laps []time.Duration
}

// NewLapTimer creates a timer on the wall clock and starts the first
// lap.
func NewLapTimer() *LapTimer {
	return newLapTimer(time.Now)
}

// newLapTimer creates a timer on an arbitrary clock. Tests inject a
// synthetic clock to get deterministic laps.
func newLapTimer(now func() time.Time) *LapTimer {
	t := &LapTimer{now: now}
	t.Restart()
	return t
}

// Restart drops recorded laps and starts a new first lap.
func (t *LapTimer) Restart() {
	t.laps = t.laps[:0]
	t.last = t.now()
}

// NextLap records the duration since the previous lap boundary and
// returns it.
func (t *LapTimer) NextLap() time.Duration {
	nowT := t.now()
	lap := nowT.Sub(t.last)
	t.last = nowT
	t.laps = append(t.laps, lap)
	return lap
}

// Laps returns the recorded lap durations.
func (t *LapTimer) Laps() []time.Duration {
	return t.laps
}

// Avg returns the mean lap duration in seconds.
func (t *LapTimer) Avg() float64 {
	if len(t.laps) == 0 {
		return 0
	}
	var total float64
	for _, lap := range t.laps {
		total += lap.Seconds()
	}
	return total / float64(len(t.laps))
}

// Std returns the standard deviation of the lap durations in seconds.
func (t *LapTimer) Std() float64 {
	n := len(t.laps)
	if n < 2 {
		return 0
	}
	avg := t.Avg()
	var sq float64
	for _, lap := range t.laps {
		d := lap.Seconds() - avg
		sq += d * d
	}
	return math.Sqrt(sq / float64(n))
}

// TrialStats is the reduced timing summary of one benchmarked
// configuration.
type TrialStats struct {
	Trials  int
	MeanSec float64
	StdSec  float64
}

// Stats reduces the recorded laps.
func (t *LapTimer) Stats() TrialStats {
	return TrialStats{
		Trials:  len(t.laps),
		MeanSec: t.Avg(),
		StdSec:  t.Std(),
	}
}
