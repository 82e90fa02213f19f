package gpumark

import (
	"testing"
	"time"
)

// fakeClock advances by a fixed step on every reading.
type fakeClock struct {
	t    time.Time
	step time.Duration
}

func (c *fakeClock) now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

// A constant-time trial sequence must reduce to that constant with zero
// standard deviation.
func TestLapTimerConstantLaps(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0), step: 50 * time.Millisecond}
	timer := newLapTimer(clock.now)

	const trials = 10
	for i := 0; i < trials; i++ {
		if lap := timer.NextLap(); lap != 50*time.Millisecond {
			t.Fatalf("lap %d = %v, want 50ms", i, lap)
		}
	}

	stats := timer.Stats()
	if stats.Trials != trials {
		t.Errorf("Trials = %d, want %d", stats.Trials, trials)
	}
	if got, want := stats.MeanSec, 0.05; !closeTo(got, want, 1e-12) {
		t.Errorf("MeanSec = %v, want %v", got, want)
	}
	if stats.StdSec > 1e-12 {
		t.Errorf("StdSec = %v, want ~0 for constant laps", stats.StdSec)
	}
}

func TestLapTimerVariedLaps(t *testing.T) {
	base := time.Unix(0, 0)
	readings := []time.Time{
		base,
		base.Add(100 * time.Millisecond),
		base.Add(400 * time.Millisecond), // 300ms lap
	}
	i := 0
	timer := newLapTimer(func() time.Time {
		r := readings[i]
		i++
		return r
	})

	timer.NextLap()
	timer.NextLap()

	// Laps of 0.1s and 0.3s: mean 0.2, population stddev 0.1.
	if got := timer.Avg(); !closeTo(got, 0.2, 1e-12) {
		t.Errorf("Avg = %v, want 0.2", got)
	}
	if got := timer.Std(); !closeTo(got, 0.1, 1e-12) {
		t.Errorf("Std = %v, want 0.1", got)
	}
}

func TestLapTimerRestart(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0), step: time.Millisecond}
	timer := newLapTimer(clock.now)

	timer.NextLap()
	timer.NextLap()
	timer.Restart()
	if len(timer.Laps()) != 0 {
		t.Fatalf("laps not cleared on restart: %d", len(timer.Laps()))
	}
	if timer.Avg() != 0 || timer.Std() != 0 {
		t.Error("empty timer should report zero stats")
	}
}

func closeTo(a, b, eps float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}
