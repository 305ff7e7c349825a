// Package timing provides precision sleep strategies for motor step
// delays. A plain time.Sleep on Linux routinely oversleeps by hundreds of
// microseconds, which at 3 ms step times audibly degrades stepper motion.
// All strategies here trade CPU for accuracy by finishing the wait in a
// spin loop on the monotonic clock.
package timing

import (
	"sync"
	"time"
)

// Sleeper waits for at least the given duration.
type Sleeper interface {
	Sleep(d time.Duration)
}

// Passive is plain time.Sleep, kept as the baseline strategy.
type Passive struct{}

func (Passive) Sleep(d time.Duration) { time.Sleep(d) }

// Busy sleeps passively for most of the duration and spins the remainder.
type Busy struct {
	// Guard is the spin window reserved at the end of the wait.
	Guard time.Duration
	// Threshold is the minimum duration for which a passive sleep is
	// attempted at all; shorter waits spin from the start.
	Threshold time.Duration
}

// NewBusy returns a Busy sleeper with the tuning used on the lab rigs.
func NewBusy() *Busy {
	return &Busy{Guard: 200 * time.Microsecond, Threshold: 400 * time.Microsecond}
}

func (b *Busy) Sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	deadline := time.Now().Add(d)
	if d > b.Threshold {
		time.Sleep(d - b.Guard)
	}
	spinUntil(deadline)
}

// Adaptive learns the kernel's sleep overshoot and reserves exactly that
// much for spinning. The overhead estimate is nudged by ±10% per call and
// kept within fixed bounds.
type Adaptive struct {
	mu       sync.Mutex
	overhead time.Duration
}

const (
	adaptiveInitial = 500 * time.Microsecond
	adaptiveMin     = 200 * time.Microsecond
	adaptiveMax     = 2 * time.Millisecond
)

func NewAdaptive() *Adaptive {
	return &Adaptive{overhead: adaptiveInitial}
}

// Overhead returns the current learned sleep overshoot estimate.
func (a *Adaptive) Overhead() time.Duration {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.overhead
}

func (a *Adaptive) Sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	deadline := time.Now().Add(d)

	a.mu.Lock()
	overhead := a.overhead
	a.mu.Unlock()

	// Too short for a passive phase: spin the whole wait.
	if d <= 2*overhead {
		spinUntil(deadline)
		return
	}

	passive := d - overhead
	sleepStart := time.Now()
	time.Sleep(passive)
	slept := time.Since(sleepStart)

	a.mu.Lock()
	oversleep := slept - passive
	if oversleep > 0 {
		a.overhead = min(a.overhead+a.overhead/10, adaptiveMax)
	} else if oversleep < -100*time.Microsecond {
		a.overhead = max(a.overhead-a.overhead/10, adaptiveMin)
	}
	a.mu.Unlock()

	spinUntil(deadline)
}

// Tiered picks the passive/spin split from the duration itself, tuned for
// the step-time ranges the stepper labs actually use.
type Tiered struct{}

func (Tiered) Sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	deadline := time.Now().Add(d)
	switch {
	case d < 500*time.Microsecond:
		// spin only
	case d < 2*time.Millisecond:
		time.Sleep(d - 300*time.Microsecond)
	case d < 10*time.Millisecond:
		time.Sleep(d - 500*time.Microsecond)
	default:
		time.Sleep(d - time.Millisecond)
	}
	spinUntil(deadline)
}

func spinUntil(deadline time.Time) {
	for time.Now().Before(deadline) {
	}
}
