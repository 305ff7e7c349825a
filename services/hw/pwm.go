package hw

import (
	"sync"
	"time"

	"github.com/mlongus/MECH-EINF/timing"
)

// PWM sets an analog-equivalent output level as a duty cycle in percent.
type PWM interface {
	SetDuty(percent float64) error
}

// SoftPWM generates a software PWM signal on an output line from a
// background goroutine. Duty changes take effect on the next period.
// Zero duty holds the line low without stopping the goroutine, matching
// the enable-pin semantics of the motor driver.
type SoftPWM struct {
	line    Output
	period  time.Duration
	sleeper timing.Sleeper

	mu   sync.Mutex
	duty float64

	stop chan struct{}
	done chan struct{}
}

// NewSoftPWM starts a PWM goroutine at the given frequency with 0% duty.
func NewSoftPWM(line Output, frequencyHz int) *SoftPWM {
	if frequencyHz <= 0 {
		frequencyHz = 1000
	}
	p := &SoftPWM{
		line:    line,
		period:  time.Second / time.Duration(frequencyHz),
		sleeper: timing.NewBusy(),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go p.run()
	return p
}

// SetDuty sets the duty cycle, clamped to [0, 100].
func (p *SoftPWM) SetDuty(percent float64) error {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	p.mu.Lock()
	p.duty = percent
	p.mu.Unlock()
	return nil
}

// Duty returns the current duty cycle in percent.
func (p *SoftPWM) Duty() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.duty
}

// Stop drives the line low and terminates the PWM goroutine.
func (p *SoftPWM) Stop() {
	close(p.stop)
	<-p.done
}

func (p *SoftPWM) run() {
	defer close(p.done)
	defer p.line.SetValue(0)

	for {
		select {
		case <-p.stop:
			return
		default:
		}

		p.mu.Lock()
		duty := p.duty
		p.mu.Unlock()

		on := time.Duration(float64(p.period) * duty / 100)
		off := p.period - on

		if on > 0 {
			_ = p.line.SetValue(1)
			p.sleeper.Sleep(on)
		}
		if off > 0 {
			_ = p.line.SetValue(0)
			p.sleeper.Sleep(off)
		}
	}
}
