package hw

import (
	"errors"
	"fmt"
	"time"

	"github.com/warthog618/gpiod"

	"github.com/mlongus/MECH-EINF/utils"
)

// ErrEchoTimeout is returned when the ranger produces no echo within the
// configured window. Callers treat it as a skipped reading.
var ErrEchoTimeout = errors.New("ultrasonic echo timeout")

// UltrasonicLine drives the single-wire Grove ultrasonic ranger: it emits
// a trigger pulse, flips the line to input and times the echo pulse.
type UltrasonicLine struct {
	line    *gpiod.Line
	timeout time.Duration
}

// OpenUltrasonic claims the ranger line as output.
func OpenUltrasonic(chip *Chip, cfg utils.UltrasonicConfig) (*UltrasonicLine, error) {
	l, err := chip.Output(cfg.Pin)
	if err != nil {
		return nil, err
	}
	timeout := time.Duration(cfg.TimeoutMs) * time.Millisecond
	if timeout <= 0 {
		timeout = 60 * time.Millisecond
	}
	return &UltrasonicLine{line: l, timeout: timeout}, nil
}

// MeasurePulse performs one trigger/echo cycle and returns the echo pulse
// width.
func (u *UltrasonicLine) MeasurePulse() (time.Duration, error) {
	_ = u.line.SetValue(0)
	spin(2 * time.Microsecond)
	_ = u.line.SetValue(1)
	spin(10 * time.Microsecond)
	_ = u.line.SetValue(0)

	if err := u.line.Reconfigure(gpiod.AsInput); err != nil {
		return 0, fmt.Errorf("echo reconfigure: %w", err)
	}
	defer u.line.Reconfigure(gpiod.AsOutput(0))

	deadline := time.Now().Add(u.timeout)
	if err := u.waitLevel(1, deadline); err != nil {
		return 0, err
	}
	start := time.Now()
	if err := u.waitLevel(0, deadline); err != nil {
		return 0, err
	}
	return time.Since(start), nil
}

func (u *UltrasonicLine) waitLevel(level int, deadline time.Time) error {
	for {
		v, err := u.line.Value()
		if err != nil {
			return fmt.Errorf("echo read: %w", err)
		}
		if v == level {
			return nil
		}
		if time.Now().After(deadline) {
			return ErrEchoTimeout
		}
	}
}

func spin(d time.Duration) {
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
	}
}
