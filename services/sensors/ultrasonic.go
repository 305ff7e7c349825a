package sensors

import (
	"math"
	"time"
)

// speed of sound at room temperature, in cm/s
const soundSpeedCmPerSec = 34300

// PulseSource measures one ultrasonic echo pulse.
type PulseSource interface {
	MeasurePulse() (time.Duration, error)
}

// Ultrasonic converts echo pulses of the ranger into whole-centimetre
// distances, optionally suppressing unchanged values.
type Ultrasonic struct {
	src     PulseSource
	prev    int
	hasPrev bool
}

func NewUltrasonic(src PulseSource) *Ultrasonic {
	return &Ultrasonic{src: src}
}

// Distance triggers samples measurements and returns their rounded mean
// in centimetres.
func (u *Ultrasonic) Distance(samples int) (int, error) {
	if samples < 1 {
		samples = 1
	}
	var sum float64
	for i := 0; i < samples; i++ {
		pulse, err := u.src.MeasurePulse()
		if err != nil {
			return 0, err
		}
		sum += pulse.Seconds() * soundSpeedCmPerSec / 2
	}
	return int(math.Round(sum / float64(samples))), nil
}

// DistanceOnChange measures like Distance but reports changed=false when
// the value equals the previous measurement.
func (u *Ultrasonic) DistanceOnChange(samples int) (distance int, changed bool, err error) {
	d, err := u.Distance(samples)
	if err != nil {
		return 0, false, err
	}
	if u.hasPrev && d == u.prev {
		return d, false, nil
	}
	u.prev = d
	u.hasPrev = true
	return d, true, nil
}
