package actuators

import (
	"errors"

	"github.com/mlongus/MECH-EINF/services/hw"
)

// Direction selects the movement direction of the slide on the linear
// guideway.
type Direction int

const (
	Forward Direction = iota
	Reverse
)

func (d Direction) String() string {
	if d == Reverse {
		return "reverse"
	}
	return "forward"
}

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Forward {
		return Reverse
	}
	return Forward
}

// DCMotor drives the DC motor channel of the driver board: two direction
// pins plus a PWM on the enable pin for speed.
type DCMotor struct {
	m3, m4     hw.Output
	pwm        hw.PWM
	maxVoltage float64
}

func NewDCMotor(m3, m4 hw.Output, pwm hw.PWM, maxVoltage float64) *DCMotor {
	return &DCMotor{m3: m3, m4: m4, pwm: pwm, maxVoltage: maxVoltage}
}

// DutyForVoltage maps a target motor voltage to a duty cycle in percent,
// clamped to [0, 100].
func (m *DCMotor) DutyForVoltage(voltage float64) float64 {
	duty := voltage / m.maxVoltage * 100
	if duty < 0 {
		return 0
	}
	if duty > 100 {
		return 100
	}
	return duty
}

// Run sets the direction pins and the PWM duty cycle.
func (m *DCMotor) Run(dir Direction, duty float64) error {
	var err error
	if dir == Forward {
		err = errors.Join(m.m3.SetValue(1), m.m4.SetValue(0))
	} else {
		err = errors.Join(m.m3.SetValue(0), m.m4.SetValue(1))
	}
	if err != nil {
		return err
	}
	return m.pwm.SetDuty(duty)
}

// RunVoltage runs the motor at a target voltage instead of a raw duty.
func (m *DCMotor) RunVoltage(dir Direction, voltage float64) error {
	return m.Run(dir, m.DutyForVoltage(voltage))
}

// Coast sets the duty cycle to zero while keeping the direction pins.
func (m *DCMotor) Coast() error {
	return m.pwm.SetDuty(0)
}

// Stop drives both outputs low and disables the driver via 0% duty. Safe
// to call repeatedly; every exit path runs it.
func (m *DCMotor) Stop() error {
	return errors.Join(
		m.m3.SetValue(0),
		m.m4.SetValue(0),
		m.pwm.SetDuty(0),
	)
}
