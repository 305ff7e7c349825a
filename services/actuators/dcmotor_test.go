package actuators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlongus/MECH-EINF/services/hw"
)

func newTestMotor() (*DCMotor, *hw.FakeLine, *hw.FakeLine, *hw.FakePWM) {
	m3 := &hw.FakeLine{}
	m4 := &hw.FakeLine{}
	pwm := &hw.FakePWM{}
	return NewDCMotor(m3, m4, pwm, 12), m3, m4, pwm
}

func TestDCMotorDutyForVoltage(t *testing.T) {
	m, _, _, _ := newTestMotor()

	assert.InDelta(t, 75.0, m.DutyForVoltage(9), 1e-9)
	assert.InDelta(t, 50.0, m.DutyForVoltage(6), 1e-9)
	assert.Equal(t, 0.0, m.DutyForVoltage(-1))
	assert.Equal(t, 100.0, m.DutyForVoltage(15))
}

func TestDCMotorRunSetsDirectionPins(t *testing.T) {
	m, m3, m4, pwm := newTestMotor()

	require.NoError(t, m.Run(Forward, 75))
	assert.Equal(t, 1, m3.Last())
	assert.Equal(t, 0, m4.Last())
	assert.Equal(t, 75.0, pwm.LastDuty())

	require.NoError(t, m.Run(Reverse, 30))
	assert.Equal(t, 0, m3.Last())
	assert.Equal(t, 1, m4.Last())
	assert.Equal(t, 30.0, pwm.LastDuty())
}

func TestDCMotorStop(t *testing.T) {
	m, m3, m4, pwm := newTestMotor()

	require.NoError(t, m.RunVoltage(Forward, 9))
	require.NoError(t, m.Stop())

	assert.Equal(t, 0, m3.Last())
	assert.Equal(t, 0, m4.Last())
	assert.Equal(t, 0.0, pwm.LastDuty())
}

func TestDirectionFlip(t *testing.T) {
	assert.Equal(t, Reverse, Forward.Flip())
	assert.Equal(t, Forward, Reverse.Flip())
}
