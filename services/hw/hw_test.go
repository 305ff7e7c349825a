package hw

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestADCVoltageMapping(t *testing.T) {
	fake := NewFakeAnalog()
	fake.Queue(0, 1023)
	fake.Queue(1, 512)

	adc := NewADC(fake, 5.0, 1023)

	v, err := adc.Voltage(0)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, v, 1e-9)

	v, err = adc.Voltage(1)
	require.NoError(t, err)
	assert.InDelta(t, 5.0*512/1023, v, 1e-9)
}

func TestADCPropagatesReadError(t *testing.T) {
	fake := NewFakeAnalog()
	fake.Fail(3, assert.AnError)

	adc := NewADC(fake, 3.3, 4095)
	_, err := adc.Voltage(3)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestSoftPWMClampsDuty(t *testing.T) {
	line := &FakeLine{}
	pwm := NewSoftPWM(line, 2000)
	defer pwm.Stop()

	require.NoError(t, pwm.SetDuty(150))
	assert.Equal(t, 100.0, pwm.Duty())

	require.NoError(t, pwm.SetDuty(-5))
	assert.Equal(t, 0.0, pwm.Duty())
}

func TestSoftPWMStopDrivesLow(t *testing.T) {
	line := &FakeLine{}
	pwm := NewSoftPWM(line, 2000)
	require.NoError(t, pwm.SetDuty(50))

	time.Sleep(5 * time.Millisecond)
	pwm.Stop()

	assert.Equal(t, 0, line.Last())
	assert.NotEmpty(t, line.Writes())
}

func TestSoftPWMZeroDutyHoldsLow(t *testing.T) {
	line := &FakeLine{}
	pwm := NewSoftPWM(line, 2000)
	defer pwm.Stop()

	time.Sleep(3 * time.Millisecond)
	for _, v := range line.Writes() {
		assert.Equal(t, 0, v)
	}
}
