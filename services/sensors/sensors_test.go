package sensors

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlongus/MECH-EINF/models"
	"github.com/mlongus/MECH-EINF/services/hw"
	"github.com/mlongus/MECH-EINF/utils"
)

func grove5V(fake *hw.FakeAnalog) *hw.ADC {
	return hw.NewADC(fake, 5.0, 1023)
}

func TestPotentiometerAngle(t *testing.T) {
	fake := hw.NewFakeAnalog()
	fake.Queue(0, 512) // ~2.5 V

	pot := NewPotentiometer(grove5V(fake), 0)
	pot.SetCalibration(models.PotCalibration{Sensitivity: 0.02, Offset: 3.0})

	r, err := pot.Angle()
	require.NoError(t, err)
	assert.InDelta(t, 2.5024, r.Voltage, 0.001)
	// (3.0 - 2.5024) / 0.02 rounded to two decimals
	assert.InDelta(t, 24.88, r.Angle, 0.01)
}

func TestPotentiometerCalibrate(t *testing.T) {
	fake := hw.NewFakeAnalog()
	// -90°: 1.0 V, +90°: 4.6 V, 0°: 2.8 V
	fake.Queue(0, 205, 941, 573)

	pot := NewPotentiometer(grove5V(fake), 0)
	prompter := utils.NewPrompter(strings.NewReader("\n\n\n"), &strings.Builder{})

	cal, err := pot.Calibrate(prompter, utils.PotCalibrationConfig{MinAngle: -90, MaxAngle: 90})
	require.NoError(t, err)

	assert.InDelta(t, (4.6-1.0)/180, cal.Sensitivity, 0.01)
	assert.InDelta(t, 2.8, cal.Offset, 0.01)
}

func TestPotentiometerCalibrateRejectsZeroSpan(t *testing.T) {
	pot := NewPotentiometer(grove5V(hw.NewFakeAnalog()), 0)
	prompter := utils.NewPrompter(strings.NewReader("\n\n\n"), &strings.Builder{})

	_, err := pot.Calibrate(prompter, utils.PotCalibrationConfig{MinAngle: 45, MaxAngle: 45})
	assert.Error(t, err)
}

func TestIRRangerAveragesAndSkipsErrors(t *testing.T) {
	fake := hw.NewFakeAnalog()
	fake.Fail(2, assert.AnError)
	fake.Queue(2, 409, 409, 614, 614) // 2.0, 2.0, 3.0, 3.0 V

	ir := NewIRRanger(grove5V(fake), 2, utils.IRPolynomial{})

	v, err := ir.AverageVoltage(4)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, v, 0.01)
}

func TestIRRangerGivesUpOnPersistentErrors(t *testing.T) {
	fake := hw.NewFakeAnalog()
	for i := 0; i < 50; i++ {
		fake.Fail(2, assert.AnError)
	}

	ir := NewIRRanger(grove5V(fake), 2, utils.IRPolynomial{})
	_, err := ir.AverageVoltage(2)
	assert.Error(t, err)
}

func TestIRRangerDistancePolynomial(t *testing.T) {
	fake := hw.NewFakeAnalog()
	fake.Queue(2, 409) // ~2.0 V

	poly := utils.IRPolynomial{A: 44.593, B: -152.73, C: 159.38}
	ir := NewIRRanger(grove5V(fake), 2, poly)

	d, err := ir.Distance(1)
	require.NoError(t, err)

	v := 5.0 * 409 / 1023
	want := poly.A*v*v + poly.B*v + poly.C
	assert.InDelta(t, want, d, 0.01)
}

type fakePulse struct {
	pulses []time.Duration
	errs   []error
}

func (f *fakePulse) MeasurePulse() (time.Duration, error) {
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		return 0, err
	}
	p := f.pulses[0]
	if len(f.pulses) > 1 {
		f.pulses = f.pulses[1:]
	}
	return p, nil
}

func TestUltrasonicDistance(t *testing.T) {
	// 2 ms echo -> 34.3 cm
	u := NewUltrasonic(&fakePulse{pulses: []time.Duration{2 * time.Millisecond}})

	d, err := u.Distance(1)
	require.NoError(t, err)
	assert.Equal(t, 34, d)
}

func TestUltrasonicDistanceAverages(t *testing.T) {
	u := NewUltrasonic(&fakePulse{pulses: []time.Duration{
		2 * time.Millisecond,
		4 * time.Millisecond,
	}})

	d, err := u.Distance(2)
	require.NoError(t, err)
	assert.Equal(t, 51, d) // (34.3 + 68.6) / 2 rounded
}

func TestUltrasonicDistanceOnChange(t *testing.T) {
	u := NewUltrasonic(&fakePulse{pulses: []time.Duration{
		2 * time.Millisecond,
		2 * time.Millisecond,
		4 * time.Millisecond,
	}})

	d, changed, err := u.DistanceOnChange(1)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 34, d)

	_, changed, err = u.DistanceOnChange(1)
	require.NoError(t, err)
	assert.False(t, changed)

	d, changed, err = u.DistanceOnChange(1)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 69, d)
}

func TestUltrasonicPropagatesTimeout(t *testing.T) {
	u := NewUltrasonic(&fakePulse{errs: []error{hw.ErrEchoTimeout}, pulses: []time.Duration{0}})
	_, err := u.Distance(1)
	assert.ErrorIs(t, err, hw.ErrEchoTimeout)
}

func TestProximityDetected(t *testing.T) {
	line := &hw.FakeLine{}
	line.QueueReads(1, 0)

	p := NewProximity(line)

	got, err := p.Detected()
	require.NoError(t, err)
	assert.True(t, got)

	got, err = p.Detected()
	require.NoError(t, err)
	assert.False(t, got)
}
