package actuators

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlongus/MECH-EINF/services/hw"
)

type instantSleeper struct{}

func (instantSleeper) Sleep(time.Duration) {}

func newTestStepper(mode StepMode) (*Stepper, [4]*hw.FakeLine, *hw.FakeLine, *hw.FakeLine) {
	var coils [4]*hw.FakeLine
	var outs [4]hw.Output
	for i := range coils {
		coils[i] = &hw.FakeLine{}
		outs[i] = coils[i]
	}
	d1 := &hw.FakeLine{}
	d2 := &hw.FakeLine{}
	s := NewStepper(outs, d1, d2, mode, 0, instantSleeper{})
	return s, coils, d1, d2
}

func coilStates(coils [4]*hw.FakeLine, step int) [4]int {
	var state [4]int
	for i, c := range coils {
		state[i] = c.Writes()[step]
	}
	return state
}

func TestStepperForwardSequence(t *testing.T) {
	s, coils, _, _ := newTestStepper(FullStep)

	require.NoError(t, s.Step(4))

	want := [][4]int{
		{0, 1, 0, 1},
		{0, 1, 1, 0},
		{1, 0, 1, 0},
		{1, 0, 0, 1},
	}
	for i, w := range want {
		assert.Equal(t, w, coilStates(coils, i), "step %d", i)
	}
	assert.Equal(t, 4, s.Position())
}

func TestStepperBackwardReversesTraversal(t *testing.T) {
	s, coils, _, _ := newTestStepper(FullStep)

	require.NoError(t, s.Step(4))
	require.NoError(t, s.Step(-4))

	// steps 4..7 walk the table back down
	want := [][4]int{
		{1, 0, 1, 0},
		{0, 1, 1, 0},
		{0, 1, 0, 1},
		{1, 0, 0, 1},
	}
	for i, w := range want {
		assert.Equal(t, w, coilStates(coils, 4+i), "step %d", 4+i)
	}
	assert.Equal(t, 0, s.Position())
}

func TestStepperIndexWraps(t *testing.T) {
	s, _, _, _ := newTestStepper(FullStep)

	require.NoError(t, s.Step(4*1000 + 1))
	assert.Equal(t, 4001, s.Position())
	assert.Equal(t, 0, s.idx)

	require.NoError(t, s.Step(-4*2000 - 1))
	assert.Equal(t, -4000, s.Position())
	assert.Equal(t, 3, s.idx)
}

func TestStepperHalfStepHasEightStates(t *testing.T) {
	s, coils, _, _ := newTestStepper(HalfStep)

	require.NoError(t, s.Step(8))

	seen := map[[4]int]bool{}
	for i := 0; i < 8; i++ {
		seen[coilStates(coils, i)] = true
	}
	assert.Len(t, seen, 8)
}

func TestStepperStopSafesOutputs(t *testing.T) {
	s, coils, d1, d2 := newTestStepper(FullStep)

	require.NoError(t, s.Step(3))
	require.NoError(t, s.Stop())

	for i, c := range coils {
		assert.Equal(t, 0, c.Last(), "coil %d", i)
	}
	// drivers were enabled for the zeroing write, then disabled
	assert.Equal(t, []int{1, 0}, d1.Writes())
	assert.Equal(t, []int{1, 0}, d2.Writes())
}

func TestRunnerStepsUntilStopped(t *testing.T) {
	var coils [4]hw.Output
	var fakes [4]*hw.FakeLine
	for i := range coils {
		fakes[i] = &hw.FakeLine{}
		coils[i] = fakes[i]
	}
	s := NewStepper(coils, &hw.FakeLine{}, &hw.FakeLine{}, FullStep, 500*time.Microsecond, nil)

	r := NewRunner(s, Forward)
	r.Start()
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, r.Stop())

	pos := s.Position()
	assert.Greater(t, pos, 5)
	// Stop de-energised the coils
	for i, c := range fakes {
		assert.Equal(t, 0, c.Last(), "coil %d", i)
	}
}

func TestRunnerStopIsIdempotent(t *testing.T) {
	s, _, _, _ := newTestStepper(FullStep)
	r := NewRunner(s, Reverse)
	r.Start()
	require.NoError(t, r.Stop())
	require.NoError(t, r.Stop())
}
