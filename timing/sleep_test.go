package timing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sleepers() map[string]Sleeper {
	return map[string]Sleeper{
		"passive":  Passive{},
		"busy":     NewBusy(),
		"adaptive": NewAdaptive(),
		"tiered":   Tiered{},
	}
}

func TestSleepNeverReturnsEarly(t *testing.T) {
	targets := []time.Duration{
		300 * time.Microsecond,
		800 * time.Microsecond,
		3 * time.Millisecond,
		12 * time.Millisecond,
	}

	for name, s := range sleepers() {
		for _, target := range targets {
			start := time.Now()
			s.Sleep(target)
			elapsed := time.Since(start)
			assert.GreaterOrEqual(t, elapsed, target, "%s slept %s for target %s", name, elapsed, target)
		}
	}
}

func TestSleepZeroAndNegative(t *testing.T) {
	for name, s := range sleepers() {
		if name == "passive" {
			continue // time.Sleep handles this itself
		}
		start := time.Now()
		s.Sleep(0)
		s.Sleep(-time.Millisecond)
		assert.Less(t, time.Since(start), 10*time.Millisecond, name)
	}
}

func TestAdaptiveOverheadStaysBounded(t *testing.T) {
	a := NewAdaptive()
	for i := 0; i < 50; i++ {
		a.Sleep(2 * time.Millisecond)
	}
	o := a.Overhead()
	require.GreaterOrEqual(t, o, adaptiveMin)
	require.LessOrEqual(t, o, adaptiveMax)
}

func TestMeasure(t *testing.T) {
	st := Measure(NewBusy(), 2*time.Millisecond, 5)
	assert.GreaterOrEqual(t, st.Max, st.Avg)
	assert.GreaterOrEqual(t, st.Avg, st.Min)
	// a busy sleeper on an idle test machine should be well under 1ms off
	assert.Less(t, st.Avg, time.Millisecond)
}

func TestMeasureSingleIteration(t *testing.T) {
	st := Measure(Passive{}, time.Millisecond, 0)
	assert.Equal(t, time.Duration(0), st.StdDev)
}
