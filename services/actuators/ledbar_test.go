package actuators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlongus/MECH-EINF/services/hw"
)

// one frame: begin word + 10 LED words + 2 padding words, 16 data bits
// each, plus latch traffic on dio (1 low + 4 pulses of high/low)
const frameDataBits = 13 * 16

func TestLedBarFrameShape(t *testing.T) {
	dio := &hw.FakeLine{}
	clk := &hw.FakeLine{}
	bar := NewLedBar(dio, clk, false)

	require.NoError(t, bar.SetLevel(3))

	// every data bit gets exactly one clock edge
	assert.Len(t, clk.Writes(), frameDataBits+1) // +1 from the latch cycle
	assert.Len(t, dio.Writes(), frameDataBits+1+8)
	assert.Equal(t, 0, dio.Last())
}

func TestLedBarLevelBits(t *testing.T) {
	dio := &hw.FakeLine{}
	bar := NewLedBar(dio, &hw.FakeLine{}, false)

	require.NoError(t, bar.SetLevel(3))

	// reconstruct the 10 LED words from the recorded dio bits
	bits := dio.Writes()
	lit := 0
	for w := 0; w < LedBarLevels; w++ {
		var word uint16
		for i := 0; i < 16; i++ {
			word = word<<1 | uint16(bits[16+(w*16)+i])
		}
		if word != 0 {
			assert.Equal(t, uint16(ledBarBrightness), word)
			lit++
		}
	}
	assert.Equal(t, 3, lit)
}

func TestLedBarRejectsOutOfRange(t *testing.T) {
	bar := NewLedBar(&hw.FakeLine{}, &hw.FakeLine{}, false)

	assert.Error(t, bar.SetLevel(-1))
	assert.Error(t, bar.SetLevel(11))
}

func TestLedBarOff(t *testing.T) {
	dio := &hw.FakeLine{}
	bar := NewLedBar(dio, &hw.FakeLine{}, false)

	require.NoError(t, bar.Off())

	// no LED word carries brightness
	for _, b := range dio.Writes()[:frameDataBits] {
		if b != 0 {
			// latch pulses are the only high bits allowed, and they come later
			t.Fatalf("unexpected high data bit in off frame")
		}
	}
}

func TestLedBarClockAlternates(t *testing.T) {
	clk := &hw.FakeLine{}
	bar := NewLedBar(&hw.FakeLine{}, clk, false)

	require.NoError(t, bar.SetLevel(10))

	prev := -1
	for _, v := range clk.Writes() {
		assert.NotEqual(t, prev, v)
		prev = v
	}
}
