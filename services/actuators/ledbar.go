// Package actuators implements the rig's output devices: the Grove LED
// bar, the DC motor driver and the stepper motor.
package actuators

import (
	"fmt"
	"time"

	"github.com/mlongus/MECH-EINF/services/hw"
)

const (
	// LedBarLevels is the number of individual LEDs on the bar.
	LedBarLevels = 10

	ledBarBrightness = 0xFF
	// Tstart of the MY9221 latch cycle
	ledBarLatchDelay = 220 * time.Microsecond
)

// LedBar drives the 10-segment Grove LED bar by bit-banging 16-bit
// grayscale words to its MY9221 controller over a data and a clock line.
type LedBar struct {
	dio      hw.Output
	clk      hw.Output
	reverse  bool
	clkState int
}

func NewLedBar(dio, clk hw.Output, reverse bool) *LedBar {
	return &LedBar{dio: dio, clk: clk, reverse: reverse}
}

// SetLevel lights the first level LEDs, 0..10.
func (b *LedBar) SetLevel(level int) error {
	if level < 0 || level > LedBarLevels {
		return fmt.Errorf("led bar level %d out of range 0-%d", level, LedBarLevels)
	}

	// 8-bit grayscale mode
	if err := b.write16(0); err != nil {
		return err
	}

	for i := 0; i < LedBarLevels; i++ {
		led := i
		if !b.reverse {
			led = LedBarLevels - 1 - i
		}
		var word uint16
		if level > led {
			word = ledBarBrightness
		}
		if err := b.write16(word); err != nil {
			return err
		}
	}

	// fill the 208-bit shift register
	if err := b.write16(0); err != nil {
		return err
	}
	if err := b.write16(0); err != nil {
		return err
	}
	return b.latch()
}

// Off turns every LED off.
func (b *LedBar) Off() error {
	return b.SetLevel(0)
}

func (b *LedBar) write16(word uint16) error {
	for i := 15; i >= 0; i-- {
		if err := b.dio.SetValue(int(word>>i) & 1); err != nil {
			return err
		}
		if err := b.sendClock(); err != nil {
			return err
		}
	}
	return nil
}

// sendClock toggles the clock line; the MY9221 shifts on both edges.
func (b *LedBar) sendClock() error {
	b.clkState = 1 - b.clkState
	return b.clk.SetValue(b.clkState)
}

// latch runs the internal-latch control cycle: data low, one clock edge,
// Tstart wait, then four short data pulses.
func (b *LedBar) latch() error {
	if err := b.dio.SetValue(0); err != nil {
		return err
	}
	if err := b.sendClock(); err != nil {
		return err
	}
	time.Sleep(ledBarLatchDelay)

	for i := 0; i < 4; i++ {
		if err := b.dio.SetValue(1); err != nil {
			return err
		}
		if err := b.dio.SetValue(0); err != nil {
			return err
		}
	}
	return nil
}
