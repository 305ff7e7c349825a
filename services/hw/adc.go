package hw

import (
	"fmt"

	"github.com/warthog618/gpiod/spi/mcp3w0c"

	"github.com/mlongus/MECH-EINF/utils"
)

// AnalogReader returns the raw converter count of a channel.
type AnalogReader interface {
	Read(channel int) (uint16, error)
}

// ADC reads analog channels through a bit-banged MCP3008 and maps raw
// counts to voltages using the configured reference.
type ADC struct {
	conv       AnalogReader
	vref       float64
	resolution int
	closer     func() error
}

// OpenADC claims the four converter lines on the chip per the rig config.
func OpenADC(chip *Chip, cfg utils.ADCConfig) (*ADC, error) {
	conv, err := mcp3w0c.NewMCP3008(chip.Gpiod(), cfg.Clk, cfg.Csz, cfg.Di, cfg.Do)
	if err != nil {
		return nil, fmt.Errorf("open mcp3008: %w", err)
	}
	return &ADC{
		conv:       conv,
		vref:       cfg.VRef,
		resolution: cfg.Resolution,
		closer:     conv.Close,
	}, nil
}

// NewADC builds an ADC over any raw reader. Used by tests and by rigs with
// a different converter.
func NewADC(conv AnalogReader, vref float64, resolution int) *ADC {
	return &ADC{conv: conv, vref: vref, resolution: resolution}
}

// Raw returns the raw count of a channel, 0..resolution.
func (a *ADC) Raw(channel int) (uint16, error) {
	return a.conv.Read(channel)
}

// Voltage maps the raw count of a channel to the pin voltage in volts.
func (a *ADC) Voltage(channel int) (float64, error) {
	raw, err := a.conv.Read(channel)
	if err != nil {
		return 0, fmt.Errorf("read channel %d: %w", channel, err)
	}
	return float64(raw) * a.vref / float64(a.resolution), nil
}

// Close releases the converter lines.
func (a *ADC) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer()
}
