// Package hw wraps the GPIO character device and the rig's converters so
// that sensors and actuators can be written against small interfaces and
// tested without hardware.
package hw

import (
	"fmt"

	"github.com/warthog618/gpiod"
)

// Output is a GPIO line that can be driven high or low.
type Output interface {
	SetValue(value int) error
}

// Input is a GPIO line that can be read.
type Input interface {
	Value() (int, error)
}

// Chip owns the gpiochip handle and every line claimed through it.
// Closing the chip releases all lines.
type Chip struct {
	chip  *gpiod.Chip
	lines []*gpiod.Line
}

// OpenChip opens a GPIO character device, e.g. "gpiochip0".
func OpenChip(name, consumer string) (*Chip, error) {
	c, err := gpiod.NewChip(name, gpiod.WithConsumer(consumer))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	return &Chip{chip: c}, nil
}

// Output claims a line as output, initially low.
func (c *Chip) Output(offset int) (*gpiod.Line, error) {
	l, err := c.chip.RequestLine(offset, gpiod.AsOutput(0))
	if err != nil {
		return nil, fmt.Errorf("claim output %d: %w", offset, err)
	}
	c.lines = append(c.lines, l)
	return l, nil
}

// Outputs claims several output lines at once, all initially low.
func (c *Chip) Outputs(offsets ...int) ([]*gpiod.Line, error) {
	lines := make([]*gpiod.Line, 0, len(offsets))
	for _, o := range offsets {
		l, err := c.Output(o)
		if err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, nil
}

// Input claims a line as input.
func (c *Chip) Input(offset int) (*gpiod.Line, error) {
	l, err := c.chip.RequestLine(offset, gpiod.AsInput)
	if err != nil {
		return nil, fmt.Errorf("claim input %d: %w", offset, err)
	}
	c.lines = append(c.lines, l)
	return l, nil
}

// Gpiod exposes the underlying chip for device drivers that claim their
// own lines (the MCP3008 converter does).
func (c *Chip) Gpiod() *gpiod.Chip { return c.chip }

// Close releases every claimed line and the chip handle.
func (c *Chip) Close() {
	for _, l := range c.lines {
		_ = l.Close()
	}
	c.lines = nil
	_ = c.chip.Close()
}
