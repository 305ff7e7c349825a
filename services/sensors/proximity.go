package sensors

import (
	"github.com/mlongus/MECH-EINF/services/hw"
)

// Proximity is the inductive proximity switch: high when a metallic
// object is in front of the sensor.
type Proximity struct {
	line hw.Input
}

func NewProximity(line hw.Input) *Proximity {
	return &Proximity{line: line}
}

// Detected reports whether an object is currently present.
func (p *Proximity) Detected() (bool, error) {
	v, err := p.line.Value()
	if err != nil {
		return false, err
	}
	return v != 0, nil
}
