// Package sensors implements the rig's measurement devices on top of the
// hw layer: potentiometer, infrared ranger, ultrasonic ranger and the
// inductive proximity switch.
package sensors

import (
	"fmt"

	"github.com/mlongus/MECH-EINF/models"
	"github.com/mlongus/MECH-EINF/utils"
)

// VoltageSource reads a pin voltage of an analog channel.
type VoltageSource interface {
	Voltage(channel int) (float64, error)
}

// Potentiometer maps an analog channel to a shaft angle through a
// calibration obtained from the interactive three-point routine.
type Potentiometer struct {
	adc     VoltageSource
	channel int
	cal     models.PotCalibration
}

func NewPotentiometer(adc VoltageSource, channel int) *Potentiometer {
	return &Potentiometer{adc: adc, channel: channel}
}

// SetCalibration installs a previously determined calibration.
func (p *Potentiometer) SetCalibration(cal models.PotCalibration) {
	p.cal = cal
}

// Voltage returns the raw pin voltage in volts.
func (p *Potentiometer) Voltage() (float64, error) {
	return p.adc.Voltage(p.channel)
}

// Angle returns the calibrated shaft angle in degrees.
func (p *Potentiometer) Angle() (models.AngleReading, error) {
	v, err := p.Voltage()
	if err != nil {
		return models.AngleReading{}, err
	}
	return models.AngleReading{Voltage: v, Angle: p.cal.Angle(v)}, nil
}

// Calibrate walks the user through three measurements: the minimum and
// maximum calibration angles to determine the sensitivity, then the zero
// position for the offset. The result is installed and returned.
func (p *Potentiometer) Calibrate(prompter *utils.Prompter, cfg utils.PotCalibrationConfig) (models.PotCalibration, error) {
	span := cfg.MaxAngle - cfg.MinAngle
	if span < 0 {
		span = -span
	}
	if span == 0 {
		return models.PotCalibration{}, fmt.Errorf("calibration angles %v and %v must differ", cfg.MinAngle, cfg.MaxAngle)
	}

	if err := prompter.Confirm(fmt.Sprintf("Bitte Potentiometer auf %v ° positionieren und mit <Enter> bestätigen\n", cfg.MinAngle)); err != nil {
		return models.PotCalibration{}, err
	}
	minVoltage, err := p.Voltage()
	if err != nil {
		return models.PotCalibration{}, err
	}

	if err := prompter.Confirm(fmt.Sprintf("Bitte Potentiometer auf %v ° positionieren und mit <Enter> bestätigen\n", cfg.MaxAngle)); err != nil {
		return models.PotCalibration{}, err
	}
	maxVoltage, err := p.Voltage()
	if err != nil {
		return models.PotCalibration{}, err
	}

	voltageSpan := maxVoltage - minVoltage
	if voltageSpan < 0 {
		voltageSpan = -voltageSpan
	}

	if err := prompter.Confirm("Bitte Potentiometer auf 0° positionieren und mit <Enter> bestätigen\n"); err != nil {
		return models.PotCalibration{}, err
	}
	offset, err := p.Voltage()
	if err != nil {
		return models.PotCalibration{}, err
	}

	cal := models.PotCalibration{
		Sensitivity: voltageSpan / span,
		Offset:      offset,
	}
	p.cal = cal
	return cal, nil
}
