package controller

import (
	"fmt"

	"github.com/mlongus/MECH-EINF/models"
	"github.com/mlongus/MECH-EINF/utils"
	"github.com/mlongus/MECH-EINF/views"
)

// VoltageAverager provides the averaged sensor voltage used for one
// calibration point.
type VoltageAverager interface {
	AverageVoltage(samples int) (float64, error)
}

// CalibrationController walks the user through the IR sensor calibration:
// the slide is positioned by hand at known distances, the averaged sensor
// voltage is recorded for each, and every point goes to the CSV log.
type CalibrationController struct {
	sensor   VoltageAverager
	prompter *utils.Prompter
	writer   *views.LogWriter
	cfg      utils.IRCalibrationConfig
	log      *utils.Logger
}

func NewCalibrationController(sensor VoltageAverager, prompter *utils.Prompter, writer *views.LogWriter, cfg utils.IRCalibrationConfig) *CalibrationController {
	return &CalibrationController{
		sensor:   sensor,
		prompter: prompter,
		writer:   writer,
		cfg:      cfg,
		log:      utils.L(),
	}
}

// Run performs the configured number of measurement cycles. Each cycle
// sweeps from the maximum distance down to the minimum and back up, so
// mechanical hysteresis shows up in the data.
func (c *CalibrationController) Run() error {
	if err := c.writer.WriteRow(models.CalibrationPoint{}.CSVHeader()); err != nil {
		return err
	}

	for cycle := 0; cycle < c.cfg.Cycles; cycle++ {
		c.log.Debug("calibration cycle %d/%d", cycle+1, c.cfg.Cycles)

		for d := c.cfg.MaxMm; d >= c.cfg.MinMm; d -= c.cfg.StepMm {
			if err := c.measurePoint(d); err != nil {
				return err
			}
		}
		for d := c.cfg.MinMm; d <= c.cfg.MaxMm; d += c.cfg.StepMm {
			if err := c.measurePoint(d); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *CalibrationController) measurePoint(distanceMm int) error {
	if err := c.prompter.Confirm(fmt.Sprintf("Fahre auf %d mm (Mit Enter bestaetigen)", distanceMm)); err != nil {
		return err
	}

	voltage, err := c.sensor.AverageVoltage(c.cfg.Samples)
	if err != nil {
		return err
	}

	c.log.Info("dist: %d [mm] -> voltage: %v [V]", distanceMm, voltage)

	point := models.CalibrationPoint{Voltage: voltage, Distance: distanceMm}
	return c.writer.WriteRow(point.CSVRow())
}
