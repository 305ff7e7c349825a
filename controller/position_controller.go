// Package controller closes the loops between sensors and actuators: the
// proportional position control of the slide, the measurement cycle
// runner and the IR calibration sweep.
package controller

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/mlongus/MECH-EINF/models"
	"github.com/mlongus/MECH-EINF/services/actuators"
	"github.com/mlongus/MECH-EINF/utils"
	"github.com/mlongus/MECH-EINF/views"
)

// DistanceSensor measures the averaged slide distance in millimetres.
type DistanceSensor interface {
	Distance(samples int) (float64, error)
}

// Motor is the actuator side of the loop.
type Motor interface {
	Run(dir actuators.Direction, duty float64) error
	DutyForVoltage(voltage float64) float64
	Stop() error
}

// Mode selects which loop variable the controller computes.
type Mode int

const (
	// ModeDuty: constant drivetime, duty cycle proportional to the error.
	ModeDuty Mode = iota
	// ModeTime: constant duty from a fixed voltage, drivetime proportional
	// to the error.
	ModeTime
)

func (m Mode) String() string {
	if m == ModeTime {
		return "time"
	}
	return "duty"
}

// PositionController drives the slide to a distance setpoint with a
// proportional law and logs every iteration to CSV.
type PositionController struct {
	sensor DistanceSensor
	motor  Motor
	writer *views.LogWriter
	cfg    utils.ControlConfig
	mode   Mode
	log    *utils.Logger

	// sleep is swapped out in tests
	sleep func(time.Duration)
}

func NewPositionController(sensor DistanceSensor, motor Motor, writer *views.LogWriter, cfg utils.ControlConfig, mode Mode) *PositionController {
	return &PositionController{
		sensor: sensor,
		motor:  motor,
		writer: writer,
		cfg:    cfg,
		mode:   mode,
		log:    utils.L(),
		sleep:  time.Sleep,
	}
}

// paramsLine documents the loop parameters in the first CSV row. Commas
// keep it a single cell under the default semicolon delimiter.
func (c *PositionController) paramsLine(setpoint float64) string {
	if c.mode == ModeTime {
		return fmt.Sprintf("k=%v (s/mm), voltage=%v (V), nmeasurements=%d, set_distance=%d (mm)",
			c.cfg.Gain, c.cfg.Voltage, c.cfg.Samples, int(setpoint))
	}
	return fmt.Sprintf("k=%v (mm^-1), drivetime=%v (s), nmeasurements=%d, offset_dutycycle=%d, set_distance=%d (mm)",
		c.cfg.Gain, float64(c.cfg.DrivetimeMs)/1000, c.cfg.Samples, c.cfg.OffsetDuty, int(setpoint))
}

// Run executes the loop until the context is cancelled, then stops the
// motor. The first two CSV rows carry the parameters and the column
// headers.
func (c *PositionController) Run(ctx context.Context, setpoint float64) error {
	defer c.motor.Stop()

	if err := c.writer.WriteComment(c.paramsLine(setpoint)); err != nil {
		return err
	}
	if err := c.writer.WriteRow(models.ControlRecord{}.CSVHeader()); err != nil {
		return err
	}

	var start time.Time

	for ctx.Err() == nil {
		distance, err := c.sensor.Distance(c.cfg.Samples)
		if err != nil {
			return fmt.Errorf("distance measurement: %w", err)
		}

		var elapsed time.Duration
		if start.IsZero() {
			start = time.Now()
		} else {
			elapsed = time.Since(start)
		}

		delta := setpoint - distance

		rec := models.ControlRecord{Elapsed: elapsed, Distance: distance, Error: delta}
		if err := c.writer.WriteRow(rec.CSVRow()); err != nil {
			return err
		}

		dir := actuators.Forward
		if delta < 0 {
			dir = actuators.Reverse
		}

		switch c.mode {
		case ModeDuty:
			duty := c.Duty(delta)
			c.log.Info("ist: %v mm, soll: %v mm -> delta_dist: %.4f mm -> duty: %.0f %%",
				distance, setpoint, delta, duty)
			if err := c.motor.Run(dir, duty); err != nil {
				return err
			}
			c.sleep(time.Duration(c.cfg.DrivetimeMs) * time.Millisecond)

		case ModeTime:
			drivetime := c.Drivetime(delta)
			c.log.Info("ist: %v mm, soll: %v mm -> delta_dist: %.4f mm -> drivetime: %.4f s",
				distance, setpoint, delta, drivetime.Seconds())
			if err := c.motor.Run(dir, c.motor.DutyForVoltage(c.cfg.Voltage)); err != nil {
				return err
			}
			c.sleep(drivetime)
		}
	}

	return ctx.Err()
}

// Duty computes the duty-mode actuation for a control error: |error|*k
// plus the static friction offset, clamped to [0, 100].
func (c *PositionController) Duty(delta float64) float64 {
	duty := math.Round(math.Abs(delta*c.cfg.Gain)) + float64(c.cfg.OffsetDuty)
	if duty < 0 {
		return 0
	}
	if duty > 100 {
		return 100
	}
	return duty
}

// Drivetime computes the time-mode actuation: |error|*k seconds.
func (c *PositionController) Drivetime(delta float64) time.Duration {
	return time.Duration(math.Abs(delta*c.cfg.Gain) * float64(time.Second))
}
