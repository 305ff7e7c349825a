package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// ─── Peripheral configs ─────────────────────────────────────────────────

// ADCConfig describes the bit-banged MCP3008 wiring and its reference.
type ADCConfig struct {
	Clk        int     `yaml:"clk"`
	Csz        int     `yaml:"csz"`
	Di         int     `yaml:"di"`
	Do         int     `yaml:"do"`
	VRef       float64 `yaml:"vref"`       // reference voltage of the converter [V]
	Resolution int     `yaml:"resolution"` // full-scale count, e.g. 1023 for 10 bit
	PotChannel int     `yaml:"pot_channel"`
	IRChannel  int     `yaml:"ir_channel"`
}

type LedBarConfig struct {
	Dio     int  `yaml:"dio"`
	Clk     int  `yaml:"clk"`
	Reverse bool `yaml:"reverse"`
}

type UltrasonicConfig struct {
	Pin       int `yaml:"pin"`
	TimeoutMs int `yaml:"timeout_ms"`
}

type ProximityConfig struct {
	Pin int `yaml:"pin"`
}

type DCMotorConfig struct {
	M3          int     `yaml:"m3"`
	M4          int     `yaml:"m4"`
	PWM         int     `yaml:"pwm"`
	FrequencyHz int     `yaml:"frequency_hz"`
	MaxVoltage  float64 `yaml:"max_voltage"` // supply voltage of the motor driver [V]
}

type StepperConfig struct {
	M1         int `yaml:"m1"`
	M2         int `yaml:"m2"`
	M3         int `yaml:"m3"`
	M4         int `yaml:"m4"`
	D1         int `yaml:"d1"`
	D2         int `yaml:"d2"`
	StepTimeUs int `yaml:"step_time_us"` // delay between two consecutive steps
}

// IRPolynomial maps IR sensor voltage [V] to distance [mm]:
// a*v*v + b*v + c. Coefficients come from the ircalibrate fit.
type IRPolynomial struct {
	A float64 `yaml:"a"`
	B float64 `yaml:"b"`
	C float64 `yaml:"c"`
}

// ControlConfig carries the proportional loop parameters.
type ControlConfig struct {
	Gain        float64      `yaml:"gain"`         // k, [duty/mm] or [s/mm] depending on mode
	Samples     int          `yaml:"samples"`      // distance measurements to average per iteration
	DrivetimeMs int          `yaml:"drivetime_ms"` // duty mode: constant time per iteration
	OffsetDuty  int          `yaml:"offset_duty"`  // duty mode: static friction compensation
	Voltage     float64      `yaml:"voltage"`      // time mode: constant motor voltage [V]
	MinSetpoint float64      `yaml:"min_setpoint"` // [mm]
	MaxSetpoint float64      `yaml:"max_setpoint"` // [mm]
	Polynomial  IRPolynomial `yaml:"polynomial"`
}

// IRCalibrationConfig describes the calibration sweep of the IR sensor.
type IRCalibrationConfig struct {
	MinMm   int `yaml:"min_mm"`
	MaxMm   int `yaml:"max_mm"`
	StepMm  int `yaml:"step_mm"`
	Samples int `yaml:"samples"`
	Cycles  int `yaml:"cycles"`
}

type PotCalibrationConfig struct {
	MinAngle float64 `yaml:"min_angle"` // [°]
	MaxAngle float64 `yaml:"max_angle"` // [°]
}

type LogConfig struct {
	Delimiter string `yaml:"delimiter"`
	Dir       string `yaml:"dir"`
}

// RigConfig is the top-level structure of config/rig.yaml: the pin map and
// settings of the lab rig.
type RigConfig struct {
	Chip       string               `yaml:"chip"`
	ADC        ADCConfig            `yaml:"adc"`
	LedBar     LedBarConfig         `yaml:"ledbar"`
	Ultrasonic UltrasonicConfig     `yaml:"ultrasonic"`
	Proximity  ProximityConfig      `yaml:"proximity"`
	DCMotor    DCMotorConfig        `yaml:"dcmotor"`
	Stepper    StepperConfig        `yaml:"stepper"`
	Control    ControlConfig        `yaml:"control"`
	IRCal      IRCalibrationConfig  `yaml:"ir_calibration"`
	PotCal     PotCalibrationConfig `yaml:"pot_calibration"`
	Log        LogConfig            `yaml:"log"`
}

// DefaultRig returns the wiring of the course rig, matching the printed
// pin assignment sheet. A rig.yaml overrides individual values.
func DefaultRig() *RigConfig {
	return &RigConfig{
		Chip: "gpiochip0",
		ADC: ADCConfig{
			Clk: 16, Csz: 19, Di: 25, Do: 24,
			VRef:       5.0,
			Resolution: 1023,
			PotChannel: 0,
			IRChannel:  2,
		},
		LedBar:     LedBarConfig{Dio: 18, Clk: 23},
		Ultrasonic: UltrasonicConfig{Pin: 5, TimeoutMs: 60},
		Proximity:  ProximityConfig{Pin: 2},
		DCMotor: DCMotorConfig{
			M3: 6, M4: 13, PWM: 12,
			FrequencyHz: 1000,
			MaxVoltage:  12,
		},
		Stepper: StepperConfig{
			M1: 20, M2: 21, M3: 6, M4: 13, D1: 26, D2: 12,
			StepTimeUs: 3000,
		},
		Control: ControlConfig{
			Gain:        2,
			Samples:     10,
			DrivetimeMs: 100,
			OffsetDuty:  10,
			Voltage:     6,
			MinSetpoint: 30,
			MaxSetpoint: 60,
			Polynomial:  IRPolynomial{A: 44.593, B: -152.73, C: 159.38},
		},
		IRCal: IRCalibrationConfig{
			MinMm: 25, MaxMm: 65, StepMm: 5,
			Samples: 200, Cycles: 2,
		},
		PotCal: PotCalibrationConfig{MinAngle: -90, MaxAngle: 90},
		Log:    LogConfig{Delimiter: ";", Dir: "."},
	}
}

// LoadRigConfig reads and parses rig.yaml. A missing file is not an error:
// the defaults describe the standard course rig.
func LoadRigConfig(path string) (*RigConfig, error) {
	cfg := DefaultRig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read rig config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse rig config: %w", err)
	}
	return cfg, nil
}

// Delimiter returns the configured CSV delimiter as a rune, defaulting to
// a semicolon.
func (c *RigConfig) Delimiter() rune {
	if c.Log.Delimiter == "" {
		return ';'
	}
	return rune(c.Log.Delimiter[0])
}
