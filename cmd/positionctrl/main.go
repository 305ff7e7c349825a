package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/mlongus/MECH-EINF/controller"
	"github.com/mlongus/MECH-EINF/services/actuators"
	"github.com/mlongus/MECH-EINF/services/hw"
	"github.com/mlongus/MECH-EINF/services/sensors"
	"github.com/mlongus/MECH-EINF/utils"
	"github.com/mlongus/MECH-EINF/views"
)

func main() {
	configPath := flag.String("config", "config/rig.yaml", "path to rig.yaml")
	logFile := flag.String("log", "", "optional log file path (stdout is always included)")
	modeFlag := flag.String("mode", "duty", "control variable: duty (constant drivetime) or time (constant voltage)")
	out := flag.String("out", "", "control log CSV file (default depends on mode)")
	flag.Parse()

	logger := utils.InitLogger(utils.INFO, *logFile)
	defer logger.Close()

	var mode controller.Mode
	switch *modeFlag {
	case "duty":
		mode = controller.ModeDuty
	case "time":
		mode = controller.ModeTime
	default:
		utils.L().Fatal("unknown mode %q, want duty or time", *modeFlag)
	}

	cfg, err := utils.LoadRigConfig(*configPath)
	if err != nil {
		utils.L().Fatal("load rig config: %v", err)
	}

	filename := *out
	if filename == "" {
		filename = "Wegdiagramm_Drehzahl.csv"
		if mode == controller.ModeTime {
			filename = "Wegdiagramm_Zeit.csv"
		}
	}

	prompter := utils.NewPrompter(os.Stdin, os.Stdout)
	min, max := int(cfg.Control.MinSetpoint), int(cfg.Control.MaxSetpoint)
	setpoint, err := prompter.IntInRange(
		fmt.Sprintf("Auf welche Distanz zwischen %d mm und %d mm soll gefahren werden? ", min, max),
		min, max)
	if err != nil {
		utils.L().Fatal("read setpoint: %v", err)
	}

	// a taken filename gets the next free _N suffix
	path, err := views.UniqueLogFile(filepath.Join(cfg.Log.Dir, filename))
	if err != nil {
		utils.L().Fatal("create control log: %v", err)
	}
	fmt.Printf("csv-file '%s' created\n", filepath.Base(path))

	writer, err := views.OpenLogWriter(path, cfg.Delimiter())
	if err != nil {
		utils.L().Fatal("open control log: %v", err)
	}
	defer writer.Close()

	chip, err := hw.OpenChip(cfg.Chip, "positionctrl")
	if err != nil {
		utils.L().Fatal("open gpio chip: %v", err)
	}
	defer chip.Close()

	adc, err := hw.OpenADC(chip, cfg.ADC)
	if err != nil {
		utils.L().Fatal("open adc: %v", err)
	}
	defer adc.Close()

	lines, err := chip.Outputs(cfg.DCMotor.M3, cfg.DCMotor.M4, cfg.DCMotor.PWM)
	if err != nil {
		utils.L().Fatal("claim motor pins: %v", err)
	}

	pwm := hw.NewSoftPWM(lines[2], cfg.DCMotor.FrequencyHz)
	defer pwm.Stop()

	motor := actuators.NewDCMotor(lines[0], lines[1], pwm, cfg.DCMotor.MaxVoltage)
	defer motor.Stop()

	ranger := sensors.NewIRRanger(adc, cfg.ADC.IRChannel, cfg.Control.Polynomial)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctl := controller.NewPositionController(ranger, motor, writer, cfg.Control, mode)
	if err := ctl.Run(ctx, float64(setpoint)); err != nil && !errors.Is(err, context.Canceled) {
		utils.L().Fatal("control loop: %v", err)
	}

	utils.L().Info("Regelkreis beendet, Daten in %s", path)
}
