package main

import (
	"context"
	"errors"
	"flag"
	"os/signal"
	"syscall"
	"time"

	"github.com/mlongus/MECH-EINF/controller"
	"github.com/mlongus/MECH-EINF/services/actuators"
	"github.com/mlongus/MECH-EINF/services/hw"
	"github.com/mlongus/MECH-EINF/utils"
)

func main() {
	configPath := flag.String("config", "config/rig.yaml", "path to rig.yaml")
	logFile := flag.String("log", "", "optional log file path (stdout is always included)")
	voltage := flag.Float64("voltage", 9, "motor voltage in V, 0 to max_voltage")
	drivetime := flag.Duration("drivetime", 2*time.Second, "drive time per movement")
	pause := flag.Duration("pause", 2*time.Second, "pause between movements")
	cycles := flag.Int("cycles", 3, "up/down cycles to run")
	reverse := flag.Bool("reverse", false, "reverse the direction of the first movement")
	flag.Parse()

	logger := utils.InitLogger(utils.INFO, *logFile)
	defer logger.Close()

	cfg, err := utils.LoadRigConfig(*configPath)
	if err != nil {
		utils.L().Fatal("load rig config: %v", err)
	}

	chip, err := hw.OpenChip(cfg.Chip, "dcmotor-cycles")
	if err != nil {
		utils.L().Fatal("open gpio chip: %v", err)
	}
	defer chip.Close()

	lines, err := chip.Outputs(cfg.DCMotor.M3, cfg.DCMotor.M4, cfg.DCMotor.PWM)
	if err != nil {
		utils.L().Fatal("claim motor pins: %v", err)
	}

	pwm := hw.NewSoftPWM(lines[2], cfg.DCMotor.FrequencyHz)
	defer pwm.Stop()

	motor := actuators.NewDCMotor(lines[0], lines[1], pwm, cfg.DCMotor.MaxVoltage)
	defer motor.Stop()

	startDir := actuators.Forward
	if *reverse {
		startDir = actuators.Reverse
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	utils.L().Info("starting %d cycles: %v per movement at %vV, %v pause",
		*cycles, *drivetime, *voltage, *pause)

	runner := controller.NewCycleRunner(*cycles, startDir, *pause)
	err = runner.Run(ctx, func(dir actuators.Direction) error {
		if err := motor.RunVoltage(dir, *voltage); err != nil {
			return err
		}
		select {
		case <-time.After(*drivetime):
		case <-ctx.Done():
		}
		return motor.Stop()
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		utils.L().Fatal("measurement cycles: %v", err)
	}

	utils.L().Info("done, motor stopped")
}
