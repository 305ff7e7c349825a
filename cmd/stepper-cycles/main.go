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
	"github.com/mlongus/MECH-EINF/timing"
	"github.com/mlongus/MECH-EINF/utils"
)

func main() {
	configPath := flag.String("config", "config/rig.yaml", "path to rig.yaml")
	logFile := flag.String("log", "", "optional log file path (stdout is always included)")
	steps := flag.Int("steps", 2000, "steps per movement of the slide")
	cycles := flag.Int("cycles", 3, "up/down cycles to run")
	pause := flag.Duration("pause", 0, "pause between movements")
	reverse := flag.Bool("reverse", false, "reverse the direction of the first movement")
	stepTime := flag.Duration("steptime", 0, "time between steps (0 = from config)")
	flag.Parse()

	logger := utils.InitLogger(utils.INFO, *logFile)
	defer logger.Close()

	cfg, err := utils.LoadRigConfig(*configPath)
	if err != nil {
		utils.L().Fatal("load rig config: %v", err)
	}
	if *stepTime == 0 {
		*stepTime = time.Duration(cfg.Stepper.StepTimeUs) * time.Microsecond
	}

	chip, err := hw.OpenChip(cfg.Chip, "stepper-cycles")
	if err != nil {
		utils.L().Fatal("open gpio chip: %v", err)
	}
	defer chip.Close()

	lines, err := chip.Outputs(
		cfg.Stepper.M1, cfg.Stepper.M2, cfg.Stepper.M3, cfg.Stepper.M4,
		cfg.Stepper.D1, cfg.Stepper.D2)
	if err != nil {
		utils.L().Fatal("claim stepper pins: %v", err)
	}

	coils := [4]hw.Output{lines[0], lines[1], lines[2], lines[3]}
	stepper := actuators.NewStepper(coils, lines[4], lines[5],
		actuators.FullStep, *stepTime, timing.NewBusy())
	defer stepper.Stop()

	if err := stepper.Enable(); err != nil {
		utils.L().Fatal("enable motor drivers: %v", err)
	}

	startDir := actuators.Forward
	if *reverse {
		startDir = actuators.Reverse
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	utils.L().Info("starting %d cycles: %d steps per movement, %v per step",
		*cycles, *steps, *stepTime)

	runner := controller.NewCycleRunner(*cycles, startDir, *pause)
	err = runner.Run(ctx, func(dir actuators.Direction) error {
		n := *steps
		if dir == actuators.Reverse {
			n = -n
		}
		return stepper.Step(n)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		utils.L().Fatal("measurement cycles: %v", err)
	}

	utils.L().Info("done, net position: %d steps", stepper.Position())
}
