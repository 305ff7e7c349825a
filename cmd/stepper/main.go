package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mlongus/MECH-EINF/services/actuators"
	"github.com/mlongus/MECH-EINF/services/hw"
	"github.com/mlongus/MECH-EINF/timing"
	"github.com/mlongus/MECH-EINF/utils"
)

func main() {
	configPath := flag.String("config", "config/rig.yaml", "path to rig.yaml")
	logFile := flag.String("log", "", "optional log file path (stdout is always included)")
	reverse := flag.Bool("reverse", false, "reverse the movement direction of the slide")
	halfStep := flag.Bool("half-step", false, "use the 8-state half-step sequence")
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

	chip, err := hw.OpenChip(cfg.Chip, "stepper")
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

	mode := actuators.FullStep
	if *halfStep {
		mode = actuators.HalfStep
	}
	coils := [4]hw.Output{lines[0], lines[1], lines[2], lines[3]}
	stepper := actuators.NewStepper(coils, lines[4], lines[5], mode, *stepTime, timing.NewBusy())

	if err := stepper.Enable(); err != nil {
		utils.L().Fatal("enable motor drivers: %v", err)
	}

	dir := actuators.Forward
	if *reverse {
		dir = actuators.Reverse
	}

	utils.L().Info("stepping %s at %v per step, Ctrl+C stops", dir, *stepTime)

	runner := actuators.NewRunner(stepper, dir)
	runner.Start()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	if err := runner.Stop(); err != nil {
		utils.L().Error("stop stepper: %v", err)
	}
	utils.L().Info("stopped after %d steps", stepper.Position())
}
