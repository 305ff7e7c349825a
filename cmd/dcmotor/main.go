package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mlongus/MECH-EINF/services/actuators"
	"github.com/mlongus/MECH-EINF/services/hw"
	"github.com/mlongus/MECH-EINF/utils"
)

func main() {
	configPath := flag.String("config", "config/rig.yaml", "path to rig.yaml")
	logFile := flag.String("log", "", "optional log file path (stdout is always included)")
	voltage := flag.Float64("voltage", 9, "motor voltage in V, 0 to max_voltage")
	reverse := flag.Bool("reverse", false, "reverse the movement direction of the slide")
	flag.Parse()

	logger := utils.InitLogger(utils.INFO, *logFile)
	defer logger.Close()

	cfg, err := utils.LoadRigConfig(*configPath)
	if err != nil {
		utils.L().Fatal("load rig config: %v", err)
	}

	chip, err := hw.OpenChip(cfg.Chip, "dcmotor")
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

	dir := actuators.Forward
	if *reverse {
		dir = actuators.Reverse
	}

	utils.L().Info("Motor settings:")
	utils.L().Info("  Voltage: %vV (max: %vV)", *voltage, cfg.DCMotor.MaxVoltage)
	utils.L().Info("  Direction: %s", dir)
	utils.L().Info("  PWM Frequency: %dHz", cfg.DCMotor.FrequencyHz)
	utils.L().Info("  PWM Duty Cycle: %.3f%%", motor.DutyForVoltage(*voltage))

	if err := motor.RunVoltage(dir, *voltage); err != nil {
		utils.L().Fatal("run motor: %v", err)
	}

	// stop on Enter or on SIGINT/SIGTERM, whichever comes first
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	enterCh := make(chan struct{})
	go func() {
		fmt.Print("Motor stoppen? (Mit Enter bestaetigen)")
		bufio.NewReader(os.Stdin).ReadString('\n')
		close(enterCh)
	}()

	select {
	case <-enterCh:
	case sig := <-sigCh:
		utils.L().Info("received signal: %v", sig)
	}

	if err := motor.Stop(); err != nil {
		utils.L().Error("stop motor: %v", err)
	}
	fmt.Println("\nMotor stopped")
}
