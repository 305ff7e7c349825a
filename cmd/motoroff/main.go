package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/mlongus/MECH-EINF/services/hw"
	"github.com/mlongus/MECH-EINF/utils"
)

// motoroff forces every motor driver output to a safe state. It works
// regardless of which lab program claimed the pins last, so it is the
// recovery tool when a script died without its cleanup path.
func main() {
	configPath := flag.String("config", "config/rig.yaml", "path to rig.yaml")
	logFile := flag.String("log", "", "optional log file path (stdout is always included)")
	flag.Parse()

	logger := utils.InitLogger(utils.INFO, *logFile)
	defer logger.Close()

	cfg, err := utils.LoadRigConfig(*configPath)
	if err != nil {
		utils.L().Fatal("load rig config: %v", err)
	}

	chip, err := hw.OpenChip(cfg.Chip, "motoroff")
	if err != nil {
		utils.L().Fatal("open gpio chip: %v", err)
	}
	defer chip.Close()

	lines, err := chip.Outputs(
		cfg.Stepper.M1, cfg.Stepper.M2, cfg.Stepper.M3, cfg.Stepper.M4,
		cfg.Stepper.D1, cfg.Stepper.D2)
	if err != nil {
		utils.L().Fatal("claim motor pins: %v", err)
	}
	channels, drivers := lines[:4], lines[4:]

	// enable the drivers so the zeroed channels actually reach the motor
	for _, d := range drivers {
		if err := d.SetValue(1); err != nil {
			utils.L().Fatal("enable motor driver: %v", err)
		}
	}
	for _, c := range channels {
		if err := c.SetValue(0); err != nil {
			utils.L().Fatal("zero motor channel: %v", err)
		}
	}
	time.Sleep(10 * time.Millisecond)
	for _, d := range drivers {
		if err := d.SetValue(0); err != nil {
			utils.L().Fatal("disable motor driver: %v", err)
		}
	}

	fmt.Println("Motor turned off")
}
