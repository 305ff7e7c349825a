package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mlongus/MECH-EINF/services/actuators"
	"github.com/mlongus/MECH-EINF/services/hw"
	"github.com/mlongus/MECH-EINF/utils"
)

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

	chip, err := hw.OpenChip(cfg.Chip, "setled")
	if err != nil {
		utils.L().Fatal("open gpio chip: %v", err)
	}
	defer chip.Close()

	dio, err := chip.Output(cfg.LedBar.Dio)
	if err != nil {
		utils.L().Fatal("claim led bar dio: %v", err)
	}
	clk, err := chip.Output(cfg.LedBar.Clk)
	if err != nil {
		utils.L().Fatal("claim led bar clk: %v", err)
	}

	bar := actuators.NewLedBar(dio, clk, cfg.LedBar.Reverse)
	defer bar.Off()

	prompter := utils.NewPrompter(os.Stdin, os.Stdout)

	// Ctrl+C surfaces as a read error on stdin, which ends the loop.
	for {
		level, err := prompter.IntInRange(
			"\nGeben sie eine ganze Zahl mit Wert zwischen 0 und 10 ein: ",
			0, actuators.LedBarLevels)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				utils.L().Error("read input: %v", err)
			}
			break
		}
		if err := bar.SetLevel(level); err != nil {
			utils.L().Fatal("set led bar level: %v", err)
		}
		fmt.Println(strings.Repeat("-", 10), level, "LEDs an LED-Bar eingeschaltet", strings.Repeat("-", 10))
	}
	fmt.Println("\nExit!")
}
