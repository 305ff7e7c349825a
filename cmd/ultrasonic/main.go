package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/mlongus/MECH-EINF/services/hw"
	"github.com/mlongus/MECH-EINF/services/sensors"
	"github.com/mlongus/MECH-EINF/utils"
)

func main() {
	configPath := flag.String("config", "config/rig.yaml", "path to rig.yaml")
	logFile := flag.String("log", "", "optional log file path (stdout is always included)")
	samples := flag.Int("samples", 5, "measurements to average per reading")
	flag.Parse()

	logger := utils.InitLogger(utils.INFO, *logFile)
	defer logger.Close()

	cfg, err := utils.LoadRigConfig(*configPath)
	if err != nil {
		utils.L().Fatal("load rig config: %v", err)
	}

	chip, err := hw.OpenChip(cfg.Chip, "ultrasonic")
	if err != nil {
		utils.L().Fatal("open gpio chip: %v", err)
	}
	defer chip.Close()

	line, err := hw.OpenUltrasonic(chip, cfg.Ultrasonic)
	if err != nil {
		utils.L().Fatal("open ultrasonic ranger: %v", err)
	}
	ranger := sensors.NewUltrasonic(line)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for ctx.Err() == nil {
		distance, changed, err := ranger.DistanceOnChange(*samples)
		if err != nil {
			if errors.Is(err, hw.ErrEchoTimeout) {
				utils.L().Warn("measurement skipped: %v", err)
				continue
			}
			utils.L().Fatal("ultrasonic read: %v", err)
		}
		if changed {
			fmt.Println(distance, "cm")
		}
	}
	fmt.Println("\nExit!")
}
