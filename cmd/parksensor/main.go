package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/mlongus/MECH-EINF/services/actuators"
	"github.com/mlongus/MECH-EINF/services/hw"
	"github.com/mlongus/MECH-EINF/services/sensors"
	"github.com/mlongus/MECH-EINF/utils"
)

// ledLevel maps a distance to the number of lit LEDs: the closer the
// obstacle, the more LEDs. maxDistance and beyond turns the bar off.
func ledLevel(distanceCm, maxDistanceCm int) int {
	level := actuators.LedBarLevels * distanceCm / maxDistanceCm
	if level > actuators.LedBarLevels {
		level = actuators.LedBarLevels
	}
	return actuators.LedBarLevels - level
}

func main() {
	configPath := flag.String("config", "config/rig.yaml", "path to rig.yaml")
	logFile := flag.String("log", "", "optional log file path (stdout is always included)")
	samples := flag.Int("samples", 5, "measurements to average per reading")
	maxDistance := flag.Int("max-distance", 40, "distance in cm at which the bar is dark")
	flag.Parse()

	logger := utils.InitLogger(utils.INFO, *logFile)
	defer logger.Close()

	cfg, err := utils.LoadRigConfig(*configPath)
	if err != nil {
		utils.L().Fatal("load rig config: %v", err)
	}

	chip, err := hw.OpenChip(cfg.Chip, "parksensor")
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
		if !changed {
			continue
		}

		level := ledLevel(distance, *maxDistance)
		fmt.Println(distance, "cm", "--->", level, "LEDs")
		if err := bar.SetLevel(level); err != nil {
			utils.L().Fatal("set led bar level: %v", err)
		}
	}
	fmt.Println("\nExit!")
}
