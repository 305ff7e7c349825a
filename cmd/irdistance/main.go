package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os/signal"
	"syscall"
	"time"

	"github.com/mlongus/MECH-EINF/services/hw"
	"github.com/mlongus/MECH-EINF/services/sensors"
	"github.com/mlongus/MECH-EINF/utils"
)

func main() {
	configPath := flag.String("config", "config/rig.yaml", "path to rig.yaml")
	logFile := flag.String("log", "", "optional log file path (stdout is always included)")
	samples := flag.Int("samples", 200, "measurements to average per reading")
	interval := flag.Duration("interval", 500*time.Millisecond, "pause between readings")
	flag.Parse()

	logger := utils.InitLogger(utils.INFO, *logFile)
	defer logger.Close()

	cfg, err := utils.LoadRigConfig(*configPath)
	if err != nil {
		utils.L().Fatal("load rig config: %v", err)
	}

	chip, err := hw.OpenChip(cfg.Chip, "irdistance")
	if err != nil {
		utils.L().Fatal("open gpio chip: %v", err)
	}
	defer chip.Close()

	adc, err := hw.OpenADC(chip, cfg.ADC)
	if err != nil {
		utils.L().Fatal("open adc: %v", err)
	}
	defer adc.Close()

	ranger := sensors.NewIRRanger(adc, cfg.ADC.IRChannel, cfg.Control.Polynomial)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for ctx.Err() == nil {
		voltage, err := ranger.AverageVoltage(*samples)
		if err != nil {
			utils.L().Fatal("ir read: %v", err)
		}
		distance := math.Round(sensors.Polynomial(cfg.Control.Polynomial, voltage)*100) / 100

		fmt.Printf("voltage: %v [V] -> distance: %v [mm]\n",
			math.Round(voltage*100)/100, distance)

		select {
		case <-time.After(*interval):
		case <-ctx.Done():
		}
	}
	fmt.Println("Script stopped")
}
