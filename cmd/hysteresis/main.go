package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mlongus/MECH-EINF/services/hw"
	"github.com/mlongus/MECH-EINF/services/sensors"
	"github.com/mlongus/MECH-EINF/utils"
)

const refreshInterval = 100 * time.Millisecond

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

	chip, err := hw.OpenChip(cfg.Chip, "hysteresis")
	if err != nil {
		utils.L().Fatal("open gpio chip: %v", err)
	}
	defer chip.Close()

	adc, err := hw.OpenADC(chip, cfg.ADC)
	if err != nil {
		utils.L().Fatal("open adc: %v", err)
	}
	defer adc.Close()

	proxLine, err := chip.Input(cfg.Proximity.Pin)
	if err != nil {
		utils.L().Fatal("claim proximity pin: %v", err)
	}

	pot := sensors.NewPotentiometer(adc, cfg.ADC.PotChannel)
	prox := sensors.NewProximity(proxLine)
	prompter := utils.NewPrompter(os.Stdin, os.Stdout)

	fmt.Println(strings.Repeat("*", 20), "Kalibrierung von Potentiometer", strings.Repeat("*", 20))
	cal, err := pot.Calibrate(prompter, cfg.PotCal)
	if err != nil {
		utils.L().Fatal("calibrate potentiometer: %v", err)
	}
	fmt.Printf("Kalibrierung des Potentiometers beendet -> Sensitivität: %v [V/°], "+
		"Spannungs-Offset zu Nullpunkt (0 °): %v [V]\n", cal.Sensitivity, cal.Offset)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Println("\n\nMessung gestartet")
	fmt.Println(strings.Repeat("*", 28), " Messung ", strings.Repeat("*", 28))

	var lastAngle float64
	var lastDetected, havePrev bool

	for ctx.Err() == nil {
		reading, err := pot.Angle()
		if err != nil {
			utils.L().Warn("potentiometer read skipped: %v", err)
			time.Sleep(refreshInterval)
			continue
		}
		detected, err := prox.Detected()
		if err != nil {
			utils.L().Warn("proximity read skipped: %v", err)
			time.Sleep(refreshInterval)
			continue
		}

		// refresh only when either value changed
		if !havePrev || reading.Angle != lastAngle || detected != lastDetected {
			lastAngle = reading.Angle
			lastDetected = detected
			havePrev = true
			material := "Nein"
			if detected {
				material = "Ja  "
			}
			fmt.Printf("\rPotentiometer Winkel: %-11s Material detektiert: %s",
				fmt.Sprintf("%v °", reading.Angle), material)
		}
		time.Sleep(refreshInterval)
	}
	fmt.Println()
}
