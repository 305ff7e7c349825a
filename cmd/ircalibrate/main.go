package main

import (
	"errors"
	"flag"
	"os"
	"path/filepath"

	"github.com/mlongus/MECH-EINF/controller"
	"github.com/mlongus/MECH-EINF/services/hw"
	"github.com/mlongus/MECH-EINF/services/sensors"
	"github.com/mlongus/MECH-EINF/utils"
	"github.com/mlongus/MECH-EINF/views"
)

func main() {
	configPath := flag.String("config", "config/rig.yaml", "path to rig.yaml")
	logFile := flag.String("log", "", "optional log file path (stdout is always included)")
	out := flag.String("out", "Sensorkalibrierung.csv", "calibration CSV file to create")
	flag.Parse()

	logger := utils.InitLogger(utils.INFO, *logFile)
	defer logger.Close()

	cfg, err := utils.LoadRigConfig(*configPath)
	if err != nil {
		utils.L().Fatal("load rig config: %v", err)
	}

	// calibration data must never be overwritten
	path := filepath.Join(cfg.Log.Dir, *out)
	if err := views.CreateLogFile(path); err != nil {
		if errors.Is(err, views.ErrLogExists) {
			utils.L().Fatal("%s existiert bereits, bitte zuerst umbenennen oder loeschen", path)
		}
		utils.L().Fatal("create calibration file: %v", err)
	}

	writer, err := views.OpenLogWriter(path, cfg.Delimiter())
	if err != nil {
		utils.L().Fatal("open calibration file: %v", err)
	}
	defer writer.Close()

	chip, err := hw.OpenChip(cfg.Chip, "ircalibrate")
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
	prompter := utils.NewPrompter(os.Stdin, os.Stdout)

	cal := controller.NewCalibrationController(ranger, prompter, writer, cfg.IRCal)
	if err := cal.Run(); err != nil {
		utils.L().Fatal("calibration: %v", err)
	}

	utils.L().Info("Kalibrierung abgeschlossen, Daten in %s", path)
}
