package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mlongus/MECH-EINF/services/actuators"
	"github.com/mlongus/MECH-EINF/services/hw"
	"github.com/mlongus/MECH-EINF/utils"
)

const (
	className   = "MECH_LAB"
	setupPDF    = "Konfiguration_Entwicklungsumgebung.pdf"
	rampDelay   = 300 * time.Millisecond
	rampMaxLeds = actuators.LedBarLevels
)

func main() {
	configPath := flag.String("config", "config/rig.yaml", "path to rig.yaml")
	logFile := flag.String("log", "", "optional log file path (stdout is always included)")
	flag.Parse()

	logger := utils.InitLogger(utils.INFO, *logFile)
	defer logger.Close()

	if !utils.IsRaspberryPi() {
		fmt.Println("\n******************* Fast geschafft! *******************")
		fmt.Printf("Dieses Programm wird auf ihrem persönlichen Computer/Laptop ausgeführt. "+
			"Folgen Sie den Instruktionen des Abschnitts '5.1 - 5.3' des auf ILIAS abgelegten File '%s', "+
			"um die Konfiguration der Entwicklungsumgebung abzuschliessen und dieses Programm auf dem "+
			"Raspberry Pi auszuführen.\n", setupPDF)
		return
	}

	cfg, err := utils.LoadRigConfig(*configPath)
	if err != nil {
		utils.L().Fatal("load rig config: %v", err)
	}

	chip, err := hw.OpenChip(cfg.Chip, "welcome")
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

	fmt.Print("\nLED-Bar ansteuern")

	for level := 0; level <= rampMaxLeds; level++ {
		if err := bar.SetLevel(level); err != nil {
			utils.L().Fatal("set led bar level: %v", err)
		}
		fmt.Print(".")
		time.Sleep(rampDelay)
	}
	for level := rampMaxLeds; level >= 0; level-- {
		if err := bar.SetLevel(level); err != nil {
			utils.L().Fatal("set led bar level: %v", err)
		}
		fmt.Print(".")
		time.Sleep(rampDelay)
	}

	hostname, _ := os.Hostname()
	fmt.Println("\n\n******************* Gratulation! *******************")
	fmt.Printf("Sie haben soeben ein Programm zur Ansteuerung einer LED-Bar auf dem Raspberry Pi '%s' "+
		"ausgeführt. Somit haben Sie die für das Modul %s verwendete Programmierumgebung erfolgreich "+
		"eingerichtet.\n", hostname, className)
}
