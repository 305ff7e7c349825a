package main

import (
	"flag"
	"time"

	"github.com/mlongus/MECH-EINF/timing"
	"github.com/mlongus/MECH-EINF/utils"
)

// sleepbench compares the precision of the sleep strategies on the
// actual rig, where scheduler latency dominates sub-millisecond waits.
func main() {
	logFile := flag.String("log", "", "optional log file path (stdout is always included)")
	target := flag.Duration("target", 3*time.Millisecond, "sleep duration to benchmark")
	iterations := flag.Int("iterations", 1000, "iterations per strategy")
	flag.Parse()

	logger := utils.InitLogger(utils.INFO, *logFile)
	defer logger.Close()

	adaptive := timing.NewAdaptive()
	strategies := []struct {
		name    string
		sleeper timing.Sleeper
	}{
		{"passive", timing.Passive{}},
		{"busy", timing.NewBusy()},
		{"adaptive", adaptive},
		{"tiered", timing.Tiered{}},
	}

	utils.L().Info("target=%v  iterations=%d", *target, *iterations)

	for _, s := range strategies {
		stats := timing.Measure(s.sleeper, *target, *iterations)
		utils.L().Info("%-8s  avg=%-12v max=%-12v min=%-12v stddev=%v",
			s.name, stats.Avg, stats.Max, stats.Min, stats.StdDev)
	}

	utils.L().Info("adaptive learned overhead: %v", adaptive.Overhead())
}
