package timing

import (
	"math"
	"time"
)

// Stats summarises the timing error of a sleep strategy against a target
// duration. All values are absolute errors.
type Stats struct {
	Avg    time.Duration
	Max    time.Duration
	Min    time.Duration
	StdDev time.Duration
}

// Measure runs the sleeper iterations times against target and reports the
// error statistics. Used by the sleepbench binary to compare strategies on
// the actual rig hardware.
func Measure(s Sleeper, target time.Duration, iterations int) Stats {
	if iterations < 1 {
		iterations = 1
	}
	errs := make([]float64, 0, iterations)

	for i := 0; i < iterations; i++ {
		start := time.Now()
		s.Sleep(target)
		actual := time.Since(start)
		errs = append(errs, math.Abs(float64(actual-target)))
	}

	var sum, maxErr float64
	minErr := math.MaxFloat64
	for _, e := range errs {
		sum += e
		maxErr = math.Max(maxErr, e)
		minErr = math.Min(minErr, e)
	}
	avg := sum / float64(len(errs))

	var variance float64
	if len(errs) > 1 {
		for _, e := range errs {
			variance += (e - avg) * (e - avg)
		}
		variance /= float64(len(errs) - 1)
	}

	return Stats{
		Avg:    time.Duration(avg),
		Max:    time.Duration(maxErr),
		Min:    time.Duration(minErr),
		StdDev: time.Duration(math.Sqrt(variance)),
	}
}
