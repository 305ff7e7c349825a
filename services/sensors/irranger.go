package sensors

import (
	"fmt"
	"math"

	"github.com/mlongus/MECH-EINF/utils"
)

// IRRanger reads the 80 cm infrared proximity sensor. Distances come from
// a quadratic fit of the sensor characteristic, determined with the
// ircalibrate binary.
type IRRanger struct {
	adc     VoltageSource
	channel int
	poly    utils.IRPolynomial
	log     *utils.Logger
}

func NewIRRanger(adc VoltageSource, channel int, poly utils.IRPolynomial) *IRRanger {
	return &IRRanger{adc: adc, channel: channel, poly: poly, log: utils.L()}
}

// AverageVoltage reads until samples good measurements were collected and
// returns their mean. Failed reads are logged and skipped. If nothing but
// failures arrive, it gives up after ten times the requested sample count.
func (r *IRRanger) AverageVoltage(samples int) (float64, error) {
	if samples < 1 {
		samples = 1
	}

	var sum float64
	good := 0
	for attempts := 0; good < samples; attempts++ {
		if attempts >= samples*10 {
			return 0, fmt.Errorf("ir channel %d: %d reads failed", r.channel, attempts)
		}
		v, err := r.adc.Voltage(r.channel)
		if err != nil {
			r.log.Warn("ir read skipped: %v", err)
			continue
		}
		sum += v
		good++
	}
	return sum / float64(samples), nil
}

// Distance returns the averaged distance in millimetres, rounded to two
// decimals.
func (r *IRRanger) Distance(samples int) (float64, error) {
	v, err := r.AverageVoltage(samples)
	if err != nil {
		return 0, err
	}
	return math.Round(Polynomial(r.poly, v)*100) / 100, nil
}

// Polynomial evaluates the voltage-to-distance characteristic a*v²+b*v+c.
func Polynomial(p utils.IRPolynomial, voltage float64) float64 {
	return p.A*voltage*voltage + p.B*voltage + p.C
}
