package models

// AngleReading is a calibrated potentiometer measurement.
type AngleReading struct {
	Voltage float64 // raw pin voltage [V]
	Angle   float64 // mapped angle [°]
}

// PotCalibration is the result of the interactive three-point routine:
// the voltage change per degree and the voltage at the zero position.
type PotCalibration struct {
	Sensitivity float64 // [V/°]
	Offset      float64 // [V]
}

// Angle maps a pin voltage through the calibration. The rig's wiring
// inverts the sense, so the offset leads.
func (c PotCalibration) Angle(voltage float64) float64 {
	return round2((c.Offset - voltage) / c.Sensitivity)
}

func round2(v float64) float64 {
	if v < 0 {
		return float64(int64(v*100-0.5)) / 100
	}
	return float64(int64(v*100+0.5)) / 100
}
