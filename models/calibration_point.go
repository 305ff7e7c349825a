package models

// CalibrationPoint is one averaged measurement of the IR sensor
// characteristic: voltage at a known distance.
type CalibrationPoint struct {
	Voltage  float64 // [V]
	Distance int     // [mm]
}

func (CalibrationPoint) CSVHeader() []string {
	return []string{"Spannung (V)", "Abstand (mm)"}
}

func (p CalibrationPoint) CSVRow() []string {
	return []string{
		ftoa(p.Voltage, 4),
		itoa(p.Distance),
	}
}
