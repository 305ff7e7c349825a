package models

import "time"

// ControlRecord is one iteration of the proportional position loop:
// elapsed loop time, measured distance and the remaining control error.
type ControlRecord struct {
	Elapsed  time.Duration
	Distance float64 // [mm]
	Error    float64 // setpoint - distance [mm]
}

func (ControlRecord) CSVHeader() []string {
	return []string{"time (s)", "ist_distanz (mm)", "delta_distance (mm)"}
}

func (r ControlRecord) CSVRow() []string {
	return []string{
		ftoa(r.Elapsed.Seconds(), 3),
		ftoa(r.Distance, 2),
		ftoa(r.Error, 3),
	}
}
