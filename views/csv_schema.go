package views

// Column layouts of the CSV logs the lab binaries produce. The actual
// header writing is handled by each model's CSVHeader() method; this table
// is kept as a human-readable reference and for validation in tests.

// LogKind identifies a log file type for schema lookups.
type LogKind int

const (
	LogCalibration LogKind = iota
	LogControl
)

var kindNames = map[LogKind]string{
	LogCalibration: "calibration",
	LogControl:     "control",
}

func (k LogKind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "unknown"
}

// SchemaColumns is the canonical column list per log kind.
var SchemaColumns = map[LogKind][]string{
	LogCalibration: {"Spannung (V)", "Abstand (mm)"},
	LogControl:     {"time (s)", "ist_distanz (mm)", "delta_distance (mm)"},
}
