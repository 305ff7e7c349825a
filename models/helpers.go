package models

import (
	"strconv"
)

// ─── shared formatting helpers (package-private) ────────────────────────

func itoa(v int) string { return strconv.Itoa(v) }
func ftoa(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

// CSVRecord is the interface every loggable model satisfies.
type CSVRecord interface {
	CSVHeader() []string
	CSVRow() []string
}
