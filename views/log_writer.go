package views

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// ErrLogExists is returned by CreateLogFile when the target file already
// exists. Calibration runs refuse to overwrite earlier data.
var ErrLogExists = errors.New("log file already exists")

// CreateLogFile creates path exclusively. The caller decides whether an
// existing file is fatal (calibration) or should be suffixed (control runs,
// see UniqueLogFile).
func CreateLogFile(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w: %s", ErrLogExists, path)
		}
		return fmt.Errorf("create log file: %w", err)
	}
	return f.Close()
}

// UniqueLogFile creates path, or, when it is taken, the next free variant
// with an _N suffix before the .csv extension. It returns the name of the
// file actually created.
func UniqueLogFile(path string) (string, error) {
	err := CreateLogFile(path)
	if err == nil {
		return path, nil
	}
	if !errors.Is(err, ErrLogExists) {
		return "", err
	}

	base := strings.TrimSuffix(path, ".csv")
	dir := filepath.Dir(path)
	if dir == "" {
		dir = "."
	}

	pattern := regexp.MustCompile("^" + regexp.QuoteMeta(filepath.Base(base)) + `_(\d+)\.csv$`)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("scan log dir: %w", err)
	}

	next := 1
	for _, e := range entries {
		m := pattern.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n >= next {
			next = n + 1
		}
	}

	unique := fmt.Sprintf("%s_%d.csv", base, next)
	if err := CreateLogFile(unique); err != nil {
		return "", err
	}
	return unique, nil
}

// LogWriter appends delimiter-separated rows to a CSV log file. Rows are
// flushed on every write; the labs produce a handful of rows per second at
// most and a crashed run must not lose data.
type LogWriter struct {
	file *os.File
	csv  *csv.Writer
	path string
}

// OpenLogWriter opens an existing log file for appending.
func OpenLogWriter(path string, delimiter rune) (*LogWriter, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	w := csv.NewWriter(f)
	w.Comma = delimiter

	return &LogWriter{file: f, csv: w, path: path}, nil
}

// Path returns the file this writer appends to.
func (w *LogWriter) Path() string { return w.path }

// WriteRow appends one row and flushes it to disk.
func (w *LogWriter) WriteRow(row []string) error {
	if err := w.csv.Write(row); err != nil {
		return fmt.Errorf("write log row: %w", err)
	}
	w.csv.Flush()
	return w.csv.Error()
}

// WriteComment appends a single-cell row, used for the parameter line at
// the top of control logs.
func (w *LogWriter) WriteComment(text string) error {
	return w.WriteRow([]string{text})
}

// Close flushes remaining rows and closes the file.
func (w *LogWriter) Close() error {
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		_ = w.file.Close()
		return err
	}
	return w.file.Close()
}
