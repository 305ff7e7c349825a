package views

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlongus/MECH-EINF/models"
)

func TestCreateLogFileRefusesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Sensorkalibrierung.csv")

	require.NoError(t, CreateLogFile(path))
	err := CreateLogFile(path)
	assert.ErrorIs(t, err, ErrLogExists)
}

func TestUniqueLogFileSuffixes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Wegdiagramm.csv")

	got, err := UniqueLogFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, got)

	got, err = UniqueLogFile(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Wegdiagramm_1.csv"), got)

	got, err = UniqueLogFile(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Wegdiagramm_2.csv"), got)
}

func TestUniqueLogFileSkipsGaps(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "log.csv")
	require.NoError(t, CreateLogFile(path))
	require.NoError(t, CreateLogFile(filepath.Join(dir, "log_7.csv")))

	got, err := UniqueLogFile(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "log_8.csv"), got)
}

func TestLogWriterAppendsSemicolonRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, CreateLogFile(path))

	w, err := OpenLogWriter(path, ';')
	require.NoError(t, err)

	require.NoError(t, w.WriteRow(models.CalibrationPoint{}.CSVHeader()))
	require.NoError(t, w.WriteRow(models.CalibrationPoint{Voltage: 1.2345, Distance: 40}.CSVRow()))
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Spannung (V);Abstand (mm)\n1.2345;40\n", string(data))
}

func TestSchemaMatchesModels(t *testing.T) {
	assert.Equal(t, SchemaColumns[LogCalibration], models.CalibrationPoint{}.CSVHeader())
	assert.Equal(t, SchemaColumns[LogControl], models.ControlRecord{}.CSVHeader())
}
