package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRigConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadRigConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "gpiochip0", cfg.Chip)
	assert.Equal(t, 1023, cfg.ADC.Resolution)
	assert.Equal(t, 3000, cfg.Stepper.StepTimeUs)
	assert.Equal(t, ';', cfg.Delimiter())
}

func TestLoadRigConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rig.yaml")
	yaml := `
adc:
  vref: 3.3
  resolution: 4095
control:
  gain: 0.001
log:
  delimiter: ","
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg, err := LoadRigConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 3.3, cfg.ADC.VRef)
	assert.Equal(t, 4095, cfg.ADC.Resolution)
	assert.Equal(t, 0.001, cfg.Control.Gain)
	assert.Equal(t, ',', cfg.Delimiter())
	// untouched sections keep their defaults
	assert.Equal(t, "gpiochip0", cfg.Chip)
	assert.Equal(t, 12.0, cfg.DCMotor.MaxVoltage)
}

func TestLoadRigConfigRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rig.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml]["), 0644))

	_, err := LoadRigConfig(path)
	assert.Error(t, err)
}

func TestPrompterConfirm(t *testing.T) {
	var out strings.Builder
	p := NewPrompter(strings.NewReader("\n"), &out)

	require.NoError(t, p.Confirm("weiter?"))
	assert.Equal(t, "weiter?", out.String())
}

func TestPrompterIntInRange(t *testing.T) {
	var out strings.Builder
	p := NewPrompter(strings.NewReader("abc\n99\n45\n"), &out)

	v, err := p.IntInRange("Distanz? ", 30, 60)
	require.NoError(t, err)
	assert.Equal(t, 45, v)

	assert.Contains(t, out.String(), "nur ganze Zahlen als Input erlaubt")
	assert.Contains(t, out.String(), "nur Werte zwischen 30 und 60 als Input erlaubt")
}

func TestPrompterIntInRangeEOF(t *testing.T) {
	p := NewPrompter(strings.NewReader(""), &strings.Builder{})

	_, err := p.IntInRange("? ", 0, 10)
	assert.Error(t, err)
}
