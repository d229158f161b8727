package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/db47h/gatesim"
	"github.com/db47h/gatesim/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	c, err := config.Read(strings.NewReader(`
log:
  level: debug
  format: json
engine:
  step_budget: 500
  floating: low
clock:
  period: 20ms
metrics:
  addr: ":2112"
`))
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, c.Log.Level)
	assert.Equal(t, config.FormatJSON, c.Log.Format)
	assert.Equal(t, 500, c.Engine.StepBudget)
	assert.Equal(t, gatesim.Low, c.Engine.Floating)
	assert.Equal(t, 20*time.Millisecond, c.Clock.Period)
	assert.Equal(t, ":2112", c.Metrics.Addr)

	s := gatesim.New(c.SimOptions()...)
	assert.Equal(t, 500, s.StepBudget())
	assert.Equal(t, gatesim.Low, s.Floating())
}

func TestRead_partial(t *testing.T) {
	c, err := config.Read(strings.NewReader("engine:\n  floating: 0\n"))
	require.NoError(t, err)
	def := config.Default()
	def.Engine.Floating = gatesim.Low
	assert.Equal(t, def, c)

	c, err = config.Read(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), c)
}

func TestRead_errors(t *testing.T) {
	td := []struct {
		name string
		in   string
	}{
		{"syntax", "log: [level"},
		{"unknown key", "engine:\n  turbo: true\n"},
		{"level", "log:\n  level: loud\n"},
		{"format", "log:\n  format: xml\n"},
		{"floating", "engine:\n  floating: maybe\n"},
		{"budget", "engine:\n  step_budget: -1\n"},
		{"period", "clock:\n  period: forever\n"},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			_, err := config.Read(strings.NewReader(d.in))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	c, err := config.Load(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), c)

	path := filepath.Join(dir, "gatesim.yaml")
	require.NoError(t, os.WriteFile(path, []byte("clock:\n  period: 1s\n"), 0o600))
	c, err = config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, time.Second, c.Clock.Period)
}
