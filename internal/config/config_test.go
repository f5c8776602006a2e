package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"PORT",
	"EV_DATA_PATH",
	"EV_DATA_SHEET",
	"EV_MODEL_PATH",
	"EV_MODEL_URL",
	"EV_FORECAST_HORIZON",
	"EV_MAX_COMPARE",
	"LOG_LEVEL",
}

// clearEnv blanks every config key for the duration of the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad(t *testing.T) {
	testData := map[string]struct {
		env      map[string]string
		expected *Config
		err      error
	}{
		"defaults": {
			env: map[string]string{
				"EV_MODEL_PATH": "model.json",
			},
			expected: &Config{
				Port:       "8080",
				DataPath:   "preprocessed_ev_data.csv",
				ModelPath:  "model.json",
				Horizon:    36,
				MaxCompare: 3,
				LogLevel:   slog.LevelInfo,
			},
		},
		"overrides": {
			env: map[string]string{
				"PORT":                "9090",
				"EV_DATA_PATH":        "ev.xlsx",
				"EV_DATA_SHEET":       "counties",
				"EV_MODEL_URL":        "http://model:8000",
				"EV_FORECAST_HORIZON": "12",
				"EV_MAX_COMPARE":      "2",
				"LOG_LEVEL":           "debug",
			},
			expected: &Config{
				Port:       "9090",
				DataPath:   "ev.xlsx",
				DataSheet:  "counties",
				ModelURL:   "http://model:8000",
				Horizon:    12,
				MaxCompare: 2,
				LogLevel:   slog.LevelDebug,
			},
		},
		"no model source": {
			env: map[string]string{},
			err: ErrNoModelSource,
		},
		"invalid horizon": {
			env: map[string]string{
				"EV_MODEL_PATH":       "model.json",
				"EV_FORECAST_HORIZON": "soon",
			},
			err: ErrInvalidNumber,
		},
		"zero compare": {
			env: map[string]string{
				"EV_MODEL_PATH":  "model.json",
				"EV_MAX_COMPARE": "0",
			},
			err: ErrInvalidNumber,
		},
		"invalid log level": {
			env: map[string]string{
				"EV_MODEL_PATH": "model.json",
				"LOG_LEVEL":     "loud",
			},
			err: ErrInvalidLogLevel,
		},
	}

	missing := filepath.Join(t.TempDir(), "missing.env")
	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range td.env {
				t.Setenv(k, v)
			}

			cfg, err := Load(missing)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, td.expected, cfg)
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("EV_FORECAST_HORIZON", "24")

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("EV_MODEL_PATH=from_file.json\nEV_FORECAST_HORIZON=6\n"), 0o644))

	cfg, err := Load(envFile)
	require.NoError(t, err)
	assert.Equal(t, "from_file.json", cfg.ModelPath)
	// the environment wins over the file
	assert.Equal(t, 24, cfg.Horizon)
}

func TestAddr(t *testing.T) {
	assert.Equal(t, ":8080", (&Config{Port: "8080"}).Addr())
	assert.Equal(t, "127.0.0.1:8080", (&Config{Port: "127.0.0.1:8080"}).Addr())
}
