package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "gamrycli/internal/errors"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gamryparse.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "stderr", cfg.Logging.Output)
	assert.Equal(t, "en_US", cfg.Parse.Locale)
	assert.False(t, cfg.Parse.Timestamps)
	assert.Equal(t, FormatCSV, cfg.Export.Format)
	assert.Equal(t, DefaultOutputDir, cfg.Export.OutputDir)
	assert.Equal(t, DefaultWorkers, cfg.Batch.Workers)
	assert.Equal(t, DefaultFilePattern, cfg.Batch.Pattern)
	assert.Equal(t, TracingNone, cfg.Telemetry.Tracing)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		env         map[string]string
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "file values override defaults",
			file: `
logging:
  level: debug
  format: text
parse:
  locale: de_DE.utf8
  timestamps: true
  curve_prefixes: [eis]
export:
  format: xlsx
  output_dir: results
batch:
  workers: 8
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "text", cfg.Logging.Format)
				assert.Equal(t, "stderr", cfg.Logging.Output)
				assert.Equal(t, "de_DE.utf8", cfg.Parse.Locale)
				assert.True(t, cfg.Parse.Timestamps)
				assert.Equal(t, []string{"EIS"}, cfg.Parse.CurvePrefixes)
				assert.Equal(t, FormatXLSX, cfg.Export.Format)
				assert.Equal(t, "results", cfg.Export.OutputDir)
				assert.Equal(t, 8, cfg.Batch.Workers)
				assert.Equal(t, DefaultFilePattern, cfg.Batch.Pattern)
			},
		},
		{
			name: "environment overrides file",
			file: "logging:\n  level: debug\nbatch:\n  workers: 8\n",
			env: map[string]string{
				"GAMRY_LOGGING_LEVEL":        "WARN",
				"GAMRY_BATCH_WORKERS":        "2",
				"GAMRY_PARSE_CURVE_PREFIXES": "Q,R",
				"GAMRY_TELEMETRY_TRACING":    "stdout",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "warn", cfg.Logging.Level)
				assert.Equal(t, 2, cfg.Batch.Workers)
				assert.Equal(t, []string{"Q", "R"}, cfg.Parse.CurvePrefixes)
				assert.Equal(t, TracingStdout, cfg.Telemetry.Tracing)
			},
		},
		{
			name:    "invalid worker count",
			file:    "batch:\n  workers: 100\n",
			wantErr: true,
		},
		{
			name:    "unknown export format",
			env:     map[string]string{"GAMRY_EXPORT_FORMAT": "parquet"},
			file:    "export:\n  format: csv\n",
			wantErr: true,
		},
		{
			name:    "file output without path",
			file:    "logging:\n  output: file\n  file_path: \"\"\n",
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			file:    "logging: [unclosed\n",
			wantErr: true,
		},
		{
			name:    "malformed env value",
			file:    "batch:\n  workers: 2\n",
			env:     map[string]string{"GAMRY_BATCH_WORKERS": "many"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := writeConfigFile(t, tt.file)

			cfg, err := Load(path)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConfig))
				return
			}
			require.NoError(t, err)
			if tt.validateCfg != nil {
				tt.validateCfg(t, cfg)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConfig))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate_ReportsFields(t *testing.T) {
	cfg := Default()
	cfg.Logging.Format = "xml"
	cfg.Batch.Workers = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Config.Logging.Format (oneof)")
	assert.Contains(t, err.Error(), "Config.Batch.Workers (min)")
}
