package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "gamrycli/internal/errors"
)

// Config represents the complete CLI configuration
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Parse     ParseConfig     `yaml:"parse" envconfig:"PARSE"`
	Export    ExportConfig    `yaml:"export" envconfig:"EXPORT"`
	Batch     BatchConfig     `yaml:"batch" envconfig:"BATCH"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=stderr file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_unless=Output stderr"`
}

// ParseConfig selects how DTA files are read
type ParseConfig struct {
	Locale        string   `yaml:"locale" envconfig:"LOCALE"`
	Timestamps    bool     `yaml:"timestamps" envconfig:"TIMESTAMPS"`
	CurvePrefixes []string `yaml:"curve_prefixes" envconfig:"CURVE_PREFIXES" validate:"dive,required,alpha"`
}

// ExportConfig contains exporter configuration
type ExportConfig struct {
	Format    string `yaml:"format" envconfig:"FORMAT" validate:"oneof=csv xlsx"`
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR" validate:"required"`
	BOM       bool   `yaml:"bom" envconfig:"BOM"`
}

// BatchConfig contains directory batch configuration
type BatchConfig struct {
	Workers int    `yaml:"workers" envconfig:"WORKERS" validate:"min=1,max=64"`
	Pattern string `yaml:"pattern" envconfig:"PATTERN" validate:"required"`
}

// TelemetryConfig contains tracing and metrics configuration
type TelemetryConfig struct {
	Tracing     string `yaml:"tracing" envconfig:"TRACING" validate:"oneof=none stdout"`
	MetricsFile string `yaml:"metrics_file" envconfig:"METRICS_FILE"`
}

// Load builds the configuration from defaults, then the YAML file at path
// (or the first default location found when path is empty), then GAMRY_*
// environment variables. The result is validated before it is returned.
func Load(path string) (*Config, error) {
	cfg := Default()

	configFile := path
	if configFile == "" {
		configFile = getConfigFilePath()
	}
	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, apperrors.NewConfigError(fmt.Sprintf("failed to load config from %s", configFile), err)
		}
	}

	// Environment wins over the file; unset variables leave fields untouched
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func (c *Config) normalize() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Output = strings.ToLower(strings.TrimSpace(c.Logging.Output))
	c.Export.Format = strings.ToLower(strings.TrimSpace(c.Export.Format))
	c.Telemetry.Tracing = strings.ToLower(strings.TrimSpace(c.Telemetry.Tracing))
	for i, p := range c.Parse.CurvePrefixes {
		c.Parse.CurvePrefixes[i] = strings.ToUpper(strings.TrimSpace(p))
	}
}

// Validate checks the struct tags of every section
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return apperrors.NewConfigError("config validation failed: "+strings.Join(fields, ", "), err)
		}
		return apperrors.NewConfigError("config validation failed", err)
	}
	return nil
}

// getConfigFilePath returns the first config file found in the usual locations
func getConfigFilePath() string {
	locations := []string{
		DefaultConfigFile,
		filepath.Join("configs", DefaultConfigFile),
	}
	if home, err := os.UserConfigDir(); err == nil {
		locations = append(locations, filepath.Join(home, AppName, DefaultConfigFile))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "stderr",
			FilePath: DefaultLogFile,
		},
		Parse: ParseConfig{
			Locale: "en_US",
		},
		Export: ExportConfig{
			Format:    FormatCSV,
			OutputDir: DefaultOutputDir,
		},
		Batch: BatchConfig{
			Workers: DefaultWorkers,
			Pattern: DefaultFilePattern,
		},
		Telemetry: TelemetryConfig{
			Tracing: TracingNone,
		},
	}
}
