package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "assemblystats/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Source    SourceConfig    `yaml:"source" envconfig:"SOURCE"`
	Output    OutputConfig    `yaml:"output" envconfig:"OUTPUT"`
	Pipeline  PipelineConfig  `yaml:"pipeline" envconfig:"PIPELINE"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_unless=Output console"`
}

// SourceConfig configures access to remote assembly summaries. Local paths
// and http(s) URLs need no configuration.
type SourceConfig struct {
	S3Region    string `yaml:"s3_region" envconfig:"S3_REGION"`
	S3Endpoint  string `yaml:"s3_endpoint" envconfig:"S3_ENDPOINT" validate:"omitempty,url"`
	S3PathStyle bool   `yaml:"s3_path_style" envconfig:"S3_PATH_STYLE"`
}

// OutputConfig controls where and how the report is written.
type OutputConfig struct {
	Dir     string   `yaml:"dir" envconfig:"DIR" validate:"required"`
	Prefix  string   `yaml:"prefix" envconfig:"PREFIX" validate:"required"`
	Formats []string `yaml:"formats" envconfig:"FORMATS" validate:"min=1,dive,oneof=tsv xlsx sqlite"`
}

// PipelineConfig holds the outlier filter parameters and the input line limit.
type PipelineConfig struct {
	IQRMultiplier float64 `yaml:"iqr_multiplier" envconfig:"IQR_MULTIPLIER" validate:"gt=0"`
	MinSampleSize int     `yaml:"min_sample_size" envconfig:"MIN_SAMPLE_SIZE" validate:"gte=1"`
	// MaxLineBytes bounds one input line; a longer line aborts the run.
	MaxLineBytes int `yaml:"max_line_bytes" envconfig:"MAX_LINE_BYTES" validate:"gte=1024"`
}

// TelemetryConfig controls tracing and the Prometheus textfile export.
type TelemetryConfig struct {
	TraceExporter string `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" validate:"oneof=none stdout"`
	TraceFile     string `yaml:"trace_file" envconfig:"TRACE_FILE"`
	MetricsFile   string `yaml:"metrics_file" envconfig:"METRICS_FILE"`
}

// Load loads configuration from defaults, the first config file found in
// the usual locations, and environment variables, in increasing precedence.
func Load() (*Config, error) {
	return LoadFrom(getConfigFilePath())
}

// LoadFrom is Load with an explicit config file. An empty path skips the
// file layer.
func LoadFrom(configFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, err
		}
	}

	// Fields without a matching variable keep their file or default value.
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg. An unreadable file is a
// CONFIG error, malformed YAML a PARSING error.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return apperrors.NewConfigError("failed to load config from file", err).
			WithContext("path", filePath)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return apperrors.NewParsingError("malformed config file", err).
			WithContext("path", filePath)
	}
	return nil
}

// Validate checks every section against its struct tags.
func (c *Config) Validate() error {
	c.Logging.Level = strings.ToLower(c.Logging.Level)
	for i, f := range c.Output.Formats {
		c.Output.Formats[i] = strings.ToLower(strings.TrimSpace(f))
	}

	if err := validator.New().Struct(c); err != nil {
		var msgs []string
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
		} else {
			msgs = append(msgs, err.Error())
		}
		return apperrors.NewValidationError("config validation failed: "+strings.Join(msgs, "; "), err)
	}
	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	if path := os.Getenv(EnvPrefix + "_CONFIG_FILE"); path != "" {
		return path
	}

	locations := []string{
		"assemblystats.yaml",
		"configs/assemblystats.yaml",
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
			Format:   "text",
			Output:   "console",
			FilePath: DefaultLogFile,
		},
		Source: SourceConfig{
			S3Region: DefaultS3Region,
		},
		Output: OutputConfig{
			Dir:     ".",
			Prefix:  DefaultReportPrefix,
			Formats: []string{FormatTSV},
		},
		Pipeline: PipelineConfig{
			IQRMultiplier: DefaultIQRMultiplier,
			MinSampleSize: DefaultMinSampleSize,
			MaxLineBytes:  DefaultMaxLineBytes,
		},
		Telemetry: TelemetryConfig{
			TraceExporter: "none",
		},
	}
}
