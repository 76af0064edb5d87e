package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment override, e.g. PRIMESVC_SERVER_PORT.
const EnvPrefix = "PRIMESVC"

// Config represents the complete primesvc configuration
type Config struct {
	Version int `json:"version" mapstructure:"version" yaml:"version" toml:"version"`

	Server  ServerConfig  `json:"server" mapstructure:"server" yaml:"server" toml:"server"`
	Limits  LimitsConfig  `json:"limits" mapstructure:"limits" yaml:"limits" toml:"limits"`
	Logging LoggingConfig `json:"logging" mapstructure:"logging" yaml:"logging" toml:"logging"`
	Metrics MetricsConfig `json:"metrics" mapstructure:"metrics" yaml:"metrics" toml:"metrics"`
	Tracing TracingConfig `json:"tracing" mapstructure:"tracing" yaml:"tracing" toml:"tracing"`
}

// ServerConfig contains HTTP listener configuration
type ServerConfig struct {
	Host           string `json:"host" mapstructure:"host" yaml:"host" toml:"host"`
	Port           int    `json:"port" mapstructure:"port" yaml:"port" toml:"port"`
	ReadTimeoutMs  int    `json:"readTimeoutMs" mapstructure:"readTimeoutMs" yaml:"readTimeoutMs" toml:"readTimeoutMs"`
	// WriteTimeoutMs of 0 leaves response writes unbounded; the scan budget is
	// limits.requestTimeoutMs.
	WriteTimeoutMs int    `json:"writeTimeoutMs" mapstructure:"writeTimeoutMs" yaml:"writeTimeoutMs" toml:"writeTimeoutMs"`
	IdleTimeoutMs  int    `json:"idleTimeoutMs" mapstructure:"idleTimeoutMs" yaml:"idleTimeoutMs" toml:"idleTimeoutMs"`
	// FallbackOnEncodeError answers 200 with a fixed text body when the
	// result cannot be serialized, instead of a 500 error.
	FallbackOnEncodeError bool `json:"fallbackOnEncodeError" mapstructure:"fallbackOnEncodeError" yaml:"fallbackOnEncodeError" toml:"fallbackOnEncodeError"`
	Compression           bool `json:"compression" mapstructure:"compression" yaml:"compression" toml:"compression"`
	// RequireJSONContentType rejects POST /primes bodies not labelled as JSON.
	RequireJSONContentType bool `json:"requireJSONContentType" mapstructure:"requireJSONContentType" yaml:"requireJSONContentType" toml:"requireJSONContentType"`
}

// LimitsConfig bounds the work a single request may ask for. Zero means unlimited.
type LimitsConfig struct {
	MaxRangeSpan     uint64 `json:"maxRangeSpan" mapstructure:"maxRangeSpan" yaml:"maxRangeSpan" toml:"maxRangeSpan"`
	RequestTimeoutMs int    `json:"requestTimeoutMs" mapstructure:"requestTimeoutMs" yaml:"requestTimeoutMs" toml:"requestTimeoutMs"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format     string `json:"format" mapstructure:"format" yaml:"format" toml:"format"`
	Level      string `json:"level" mapstructure:"level" yaml:"level" toml:"level"`
	File       string `json:"file" mapstructure:"file" yaml:"file" toml:"file"`
	MaxSize    string `json:"maxSize" mapstructure:"maxSize" yaml:"maxSize" toml:"maxSize"`
	MaxBackups int    `json:"maxBackups" mapstructure:"maxBackups" yaml:"maxBackups" toml:"maxBackups"`
}

// MetricsConfig contains metrics configuration
type MetricsConfig struct {
	Enabled  bool   `json:"enabled" mapstructure:"enabled" yaml:"enabled" toml:"enabled"`
	Endpoint string `json:"endpoint" mapstructure:"endpoint" yaml:"endpoint" toml:"endpoint"`
}

// TracingConfig contains OpenTelemetry configuration.
// Output is "stdout" or a file path.
type TracingConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled" yaml:"enabled" toml:"enabled"`
	Output  string `json:"output" mapstructure:"output" yaml:"output" toml:"output"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Server: ServerConfig{
			Host:                  "0.0.0.0",
			Port:                  9000,
			ReadTimeoutMs:         15000,
			WriteTimeoutMs:        0,
			IdleTimeoutMs:         60000,
			FallbackOnEncodeError: true,
			Compression:           true,
		},
		Limits: LimitsConfig{
			MaxRangeSpan:     0,
			RequestTimeoutMs: 0,
		},
		Logging: LoggingConfig{
			Format:     "human",
			Level:      "info",
			MaxBackups: 3,
		},
		Metrics: MetricsConfig{
			Enabled:  true,
			Endpoint: "/metrics",
		},
		Tracing: TracingConfig{
			Enabled: false,
			Output:  "stdout",
		},
	}
}

// setDefaults registers every key so env overrides apply even without a config file.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("version", d.Version)
	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.readTimeoutMs", d.Server.ReadTimeoutMs)
	v.SetDefault("server.writeTimeoutMs", d.Server.WriteTimeoutMs)
	v.SetDefault("server.idleTimeoutMs", d.Server.IdleTimeoutMs)
	v.SetDefault("server.fallbackOnEncodeError", d.Server.FallbackOnEncodeError)
	v.SetDefault("server.compression", d.Server.Compression)
	v.SetDefault("server.requireJSONContentType", d.Server.RequireJSONContentType)
	v.SetDefault("limits.maxRangeSpan", d.Limits.MaxRangeSpan)
	v.SetDefault("limits.requestTimeoutMs", d.Limits.RequestTimeoutMs)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.file", d.Logging.File)
	v.SetDefault("logging.maxSize", d.Logging.MaxSize)
	v.SetDefault("logging.maxBackups", d.Logging.MaxBackups)
	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.endpoint", d.Metrics.Endpoint)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.output", d.Tracing.Output)
}

// Load reads configuration from path, or from primesvc.{json,yaml,toml} in
// the working directory or $HOME/.primesvc when path is empty. A missing
// file is only an error when path was given explicitly. Environment
// variables prefixed with EnvPrefix override file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("primesvc")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.primesvc")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	return &cfg, nil
}

// LoadEnvFile loads KEY=VALUE pairs into the process environment without
// overriding variables that are already set. An empty path means ./.env,
// which may be absent.
func LoadEnvFile(path string) error {
	if path != "" {
		return godotenv.Load(path)
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Write encodes the configuration as json, yaml or toml
func (c *Config) Write(w io.Writer, format string) error {
	switch strings.ToLower(format) {
	case "", "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(c)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return err
		}
		return enc.Close()
	case "toml":
		return toml.NewEncoder(w).Encode(c)
	default:
		return &ConfigError{Field: "format", Message: "unsupported format " + format}
	}
}

// Save writes the configuration to path, choosing the encoding from format
func (c *Config) Save(path, format string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := c.Write(f, format); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Addr returns host:port for the HTTP listener
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != 1 {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return &ConfigError{Field: "server.port", Message: "port must be between 0 and 65535"}
	}
	if c.Limits.RequestTimeoutMs < 0 {
		return &ConfigError{Field: "limits.requestTimeoutMs", Message: "must not be negative"}
	}
	switch c.Logging.Format {
	case "human", "json":
	default:
		return &ConfigError{Field: "logging.format", Message: "must be human or json"}
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ConfigError{Field: "logging.level", Message: "must be debug, info, warn or error"}
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Endpoint, "/") {
		return &ConfigError{Field: "metrics.endpoint", Message: "must start with /"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
