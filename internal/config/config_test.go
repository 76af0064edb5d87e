package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.True(t, cfg.Server.FallbackOnEncodeError, "fallback should be on by default")
	assert.Zero(t, cfg.Limits.MaxRangeSpan, "range span should be unlimited by default")
	assert.Zero(t, cfg.Limits.RequestTimeoutMs)
	assert.Zero(t, cfg.Server.WriteTimeoutMs, "long scans must not be cut off by a write deadline")
	assert.False(t, cfg.Server.RequireJSONContentType)
	assert.Equal(t, "/metrics", cfg.Metrics.Endpoint)
	assert.False(t, cfg.Tracing.Enabled)
	assert.Equal(t, "0.0.0.0:9000", cfg.Addr())
	require.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		field   string
		wantErr bool
	}{
		{"defaults", func(*Config) {}, "", false},
		{"bad version", func(c *Config) { c.Version = 2 }, "version", true},
		{"negative port", func(c *Config) { c.Server.Port = -1 }, "server.port", true},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, "server.port", true},
		{"ephemeral port", func(c *Config) { c.Server.Port = 0 }, "", false},
		{"negative timeout", func(c *Config) { c.Limits.RequestTimeoutMs = -5 }, "limits.requestTimeoutMs", true},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format", true},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level", true},
		{"uppercase level", func(c *Config) { c.Logging.Level = "DEBUG" }, "", false},
		{"relative metrics path", func(c *Config) { c.Metrics.Endpoint = "metrics" }, "metrics.endpoint", true},
		{"metrics disabled ignores path", func(c *Config) {
			c.Metrics.Enabled = false
			c.Metrics.Endpoint = ""
		}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_Formats(t *testing.T) {
	for _, format := range []string{"json", "yaml", "toml"} {
		t.Run(format, func(t *testing.T) {
			want := DefaultConfig()
			want.Server.Port = 9123
			want.Server.FallbackOnEncodeError = false
			want.Limits.MaxRangeSpan = 5000
			want.Logging.Level = "debug"

			path := filepath.Join(t.TempDir(), "primesvc."+format)
			require.NoError(t, want.Save(path, format))

			got, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestLoad_SearchesWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())

	data := []byte("server:\n  port: 9500\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "primesvc.yaml"), data, 0644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9500, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host, "unset keys keep defaults")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PRIMESVC_SERVER_PORT", "9777")
	t.Setenv("PRIMESVC_SERVER_FALLBACKONENCODEERROR", "false")
	t.Setenv("PRIMESVC_LIMITS_MAXRANGESPAN", "100")
	t.Setenv("PRIMESVC_SERVER_REQUIREJSONCONTENTTYPE", "true")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9777, cfg.Server.Port)
	assert.True(t, cfg.Server.RequireJSONContentType)
	assert.False(t, cfg.Server.FallbackOnEncodeError)
	assert.Equal(t, uint64(100), cfg.Limits.MaxRangeSpan)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("PRIMESVC_TEST_ENVFILE=loaded\n"), 0644))
	t.Setenv("PRIMESVC_TEST_ENVFILE", "")
	require.NoError(t, os.Unsetenv("PRIMESVC_TEST_ENVFILE"))

	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "loaded", os.Getenv("PRIMESVC_TEST_ENVFILE"))

	assert.Error(t, LoadEnvFile(filepath.Join(dir, "missing.env")))

	t.Chdir(dir)
	assert.NoError(t, LoadEnvFile(""), "absent ./.env is not an error")
}

func TestConfig_Write(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		format string
		want   string
	}{
		{"json", `"fallbackOnEncodeError": true`},
		{"yaml", "fallbackOnEncodeError: true"},
		{"toml", "fallbackOnEncodeError = true"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, cfg.Write(&buf, tt.format))
			assert.True(t, strings.Contains(buf.String(), tt.want), "output:\n%s", buf.String())
		})
	}

	var buf bytes.Buffer
	var cfgErr *ConfigError
	assert.ErrorAs(t, cfg.Write(&buf, "ini"), &cfgErr)
}
