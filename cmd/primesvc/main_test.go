package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"primesvc/internal/config"
	"primesvc/internal/version"
)

func TestParseBound(t *testing.T) {
	tests := []struct {
		input   string
		want    uint32
		wantErr bool
	}{
		{"0", 0, false},
		{"10", 10, false},
		{"4294967295", 4294967295, false},
		{"4294967296", 0, true},
		{"-1", 0, true},
		{"ten", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseBound("START", tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseBound(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseBound(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestWriteScan(t *testing.T) {
	tests := []struct {
		start, end uint32
		want       string
	}{
		{1, 10, "[1,2,3,5,7]\n"},
		{10, 20, "[11,13,17,19]\n"},
		{30, 30, "[]\n"},
		{20, 10, "[]\n"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		if err := writeScan(&buf, tt.start, tt.end); err != nil {
			t.Fatalf("writeScan failed: %v", err)
		}
		if buf.String() != tt.want {
			t.Errorf("writeScan(%d, %d) = %q, want %q", tt.start, tt.end, buf.String(), tt.want)
		}
	}
}

func TestScanCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"scan", "1", "10"})
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	}()

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "[1,2,3,5,7]" {
		t.Errorf("output = %q, want [1,2,3,5,7]", got)
	}
}

func TestVersionFlag(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--version"})
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		_ = rootCmd.Flags().Set("version", "false")
	}()

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("--version failed: %v", err)
	}
	if got, want := out.String(), version.Info().String()+"\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestWriteDefaultConfig(t *testing.T) {
	dir := t.TempDir()

	for _, format := range []string{"json", "yaml", "toml"} {
		t.Run(format, func(t *testing.T) {
			path := filepath.Join(dir, "primesvc."+format)

			got, err := writeDefaultConfig(path, format, false)
			if err != nil {
				t.Fatalf("writeDefaultConfig failed: %v", err)
			}
			if got != path {
				t.Errorf("path = %q, want %q", got, path)
			}

			cfg, err := config.Load(path)
			if err != nil {
				t.Fatalf("Load(%s) failed: %v", path, err)
			}
			if cfg.Server.Port != 9000 {
				t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
			}

			if _, err := writeDefaultConfig(path, format, false); err == nil {
				t.Error("existing file should not be overwritten without force")
			}
			if _, err := writeDefaultConfig(path, format, true); err != nil {
				t.Errorf("force overwrite failed: %v", err)
			}
		})
	}
}

func TestWriteDefaultConfig_DefaultPath(t *testing.T) {
	t.Chdir(t.TempDir())

	path, err := writeDefaultConfig("", "yaml", false)
	if err != nil {
		t.Fatalf("writeDefaultConfig failed: %v", err)
	}
	if path != "primesvc.yaml" {
		t.Errorf("path = %q, want primesvc.yaml", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("file should exist: %v", err)
	}
}

func TestLoadConfig_LogLevelFlag(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	prev := logLevelFlag
	logLevelFlag = "debug"
	defer func() { logLevelFlag = prev }()

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}

	logLevelFlag = "loud"
	if _, err := loadConfig(); err == nil {
		t.Error("invalid --log-level should fail validation")
	}
}
