// Package config loads the top level formsink configuration from a YAML file
// with environment variable overrides.
package config

import (
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"formsink/upload"
)

// Main is the top level configuration.
type Main struct {
	// Addr is the listen address of the gRPC ingestion endpoint.
	Addr string `yaml:"addr" env:"FORMSINK_ADDR"`

	// MaxConcurrentConns caps simultaneously served connections. Zero means no cap.
	MaxConcurrentConns int `yaml:"maxConcurrentConns" env:"FORMSINK_MAX_CONCURRENT_CONNS"`

	// LogLevel is the zerolog level name the process logs at.
	LogLevel string `yaml:"logLevel" env:"FORMSINK_LOG_LEVEL"`

	// SettingsDir is where versioned upload settings snapshots are persisted.
	SettingsDir string `yaml:"settingsDir" env:"FORMSINK_SETTINGS_DIR"`

	// ScanEngine selects the content scan regex engine: "hyperscan" or "go".
	ScanEngine string `yaml:"scanEngine" env:"FORMSINK_SCAN_ENGINE"`

	// Upload is the initial upload pipeline settings, used until a settings
	// snapshot is pushed or restored.
	Upload upload.Settings `yaml:"upload"`
}

// Default returns the configuration used when no file and no environment overrides are given.
func Default() Main {
	return Main{
		Addr:        ":37291",
		LogLevel:    "info",
		SettingsDir: "/var/lib/formsink",
		ScanEngine:  "hyperscan",
		Upload:      upload.DefaultSettings(),
	}
}

// Load reads the YAML file at path when path is non-empty, then applies
// environment variable overrides on top.
func Load(path string) (c Main, err error) {
	c = Default()

	if path != "" {
		var bb []byte
		bb, err = os.ReadFile(path)
		if err != nil {
			return
		}
		if err = yaml.Unmarshal(bb, &c); err != nil {
			return
		}
	}

	err = env.Parse(&c)
	return
}
