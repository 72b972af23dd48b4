// Package config provides configuration management for the signalboard CLI.
package config

import "time"

// Default values applied before any config file, env var or flag.
const (
	DefaultDataDir     = "data"
	DefaultDataTimeout = 10 * time.Second
	DefaultOutput      = "auto"
	DefaultPort        = 8765
	DefaultSessionTTL  = 30 * time.Minute
)

// Output modes accepted by the output setting.
const (
	OutputAuto     = "auto"
	OutputText     = "text"
	OutputMarkdown = "markdown"
	OutputJSON     = "json"
)

// UIConfig holds configuration for the UI server.
type UIConfig struct {
	Port          int           `koanf:"port"`
	AutoOpen      bool          `koanf:"auto_open"`
	Watch         bool          `koanf:"watch"`
	SessionSecret string        `koanf:"session_secret"`
	SessionTTL    time.Duration `koanf:"session_ttl"`
}

// Config holds all CLI configuration options.
type Config struct {
	// DataDir is a directory holding config.json, scenarios.json and the tab datasets.
	DataDir string `koanf:"data_dir"`
	// DataURL is an HTTP base URL serving the same resources. Mutually exclusive with DataDir.
	DataURL     string        `koanf:"data_url"`
	DataTimeout time.Duration `koanf:"data_timeout"`
	Verbose     bool          `koanf:"verbose"`
	Output      string        `koanf:"output"`
	UI          UIConfig      `koanf:"ui"`

	// dataDirSet records whether DataDir came from a file, env var or flag
	// rather than the default.
	dataDirSet bool
}

// DataDirExplicit reports whether the data directory was configured rather
// than taken from the default.
func (c *Config) DataDirExplicit() bool {
	return c.dataDirSet
}

// SetDataDir sets the data directory and marks it as explicitly configured.
func (c *Config) SetDataDir(dir string) {
	c.DataDir = dir
	c.dataDirSet = dir != ""
}
