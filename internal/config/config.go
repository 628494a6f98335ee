// Package config handles configuration for the minifeed REPL, including
// defaults, a JSON or YAML file overlay, and command-line flags.
package config

import (
	"path/filepath"

	"github.com/dmitrijs2005/minifeed/internal/storage"
)

// Config holds runtime settings.
//
// Fields:
//   - DataDir: directory holding the database file, relative to the working directory unless absolute.
//   - DatabaseFile: SQLite file name inside DataDir, or ":memory:".
//   - LogLevel / LogFormat / LogBackend: passed to logging.New.
//   - DefaultSort: initial feed order ("", "latest", "oldest", "most-liked").
type Config struct {
	DataDir      string `json:"data_dir" yaml:"data_dir"`
	DatabaseFile string `json:"database_file" yaml:"database_file"`
	LogLevel     string `json:"log_level" yaml:"log_level"`
	LogFormat    string `json:"log_format" yaml:"log_format"`
	LogBackend   string `json:"log_backend" yaml:"log_backend"`
	DefaultSort  string `json:"default_sort" yaml:"default_sort"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DataDir = "data"
	c.DatabaseFile = "feed.db"
	c.LogLevel = "warn"
	c.LogFormat = "text"
	c.LogBackend = "slog"
	c.DefaultSort = ""
}

// InMemory reports whether the database lives only for the process lifetime.
func (c *Config) InMemory() bool {
	return c.DatabaseFile == storage.MemoryDSN
}

// DatabaseDSN returns the path passed to the SQLite driver.
func (c *Config) DatabaseDSN() string {
	if c.InMemory() {
		return storage.MemoryDSN
	}
	return filepath.Join(c.DataDir, c.DatabaseFile)
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional config file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
