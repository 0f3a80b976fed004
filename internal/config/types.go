package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/nibzard/checklist-go/internal/dispatch"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, lowest priority first.
	Files []string
}

// Default values.
const (
	DefaultTodoFile       = "TODO.md"
	DefaultPollIntervalMs = 100
	DefaultShowHelp       = true
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
)

// Config holds the full configuration for checklist.
type Config struct {
	// TodoFile is the file name the resolver searches for.
	TodoFile string `toml:"todo_file"`

	// Editor
	PollIntervalMs int  `toml:"poll_interval_ms"`
	ShowHelp       bool `toml:"show_help"`

	// Keys overrides the default key map, action name to keys.
	Keys map[string][]string `toml:"keys"`

	// Logging configuration. An empty LogDir disables logging.
	LogDir        string `toml:"log_dir"`
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Project root (computed)
	ProjectRoot string `toml:"-"`
}

// PollInterval returns the bounded wait for input between loop iterations.
func (c *Config) PollInterval() time.Duration {
	if c.PollIntervalMs < 1 {
		return DefaultPollIntervalMs * time.Millisecond
	}
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}

// KeyMap returns the default key map with the [keys] overrides applied.
func (c *Config) KeyMap() (dispatch.KeyMap, error) {
	km := dispatch.DefaultKeyMap()
	if err := km.Apply(c.Keys); err != nil {
		return dispatch.KeyMap{}, err
	}
	return km, nil
}

var (
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"text", "json", "logfmt"}
)

// Validate checks values that cannot be fixed up silently.
func (c *Config) Validate() error {
	if !slices.Contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("log_level %q: want one of %s", c.LogLevel, strings.Join(validLogLevels, ", "))
	}
	if !slices.Contains(validLogFormats, c.LogFormat) {
		return fmt.Errorf("log_format %q: want one of %s", c.LogFormat, strings.Join(validLogFormats, ", "))
	}
	if strings.TrimSpace(c.TodoFile) == "" {
		return fmt.Errorf("todo_file must not be empty")
	}
	if _, err := c.KeyMap(); err != nil {
		return err
	}
	return nil
}
