package config

import (
	"os"
	"path/filepath"
)

// findProjectConfigFile looks for a config file in the current directory.
func findProjectConfigFile() string {
	for _, name := range []string{"checklist.toml", ".checklist.toml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// findUserConfigFile looks for a user-level config file.
// Checks ~/.checklist/checklist.toml first, then the OS config directory.
func findUserConfigFile() string {
	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, ".checklist", "checklist.toml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	if dir, err := os.UserConfigDir(); err == nil {
		path := filepath.Join(dir, "checklist", "checklist.toml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.TodoFile = DefaultTodoFile
	cfg.PollIntervalMs = DefaultPollIntervalMs
	cfg.ShowHelp = DefaultShowHelp
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
}
