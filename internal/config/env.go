package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// loadFromEnv overrides config from CHECKLIST_* environment variables.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) error {
	setString := func(env, field string, dst *string) {
		if v := os.Getenv(env); v != "" {
			*dst = v
			sources[field] = SourceEnv
		}
	}
	setBool := func(env, field string, dst *bool) {
		if v := os.Getenv(env); v != "" {
			*dst = boolFromString(v)
			sources[field] = SourceEnv
		}
	}

	setString("CHECKLIST_TODO", "todo_file", &cfg.TodoFile)
	setBool("CHECKLIST_SHOW_HELP", "show_help", &cfg.ShowHelp)
	setString("CHECKLIST_LOG_DIR", "log_dir", &cfg.LogDir)
	setString("CHECKLIST_LOG_LEVEL", "log_level", &cfg.LogLevel)
	setString("CHECKLIST_LOG_FORMAT", "log_format", &cfg.LogFormat)
	setBool("CHECKLIST_LOG_TIMESTAMPS", "log_timestamps", &cfg.LogTimestamps)
	setBool("CHECKLIST_LOG_CALLER", "log_caller", &cfg.LogCaller)

	if v := os.Getenv("CHECKLIST_POLL_INTERVAL_MS"); v != "" {
		ms, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("CHECKLIST_POLL_INTERVAL_MS: %w", err)
		}
		cfg.PollIntervalMs = ms
		sources["poll_interval_ms"] = SourceEnv
	}
	return nil
}

// boolFromString parses the usual spellings of true; anything else is false.
func boolFromString(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on", "y":
		return true
	default:
		return false
	}
}
