package config

import (
	"github.com/spf13/pflag"
)

// flagFields maps flag names to the config fields they set.
var flagFields = map[string]string{
	"todo":           "todo_file",
	"poll-interval":  "poll_interval_ms",
	"show-help":      "show_help",
	"log-dir":        "log_dir",
	"log-level":      "log_level",
	"log-format":     "log_format",
	"log-timestamps": "log_timestamps",
	"log-caller":     "log_caller",
}

// parseFlags defines the config flags on fs, parses args and records the
// flags that were given explicitly.
func parseFlags(cfg *Config, fs *pflag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = pflag.NewFlagSet("checklist", pflag.ContinueOnError)
	}

	fs.StringVar(&cfg.TodoFile, "todo", cfg.TodoFile, "File name to look for when no path is given")
	fs.IntVar(&cfg.PollIntervalMs, "poll-interval", cfg.PollIntervalMs, "Input poll interval in milliseconds")
	fs.BoolVar(&cfg.ShowHelp, "show-help", cfg.ShowHelp, "Show key help in the status bar")
	fs.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "Write debug logs under this directory")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *pflag.Flag) {
		if field, ok := flagFields[f.Name]; ok {
			sources[field] = SourceFlag
		}
	})
	return nil
}
