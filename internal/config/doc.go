// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.checklist/checklist.toml or OS-specific config directory)
// 3. Project config file (checklist.toml or .checklist.toml in the working directory)
// 4. Environment variables (CHECKLIST_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.checklist/checklist.toml (preferred)
// - <os.UserConfigDir>/checklist/checklist.toml
//
// Project-level config locations (overrides user config):
// - ./checklist.toml (preferred)
// - ./.checklist.toml
package config
