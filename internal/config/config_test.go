package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"
)

// isolate points HOME and the working directory at empty temp dirs and
// clears CHECKLIST_* so only the test's own sources apply.
func isolate(t *testing.T) (home, project string) {
	t.Helper()
	home = t.TempDir()
	project = t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	for _, env := range []string{
		"CHECKLIST_TODO", "CHECKLIST_POLL_INTERVAL_MS", "CHECKLIST_SHOW_HELP",
		"CHECKLIST_LOG_DIR", "CHECKLIST_LOG_LEVEL", "CHECKLIST_LOG_FORMAT",
		"CHECKLIST_LOG_TIMESTAMPS", "CHECKLIST_LOG_CALLER",
	} {
		t.Setenv(env, "")
	}
	t.Chdir(project)
	return home, project
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func newFlagSet() *pflag.FlagSet {
	return pflag.NewFlagSet("test", pflag.ContinueOnError)
}

func TestDefaults(t *testing.T) {
	isolate(t)

	cws, err := LoadWithSources(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}
	cfg := cws.Config
	if cfg.TodoFile != DefaultTodoFile {
		t.Errorf("TodoFile: got %q, want %q", cfg.TodoFile, DefaultTodoFile)
	}
	if cfg.PollInterval() != 100*time.Millisecond {
		t.Errorf("PollInterval: got %v, want 100ms", cfg.PollInterval())
	}
	if !cfg.ShowHelp {
		t.Error("ShowHelp: got false, want true")
	}
	if cfg.LogDir != "" || cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Errorf("logging defaults: dir=%q level=%q format=%q", cfg.LogDir, cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.ProjectRoot == "" {
		t.Error("ProjectRoot not computed")
	}
	for _, field := range configFields() {
		if cws.Sources[field] != SourceDefault {
			t.Errorf("source of %s: got %q, want default", field, cws.Sources[field])
		}
	}
	if cws.ConfigFile() != "" {
		t.Errorf("ConfigFile: got %q, want none", cws.ConfigFile())
	}
}

func TestLayerPrecedence(t *testing.T) {
	home, _ := isolate(t)

	writeFile(t, filepath.Join(home, ".checklist", "checklist.toml"), `
todo_file = "USER.md"
poll_interval_ms = 250
log_level = "warn"

[keys]
save = ["w"]
quit = ["Q"]
`)
	writeFile(t, "checklist.toml", `
todo_file = "PROJECT.md"

[keys]
quit = ["x"]
`)
	t.Setenv("CHECKLIST_LOG_LEVEL", "debug")
	t.Setenv("CHECKLIST_SHOW_HELP", "false")

	cws, err := LoadWithSources(newFlagSet(), []string{"--poll-interval", "40"})
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}
	cfg := cws.Config

	if cfg.TodoFile != "PROJECT.md" {
		t.Errorf("TodoFile: got %q, want PROJECT.md", cfg.TodoFile)
	}
	if cfg.PollIntervalMs != 40 {
		t.Errorf("PollIntervalMs: got %d, want 40", cfg.PollIntervalMs)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: got %q, want debug", cfg.LogLevel)
	}
	if cfg.ShowHelp {
		t.Error("ShowHelp: got true, want false")
	}
	if got := cfg.Keys["save"]; len(got) != 1 || got[0] != "w" {
		t.Errorf("keys.save: got %v, want [w]", got)
	}
	if got := cfg.Keys["quit"]; len(got) != 1 || got[0] != "x" {
		t.Errorf("keys.quit: got %v, want [x]", got)
	}

	wantSources := map[string]ConfigSource{
		"todo_file":        SourceProjFile,
		"poll_interval_ms": SourceFlag,
		"log_level":        SourceEnv,
		"show_help":        SourceEnv,
		"keys":             SourceProjFile,
		"log_format":       SourceDefault,
	}
	for field, want := range wantSources {
		if got := cws.Sources[field]; got != want {
			t.Errorf("source of %s: got %q, want %q", field, got, want)
		}
	}
	if len(cws.Files) != 2 || cws.ConfigFile() != "checklist.toml" {
		t.Errorf("Files: got %v", cws.Files)
	}
}

func TestHiddenProjectFile(t *testing.T) {
	isolate(t)
	writeFile(t, ".checklist.toml", `todo_file = "tasks.md"`)

	cfg, err := Load(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TodoFile != "tasks.md" {
		t.Errorf("TodoFile: got %q, want tasks.md", cfg.TodoFile)
	}
}

func TestOSUserConfigDir(t *testing.T) {
	home, _ := isolate(t)
	writeFile(t, filepath.Join(home, ".config", "checklist", "checklist.toml"), `show_help = false`)

	cws, err := LoadWithSources(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}
	if cws.Config.ShowHelp {
		t.Error("ShowHelp: got true, want false")
	}
	if cws.Sources["show_help"] != SourceUserFile {
		t.Errorf("source: got %q, want user file", cws.Sources["show_help"])
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		env     map[string]string
		args    []string
		wantErr string
	}{
		{
			name:    "unknown key",
			file:    `colour = "red"`,
			wantErr: "unknown keys: colour",
		},
		{
			name:    "bad toml",
			file:    `todo_file = `,
			wantErr: "loading project config file",
		},
		{
			name:    "unknown action",
			file:    "[keys]\nfly = [\"f\"]",
			wantErr: "unknown action",
		},
		{
			name:    "empty key list",
			file:    "[keys]\nsave = []",
			wantErr: "no keys given",
		},
		{
			name:    "conflicting keys",
			file:    "[keys]\nsave = [\"q\"]",
			wantErr: "bound to both",
		},
		{
			name:    "bad log level",
			args:    []string{"--log-level", "loud"},
			wantErr: "log_level",
		},
		{
			name:    "bad log format",
			env:     map[string]string{"CHECKLIST_LOG_FORMAT": "xml"},
			wantErr: "log_format",
		},
		{
			name:    "bad poll interval env",
			env:     map[string]string{"CHECKLIST_POLL_INTERVAL_MS": "soon"},
			wantErr: "CHECKLIST_POLL_INTERVAL_MS",
		},
		{
			name:    "unknown flag",
			args:    []string{"--colour"},
			wantErr: "parsing flags",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			if tt.file != "" {
				writeFile(t, "checklist.toml", tt.file)
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(newFlagSet(), tt.args)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("err = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestPollIntervalFallback(t *testing.T) {
	isolate(t)

	cfg, err := Load(newFlagSet(), []string{"--poll-interval", "0"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PollIntervalMs != DefaultPollIntervalMs {
		t.Errorf("PollIntervalMs: got %d, want %d", cfg.PollIntervalMs, DefaultPollIntervalMs)
	}
	if got := (&Config{PollIntervalMs: -5}).PollInterval(); got != 100*time.Millisecond {
		t.Errorf("PollInterval: got %v, want 100ms", got)
	}
}

func TestPositionalArgsSurviveFlags(t *testing.T) {
	isolate(t)
	fs := newFlagSet()

	if _, err := Load(fs, []string{"notes.md", "--log-level", "error"}); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := fs.Args(); len(got) != 1 || got[0] != "notes.md" {
		t.Errorf("Args: got %v, want [notes.md]", got)
	}
}

func TestLogDirExpansion(t *testing.T) {
	home, _ := isolate(t)
	t.Setenv("CHECKLIST_LOG_DIR", "~/logs")

	cfg, err := Load(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if want := filepath.Join(home, "logs"); cfg.LogDir != want {
		t.Errorf("LogDir: got %q, want %q", cfg.LogDir, want)
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("CHECKLIST_TEST_DIR", "/var/tmp")

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", home},
		{"~/x/y", filepath.Join(home, "x", "y")},
		{"$CHECKLIST_TEST_DIR/logs", "/var/tmp/logs"},
		{"relative/dir", "relative/dir"},
		{"~user/dir", "~user/dir"},
	}
	for _, tt := range tests {
		if got := expandPath(tt.in); got != tt.want {
			t.Errorf("expandPath(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBoolFromString(t *testing.T) {
	for _, v := range []string{"1", "true", "TRUE", "yes", "on", " y "} {
		if !boolFromString(v) {
			t.Errorf("boolFromString(%q) = false", v)
		}
	}
	for _, v := range []string{"0", "false", "no", "off", ""} {
		if boolFromString(v) {
			t.Errorf("boolFromString(%q) = true", v)
		}
	}
}

func TestExampleConfigLoads(t *testing.T) {
	isolate(t)
	writeFile(t, "checklist.toml", ExampleConfig())

	var cfg Config
	md, err := toml.Decode(ExampleConfig(), &cfg)
	if err != nil {
		t.Fatalf("decode example: %v", err)
	}
	if len(md.Undecoded()) != 0 {
		t.Fatalf("example has unknown keys: %v", md.Undecoded())
	}
	if _, err := Load(newFlagSet(), nil); err != nil {
		t.Fatalf("Load with example config: %v", err)
	}
}
