// Package cmd implements the CLI command structure for checklist.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/nibzard/checklist-go/internal/config"
	"github.com/nibzard/checklist-go/internal/logging"
	"github.com/nibzard/checklist-go/internal/resolve"
)

// Version is set via ldflags at build time.
var Version = "dev"

// streams holds where commands write.
type streams struct {
	stdout io.Writer
	stderr io.Writer
}

// Run executes the checklist CLI.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, streams{stdout: os.Stdout, stderr: os.Stderr})
}

func run(ctx context.Context, args []string, out streams) error {
	// Global flags stop at the first positional argument so each
	// subcommand parses its own.
	fs := pflag.NewFlagSet("checklist", pflag.ContinueOnError)
	fs.SetInterspersed(false)
	fs.SetOutput(out.stderr)
	fs.Usage = func() {
		printUsage(fs, out.stderr)
	}
	help := fs.BoolP("help", "h", false, "Show help")
	showVersion := fs.BoolP("version", "v", false, "Show version")

	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := cws.Config
	if *help {
		printUsage(fs, out.stdout)
		return nil
	}
	if *showVersion {
		return versionCommand(out)
	}

	// No subcommand opens the editor; an unknown one is taken as the
	// file to edit.
	subcommand := "edit"
	remaining := fs.Args()
	if len(remaining) > 0 {
		subcommand = remaining[0]
		remaining = remaining[1:]
	}

	switch subcommand {
	case "edit":
		return editCommand(ctx, cfg, remaining, out)
	case "ls":
		return lsCommand(ctx, cfg, remaining, out)
	case "export":
		return exportCommand(ctx, cfg, remaining, out)
	case "doctor":
		return doctorCommand(ctx, cws, remaining, out)
	case "logs":
		return logsCommand(ctx, cfg, remaining, out)
	case "version":
		return versionCommand(out)
	case "help":
		if len(remaining) > 0 && remaining[0] == "config" {
			fmt.Fprint(out.stdout, config.ExampleConfig())
			return nil
		}
		printUsage(fs, out.stdout)
		return nil
	default:
		return editCommand(ctx, cfg, fs.Args(), out)
	}
}

// versionCommand prints version information.
func versionCommand(out streams) error {
	fmt.Fprintf(out.stdout, "checklist version %s\n", Version)
	return nil
}

// parseSubcommand parses args with fs and returns the optional single
// file argument.
func parseSubcommand(fs *pflag.FlagSet, args []string, out streams) (string, error) {
	fs.SetOutput(out.stderr)
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	remaining := fs.Args()
	if len(remaining) > 1 {
		return "", fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	if len(remaining) == 1 {
		return remaining[0], nil
	}
	return "", nil
}

// targetFile resolves the checklist to operate on.
func targetFile(ctx context.Context, cfg *config.Config, explicit string) (string, error) {
	path, err := resolve.Target(ctx, explicit, cfg.ProjectRoot, cfg.TodoFile)
	if errors.Is(err, resolve.ErrNoRepository) {
		return "", fmt.Errorf("%w\n- specify a checklist file path\n- move to a git repository folder", err)
	}
	return path, err
}

// projectRoot is the git root of the working directory, or the working
// directory itself outside a repository.
func projectRoot(ctx context.Context, cfg *config.Config) string {
	if root, err := resolve.GitRoot(ctx, cfg.ProjectRoot); err == nil {
		return root
	}
	return cfg.ProjectRoot
}

// newRunLogger opens the run log described by cfg.
func newRunLogger(ctx context.Context, cfg *config.Config) (*logging.RunLogger, error) {
	return logging.New(logging.Options{
		Dir:         cfg.LogDir,
		ProjectRoot: projectRoot(ctx, cfg),
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		Timestamps:  cfg.LogTimestamps,
		Caller:      cfg.LogCaller,
	})
}

// printUsage prints the usage message.
func printUsage(fs *pflag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "checklist - edit markdown checklists in the terminal")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  checklist [options] [command] [file]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Without a file, the nearest TODO.md from the git root upwards is used.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  edit [file]         Open the interactive editor (default command)")
	fmt.Fprintln(w, "  ls [file]           Print the checklist and a summary")
	fmt.Fprintln(w, "  export [file]       Print the checklist as JSON")
	fmt.Fprintln(w, "  doctor [file]       Check configuration and the checklist file")
	fmt.Fprintln(w, "  logs                Show the latest run log")
	fmt.Fprintln(w, "  version             Show version information")
	fmt.Fprintln(w, "  help [config]       Show this help, or an example config file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Ls Options:")
	fmt.Fprintln(w, "      --pending       Only show uncompleted tasks")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Export Options:")
	fmt.Fprintln(w, "  -o, --output string Write to a file instead of stdout")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Doctor Options:")
	fmt.Fprintln(w, "  -V, --verbose       Show config sources and every task")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Logs Options:")
	fmt.Fprintln(w, "  -f, --follow        Follow the log (like tail -f)")
	fmt.Fprintln(w, "  -n, --lines int     Number of lines to show (0 = all)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Editor Keys:")
	fmt.Fprintln(w, "  j/k, arrows         Move selection")
	fmt.Fprintln(w, "  J/K, ctrl+arrows    Move task")
	fmt.Fprintln(w, "  space               Toggle completed")
	fmt.Fprintln(w, "  i / e / d           Insert / edit / delete task")
	fmt.Fprintln(w, "  tab / shift+tab     Indent / outdent")
	fmt.Fprintln(w, "  g/G, home/end       Jump to first / last task")
	fmt.Fprintln(w, "  s                   Save and quit")
	fmt.Fprintln(w, "  q                   Quit without saving")
}
