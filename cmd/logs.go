package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/nibzard/checklist-go/internal/config"
	"github.com/nibzard/checklist-go/internal/logging"
)

// logsCommand prints the latest run log of this project.
func logsCommand(ctx context.Context, cfg *config.Config, args []string, out streams) error {
	fs := pflag.NewFlagSet("checklist logs", pflag.ContinueOnError)
	fs.SetOutput(out.stderr)
	follow := fs.BoolP("follow", "f", false, "Follow the log (like tail -f)")
	n := fs.IntP("lines", "n", 0, "Number of lines to show (0 = all)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	if cfg.LogDir == "" {
		fmt.Fprintln(out.stdout, "Logging is disabled. Set log_dir or --log-dir to enable it.")
		return nil
	}

	logDir, err := logging.FindLogDir(cfg.LogDir, projectRoot(ctx, cfg))
	if err != nil {
		return fmt.Errorf("finding log directory: %w", err)
	}
	logPath, err := logging.FindLatestLog(logDir)
	if err != nil {
		return fmt.Errorf("finding latest log: %w", err)
	}
	if logPath == "" {
		fmt.Fprintln(out.stdout, "No log files found.")
		return nil
	}

	fmt.Fprintf(out.stdout, "Tailing: %s\n", logPath)
	if *follow {
		fmt.Fprintln(out.stdout, "(Ctrl+C to stop)")
	}
	fmt.Fprintln(out.stdout)

	return logging.TailLog(ctx, out.stdout, logPath, *n, *follow)
}
