package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/nibzard/checklist-go/internal/config"
	"github.com/nibzard/checklist-go/internal/todo"
	"github.com/nibzard/checklist-go/internal/ui"
)

// editCommand opens the interactive editor and saves on request.
func editCommand(ctx context.Context, cfg *config.Config, args []string, out streams) error {
	fs := pflag.NewFlagSet("checklist edit", pflag.ContinueOnError)
	explicit, err := parseSubcommand(fs, args, out)
	if err != nil {
		return err
	}

	target, err := targetFile(ctx, cfg, explicit)
	if err != nil {
		return err
	}

	rl, err := newRunLogger(ctx, cfg)
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	defer rl.Close()
	logger := rl.Logger

	// An unreadable file opens as an empty list.
	tasks := []todo.Task{}
	file, err := todo.Load(target)
	switch {
	case err != nil:
		logger.Warn("could not read checklist", "path", target, "err", err)
		fmt.Fprintf(out.stderr, "Warning: could not read %s: %v\nStarting with an empty list; saving will replace the file.\n", target, err)
	case file.Missing:
		logger.Info("checklist does not exist yet", "path", target)
	default:
		tasks = file.Tasks
		logger.Info("loaded checklist", "path", target, "tasks", len(tasks), "skipped", file.Skipped)
	}

	res, err := ui.RunEditor(ctx, cfg, tasks, logger)
	if err != nil {
		return err
	}
	if !res.Save {
		logger.Info("quit without saving", "path", target)
		return nil
	}

	if err := todo.Save(target, res.Tasks); err != nil {
		return fmt.Errorf("saving %s: %w", target, err)
	}
	logger.Info("saved checklist", "path", target, "tasks", len(res.Tasks))
	fmt.Fprintf(out.stdout, "Saved tasks to file: %s\n", target)
	return nil
}
