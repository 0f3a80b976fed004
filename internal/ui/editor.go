package ui

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/nibzard/checklist-go/internal/config"
	"github.com/nibzard/checklist-go/internal/dispatch"
	"github.com/nibzard/checklist-go/internal/store"
	"github.com/nibzard/checklist-go/internal/todo"
)

// Result is the outcome of an interactive session.
type Result struct {
	// Save is true when the session ended with the save key.
	Save bool
	// Tasks is the edited list.
	Tasks []todo.Task
}

// RunEditor opens the interactive editor on tasks and blocks until the
// user saves or quits.
func RunEditor(ctx context.Context, cfg *config.Config, tasks []todo.Task, logger *log.Logger) (Result, error) {
	if !IsTTY(os.Stdin) || !IsTTY(os.Stdout) {
		return Result{}, errors.New("the editor requires a TTY")
	}
	keys, err := cfg.KeyMap()
	if err != nil {
		return Result{}, err
	}

	s := store.New(tasks)
	m := dispatch.NewMachine(s, dispatch.WithKeyMap(keys), dispatch.WithLogger(logger))

	t := NewTerminal(ctx, cfg.ShowHelp)
	t.Start()
	defer func() {
		if r := recover(); r != nil {
			t.Kill()
			panic(r)
		}
	}()

	save, runErr := dispatch.Run(ctx, m, t, t, dispatch.WithPollInterval(cfg.PollInterval()))
	closeErr := t.Close()
	if runErr != nil {
		return Result{}, fmt.Errorf("editor: %w", runErr)
	}
	if closeErr != nil {
		return Result{}, fmt.Errorf("terminal: %w", closeErr)
	}
	return Result{Save: save, Tasks: s.Tasks()}, nil
}
