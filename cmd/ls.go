package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/nibzard/checklist-go/internal/config"
	"github.com/nibzard/checklist-go/internal/todo"
)

// lsCommand prints the checklist in file form with a summary line.
func lsCommand(ctx context.Context, cfg *config.Config, args []string, out streams) error {
	fs := pflag.NewFlagSet("checklist ls", pflag.ContinueOnError)
	pending := fs.Bool("pending", false, "Only show uncompleted tasks")
	explicit, err := parseSubcommand(fs, args, out)
	if err != nil {
		return err
	}

	target, err := targetFile(ctx, cfg, explicit)
	if err != nil {
		return err
	}
	file, err := todo.Load(target)
	if err != nil {
		return fmt.Errorf("loading checklist: %w", err)
	}

	tasks := file.Tasks
	if *pending {
		tasks = pendingTasks(tasks)
	}

	if len(tasks) == 0 {
		fmt.Fprintln(out.stdout, "No tasks.")
	} else {
		fmt.Fprint(out.stdout, todo.Serialize(tasks))
	}
	fmt.Fprintf(out.stdout, "\n%d tasks, %d uncompleted\n", len(file.Tasks), todo.Uncompleted(file.Tasks))
	return nil
}

// pendingTasks keeps the uncompleted tasks, in order.
func pendingTasks(tasks []todo.Task) []todo.Task {
	var out []todo.Task
	for _, t := range tasks {
		if !t.Completed {
			out = append(out, t)
		}
	}
	return out
}
