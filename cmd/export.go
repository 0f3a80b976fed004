package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/nibzard/checklist-go/internal/config"
	"github.com/nibzard/checklist-go/internal/todo"
)

// exportCommand prints the checklist as schema-validated JSON.
func exportCommand(ctx context.Context, cfg *config.Config, args []string, out streams) error {
	fs := pflag.NewFlagSet("checklist export", pflag.ContinueOnError)
	output := fs.StringP("output", "o", "", "Write to a file instead of stdout")
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

	export := todo.NewExport(target, file.Tasks)
	if err := export.Validate().Err(); err != nil {
		return fmt.Errorf("export failed validation: %w", err)
	}
	data, err := export.Marshal()
	if err != nil {
		return fmt.Errorf("encoding export: %w", err)
	}

	if *output == "" {
		_, err = out.stdout.Write(data)
		return err
	}
	if err := os.WriteFile(*output, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", *output, err)
	}
	return nil
}
