package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"slices"

	"github.com/spf13/pflag"

	"github.com/nibzard/checklist-go/internal/config"
	"github.com/nibzard/checklist-go/internal/logging"
	"github.com/nibzard/checklist-go/internal/todo"
)

// doctorCommand checks configuration, git, and the checklist file.
func doctorCommand(ctx context.Context, cws *config.ConfigWithSources, args []string, out streams) error {
	fs := pflag.NewFlagSet("checklist doctor", pflag.ContinueOnError)
	verbose := fs.BoolP("verbose", "V", false, "Verbose output")
	explicit, err := parseSubcommand(fs, args, out)
	if err != nil {
		return err
	}
	cfg := cws.Config
	w := out.stdout

	fmt.Fprintln(w, "Checklist Doctor")
	fmt.Fprintln(w, "================")
	fmt.Fprintln(w)

	allOK := true

	fmt.Fprintf(w, "Project root: %s\n", cfg.ProjectRoot)
	if _, err := os.Stat(cfg.ProjectRoot); err != nil {
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		allOK = false
	} else {
		fmt.Fprintln(w, "  ✅ OK")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Config:")
	if file := cws.ConfigFile(); file != "" {
		fmt.Fprintf(w, "  ✅ File: %s\n", file)
	} else {
		fmt.Fprintln(w, "  ✅ File: (none, using defaults)")
	}
	if _, err := cfg.KeyMap(); err != nil {
		fmt.Fprintf(w, "  ❌ Keys: %v\n", err)
		allOK = false
	} else {
		fmt.Fprintln(w, "  ✅ Keys: OK")
	}
	if *verbose {
		fields := make([]string, 0, len(cws.Sources))
		for field := range cws.Sources {
			fields = append(fields, field)
		}
		slices.Sort(fields)
		for _, field := range fields {
			fmt.Fprintf(w, "  %s: %s\n", field, cws.Sources[field])
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Dependencies:")
	if path, err := exec.LookPath("git"); err != nil {
		fmt.Fprintln(w, "  ⚠️  git (optional): not found")
	} else {
		fmt.Fprintf(w, "  ✅ git (optional): %s\n", path)
	}
	fmt.Fprintln(w)

	target, err := targetFile(ctx, cfg, explicit)
	if err != nil {
		fmt.Fprintln(w, "Checklist file:")
		fmt.Fprintf(w, "  ❌ %v\n", err)
		allOK = false
	} else if !checkChecklist(w, target, *verbose) {
		allOK = false
	}
	fmt.Fprintln(w)

	if cfg.LogDir == "" {
		fmt.Fprintln(w, "Log directory: (disabled)")
	} else {
		logDir, err := logging.FindLogDir(cfg.LogDir, projectRoot(ctx, cfg))
		fmt.Fprintf(w, "Log directory: %s\n", logDir)
		switch {
		case err != nil:
			fmt.Fprintf(w, "  ❌ Error: %v\n", err)
			allOK = false
		default:
			if _, err := os.Stat(logDir); os.IsNotExist(err) {
				fmt.Fprintln(w, "  ⚠️  Not found (will be created on run)")
			} else if err != nil {
				fmt.Fprintf(w, "  ❌ Error: %v\n", err)
				allOK = false
			} else {
				fmt.Fprintln(w, "  ✅ OK")
			}
		}
	}
	fmt.Fprintln(w)

	if allOK {
		fmt.Fprintln(w, "✅ All checks passed!")
		return nil
	}
	fmt.Fprintln(w, "⚠️  Some checks failed.")
	return fmt.Errorf("doctor checks failed")
}

// checkChecklist reports on the checklist file at path.
func checkChecklist(w io.Writer, path string, verbose bool) bool {
	fmt.Fprintf(w, "Checklist file: %s\n", path)
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(w, "  ⚠️  Not found (will be created on save)")
			return true
		}
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		return false
	}
	if info.IsDir() {
		fmt.Fprintln(w, "  ❌ Error: path is a directory")
		return false
	}

	file, err := todo.Load(path)
	if err != nil {
		fmt.Fprintf(w, "  ❌ Load error: %v\n", err)
		return false
	}
	fmt.Fprintf(w, "  ✅ %d lines, %d tasks, %d uncompleted\n", file.Lines, len(file.Tasks), todo.Uncompleted(file.Tasks))
	if file.Skipped > 0 {
		fmt.Fprintf(w, "  ⚠️  %d lines are not checklist lines and will be dropped on save\n", file.Skipped)
	}

	result := todo.NewExport(path, file.Tasks).Validate()
	if !result.Valid {
		fmt.Fprintln(w, "  ❌ Validation failed:")
		for _, e := range result.Errors {
			fmt.Fprintf(w, "     - %v\n", e)
		}
		return false
	}
	fmt.Fprintln(w, "  ✅ Valid")

	if verbose {
		for _, t := range file.Tasks {
			fmt.Fprintf(w, "    %s\n", t)
		}
	}
	return true
}
