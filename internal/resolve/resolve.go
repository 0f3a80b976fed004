// Package resolve decides which checklist file to open.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrNoRepository is returned when no path was given and the working
// directory is not inside a git work tree.
var ErrNoRepository = errors.New("no git repository found")

// Target returns the file to edit. An explicit path wins. Otherwise the
// git root of workDir is searched, then each of its parents, for a file
// named todoFile; if none exists the result is <root>/<todoFile>.
func Target(ctx context.Context, explicit, workDir, todoFile string) (string, error) {
	if strings.TrimSpace(explicit) != "" {
		return explicit, nil
	}

	root, err := GitRoot(ctx, workDir)
	if err != nil {
		return "", err
	}
	if found, ok := FindUp(root, todoFile); ok {
		return found, nil
	}
	return filepath.Join(root, todoFile), nil
}

// GitRoot returns the top of the git work tree containing dir. It asks
// git when it is installed and otherwise looks for a .git entry.
func GitRoot(ctx context.Context, dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}

	if _, err := exec.LookPath("git"); err == nil {
		cmd := exec.CommandContext(ctx, "git", "-C", abs, "rev-parse", "--show-toplevel")
		if output, err := cmd.Output(); err == nil {
			if root := strings.TrimSpace(string(output)); root != "" {
				return filepath.FromSlash(root), nil
			}
		}
	}

	if root, ok := findGitDir(abs); ok {
		return root, nil
	}
	return "", ErrNoRepository
}

// findGitDir walks up from dir to the first directory holding a .git
// entry. Worktrees and submodules use a .git file, so any entry counts.
func findGitDir(dir string) (string, bool) {
	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// FindUp looks for name in start and then each parent directory. Only
// regular files match.
func FindUp(start, name string) (string, bool) {
	dir := filepath.Clean(start)
	for {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
