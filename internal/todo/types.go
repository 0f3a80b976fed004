// Package todo parses and writes checklist files.
package todo

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// IndentUnit is the indentation written once per task level.
const IndentUnit = "  "

// lineRe matches a checklist line. The indent is either empty or at least
// one full unit wide; a single leading space does not form a checklist line.
var lineRe = regexp.MustCompile(`^(|  +)- \[([ xX])\] (.*)$`)

// Task is a single checklist entry.
type Task struct {
	Description string `json:"description"`
	Level       int    `json:"level"`
	Completed   bool   `json:"completed"`
}

// Checkbox returns the checkbox mark written for the task.
func (t Task) Checkbox() string {
	if t.Completed {
		return "x"
	}
	return " "
}

// String returns the task in checklist line form, without a newline.
func (t Task) String() string {
	return fmt.Sprintf("%s- [%s] %s", strings.Repeat(IndentUnit, max(t.Level, 0)), t.Checkbox(), t.Description)
}

// File is a loaded checklist file.
type File struct {
	Path  string
	Tasks []Task
	// Lines counts every line read from disk.
	Lines int
	// Skipped counts lines that were not checklist lines.
	Skipped int
	// Missing is true when the file did not exist at load time.
	Missing bool
}

// ParseLine parses one line. It reports false for lines outside the
// checklist grammar.
func ParseLine(line string) (Task, bool) {
	m := lineRe.FindStringSubmatch(line)
	if m == nil {
		return Task{}, false
	}
	return Task{
		Description: m[3],
		Level:       len(m[1]) / len(IndentUnit),
		Completed:   strings.EqualFold(m[2], "x"),
	}, true
}

// Parse converts lines into tasks, skipping non-checklist lines.
func Parse(lines []string) []Task {
	tasks := make([]Task, 0, len(lines))
	for _, line := range lines {
		if task, ok := ParseLine(line); ok {
			tasks = append(tasks, task)
		}
	}
	return tasks
}

// Read parses a checklist from r. Lines of any length are accepted.
func Read(r io.Reader) (*File, error) {
	f := &File{Tasks: []Task{}}
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read checklist: %w", err)
		}
		if line != "" {
			f.Lines++
			line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
			if task, ok := ParseLine(line); ok {
				f.Tasks = append(f.Tasks, task)
			} else {
				f.Skipped++
			}
		}
		if err != nil {
			return f, nil
		}
	}
}

// Serialize renders tasks in checklist form, one line per task.
func Serialize(tasks []Task) string {
	var b strings.Builder
	for _, task := range tasks {
		b.WriteString(task.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Load reads and parses a checklist file from path. A missing file yields
// an empty list with Missing set.
func Load(path string) (*File, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &File{Path: path, Tasks: []Task{}, Missing: true}, nil
		}
		return nil, fmt.Errorf("open checklist file: %w", err)
	}
	defer file.Close()

	f, err := Read(file)
	if err != nil {
		return nil, err
	}
	f.Path = path
	return f, nil
}

// Save writes tasks to path, replacing the file atomically.
func Save(path string, tasks []Task) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.WriteString(tmp, Serialize(tasks)); err != nil {
		tmp.Close()
		return fmt.Errorf("write checklist file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close checklist file: %w", err)
	}

	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("chmod checklist file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replace checklist file: %w", err)
	}
	return nil
}

// Uncompleted counts the open tasks.
func Uncompleted(tasks []Task) int {
	n := 0
	for _, task := range tasks {
		if !task.Completed {
			n++
		}
	}
	return n
}
