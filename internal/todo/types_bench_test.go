package todo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func benchTasks(n int) []Task {
	tasks := make([]Task, n)
	for i := range tasks {
		tasks[i] = Task{
			Description: fmt.Sprintf("Task %d with some words", i),
			Level:       i % 4,
			Completed:   i%3 == 0,
		}
	}
	return tasks
}

// BenchmarkLoad benchmarks checklist loading and parsing.
func BenchmarkLoad(b *testing.B) {
	content := "# Notes\n- [ ] Task 1\n  - [x] Task 2\n    - [ ] Task 3\n"
	todoPath := filepath.Join(b.TempDir(), "TODO.md")
	if err := os.WriteFile(todoPath, []byte(content), 0644); err != nil {
		b.Fatalf("Failed to create test file: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Load(todoPath); err != nil {
			b.Fatalf("Load failed: %v", err)
		}
	}
}

// BenchmarkLoadLarge benchmarks loading a checklist with 1000 tasks.
func BenchmarkLoadLarge(b *testing.B) {
	todoPath := filepath.Join(b.TempDir(), "TODO.md")
	if err := os.WriteFile(todoPath, []byte(Serialize(benchTasks(1000))), 0644); err != nil {
		b.Fatalf("Failed to create test file: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Load(todoPath); err != nil {
			b.Fatalf("Load failed: %v", err)
		}
	}
}

func BenchmarkSerialize(b *testing.B) {
	tasks := benchTasks(1000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Serialize(tasks)
	}
}

func BenchmarkParse(b *testing.B) {
	lines := strings.Split(strings.TrimSuffix(Serialize(benchTasks(1000)), "\n"), "\n")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Parse(lines)
	}
}
