package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// Task is a keyed unit of work whose only output is an error
type Task struct {
	Key string
	Fn  func(ctx context.Context) error
}

// Execute runs the task
func (t *Task) Execute(ctx context.Context) Result {
	return &TaskResult{Key: t.Key, Error: t.Fn(ctx)}
}

// TaskResult is the outcome of a Task
type TaskResult struct {
	Key   string
	Error error
}

// GetError returns the error from the task result
func (r *TaskResult) GetError() error {
	return r.Error
}

// RunTasks executes tasks on a pool of the given size and returns one
// result per task that was started, in completion order
func RunTasks(ctx context.Context, concurrency int, tasks []Task) []*TaskResult {
	if len(tasks) == 0 {
		return []*TaskResult{}
	}

	pool := NewPool(ctx, concurrency)
	pool.Start()

	for i := range tasks {
		if !pool.Submit(&tasks[i]) {
			break
		}
	}

	results := pool.Wait()

	taskResults := make([]*TaskResult, len(results))
	for i, result := range results {
		taskResults[i] = result.(*TaskResult)
	}
	return taskResults
}

// Failed returns the results that carry an error
func Failed(results []*TaskResult) []*TaskResult {
	var failed []*TaskResult
	for _, r := range results {
		if r.Error != nil {
			failed = append(failed, r)
		}
	}
	return failed
}

// ReadURLsFromFile reads URLs from a file (one per line)
func ReadURLsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var urls []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			urls = append(urls, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return urls, nil
}
