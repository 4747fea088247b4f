package output

import (
	"context"
	"fmt"
	"io"
	"os"
)

// ConsoleOutputRepository prints reports to a writer, stdout by default.
type ConsoleOutputRepository struct {
	writer io.Writer
}

// NewConsoleOutputRepository creates a console output writing to stdout.
func NewConsoleOutputRepository() *ConsoleOutputRepository {
	return &ConsoleOutputRepository{writer: os.Stdout}
}

// NewConsoleOutputRepositoryWithWriter creates a console output writing to w.
func NewConsoleOutputRepositoryWithWriter(w io.Writer) *ConsoleOutputRepository {
	return &ConsoleOutputRepository{writer: w}
}

// Write prints content; the name is ignored.
func (o *ConsoleOutputRepository) Write(_ context.Context, _ string, content string) error {
	if _, err := fmt.Fprintln(o.writer, content); err != nil {
		return fmt.Errorf("failed to print report: %w", err)
	}
	return nil
}
