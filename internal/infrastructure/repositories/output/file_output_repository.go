package output

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	logger "github.com/sirupsen/logrus"
)

const reportFileMode = 0o644

// FileOutputRepository persists reports as files under a directory.
type FileOutputRepository struct {
	dir string
}

// NewFileOutputRepository creates a file output rooted at the working directory.
func NewFileOutputRepository() *FileOutputRepository {
	return &FileOutputRepository{dir: "."}
}

// NewFileOutputRepositoryInDir creates a file output rooted at dir.
func NewFileOutputRepositoryInDir(dir string) *FileOutputRepository {
	return &FileOutputRepository{dir: dir}
}

// Write stores content in the file called name, replacing any previous report.
func (o *FileOutputRepository) Write(_ context.Context, name, content string) error {
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(o.dir, name)
	}

	if err := os.WriteFile(path, []byte(content), reportFileMode); err != nil {
		return fmt.Errorf("failed to write report to %q: %w", path, err)
	}

	logger.Infof("Report written to %s", path)
	return nil
}
