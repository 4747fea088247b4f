//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/pkgversion/internal/domain/repositories"
)

// SpyOutputRepository implements repositories.OutputRepository and records every write.
type SpyOutputRepository struct {
	WriteErr error
	Writes   []OutputWrite
}

// OutputWrite records a single invocation of Write.
type OutputWrite struct {
	Name    string
	Content string
}

var _ repositories.OutputRepository = (*SpyOutputRepository)(nil)

func (o *SpyOutputRepository) Write(_ context.Context, name, content string) error {
	o.Writes = append(o.Writes, OutputWrite{Name: name, Content: content})
	return o.WriteErr
}
