//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/pkgversion/internal/domain/commands"
	"github.com/rios0rios0/pkgversion/internal/domain/entities"
)

// StubAuditCommand is a stub implementation of commands.Audit.
type StubAuditCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	LastSettings     *entities.Settings
}

var _ commands.Audit = (*StubAuditCommand)(nil)

func (s *StubAuditCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
) error {
	s.ExecuteCallCount++
	s.LastSettings = settings
	return s.ExecuteErr
}
