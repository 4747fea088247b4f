package commands

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all command providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(NewAuditCommand); err != nil {
		return err
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *AuditCommand) Audit {
		return impl
	}); err != nil {
		return err
	}

	return nil
}
