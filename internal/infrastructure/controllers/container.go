package controllers

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/pkgversion/internal/domain/entities"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(NewAuditController); err != nil {
		return err
	}
	if err := container.Provide(NewControllers); err != nil {
		return err
	}

	return nil
}

// NewControllers aggregates all controllers into a slice for the AppInternal.
func NewControllers(
	auditController *AuditController,
) *[]entities.Controller {
	return &[]entities.Controller{
		auditController,
	}
}
