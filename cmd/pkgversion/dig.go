package main

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/pkgversion/internal"
	"github.com/rios0rios0/pkgversion/internal/infrastructure/controllers"
)

func injectAppContext() *internal.AppInternal {
	container := dig.New()

	if err := internal.RegisterProviders(container); err != nil {
		panic(err)
	}

	var appInternal *internal.AppInternal
	if err := container.Invoke(func(ai *internal.AppInternal) {
		appInternal = ai
	}); err != nil {
		panic(err)
	}

	return appInternal
}

func injectAuditController() *controllers.AuditController {
	container := dig.New()

	if err := internal.RegisterProviders(container); err != nil {
		panic(err)
	}

	var auditController *controllers.AuditController
	if err := container.Invoke(func(ac *controllers.AuditController) {
		auditController = ac
	}); err != nil {
		panic(err)
	}

	return auditController
}
