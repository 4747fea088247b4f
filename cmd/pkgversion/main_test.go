//go:build unit

package main //nolint:testpackage // tests unexported functions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/pkgversion/internal"
	"github.com/rios0rios0/pkgversion/internal/domain/entities"
	"github.com/rios0rios0/pkgversion/internal/infrastructure/controllers"
	"github.com/rios0rios0/pkgversion/test/domain/commanddoubles"
)

func TestBuildRootCommand(t *testing.T) {
	t.Parallel()

	t.Run("should expose the audit flags on the root command", func(t *testing.T) {
		t.Parallel()

		// given
		controller := controllers.NewAuditController(&commanddoubles.StubAuditCommand{})

		// when
		cmd := buildRootCommand(controller)

		// then
		for _, name := range []string{
			"base-url", "project", "package", "output-kind", "ignore-repo-prefix",
			"output-file-name", "file-suffix", "provider",
		} {
			assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag %s", name)
		}
		for _, name := range []string{"config", "token", "verbose"} {
			assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "missing persistent flag %s", name)
		}
	})

	t.Run("should mount every controller as a subcommand", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubAuditCommand{}
		controller := controllers.NewAuditController(stub)
		root := buildRootCommand(controller)
		appContext := internal.NewAppInternal(&[]entities.Controller{controller})

		// when
		addSubcommands(root, appContext)

		// then
		sub, _, err := root.Find([]string{"audit"})
		require.NoError(t, err)
		assert.Equal(t, "audit", sub.Name())
		assert.NotNil(t, sub.Flags().Lookup("package"))
	})
}
