//go:build unit

package entities_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/pkgversion/internal/domain/entities"
)

func validSettings() *entities.Settings {
	return &entities.Settings{
		ProviderType: "bitbucket",
		BaseURL:      "git.example.com",
		Project:      "CORE",
		Package:      "Foo",
		Token:        "secret",
		OutputKind:   entities.OutputConsole,
	}
}

func TestSettingsValidate(t *testing.T) {
	t.Parallel()

	t.Run("should accept complete settings", func(t *testing.T) {
		t.Parallel()

		// given
		settings := validSettings()

		// when
		err := settings.Validate()

		// then
		require.NoError(t, err)
	})

	t.Run("should accept a missing base URL for providers with a public instance", func(t *testing.T) {
		t.Parallel()

		for _, provider := range []string{"github", "gitlab"} {
			// given
			settings := &entities.Settings{ProviderType: provider, Project: "org", Package: "Foo", Token: "t"}
			settings.ApplyDefaults()

			// when
			err := settings.Validate()

			// then
			require.NoError(t, err, "provider %s", provider)
		}
	})

	tests := []struct {
		name    string
		mutate  func(s *entities.Settings)
		message string
	}{
		{
			name: "should require a base URL for Azure DevOps",
			mutate: func(s *entities.Settings) {
				s.ProviderType = "azuredevops"
				s.BaseURL = ""
			},
			message: "base_url",
		},
		{name: "should require a base URL", mutate: func(s *entities.Settings) { s.BaseURL = " " }, message: "base_url"},
		{name: "should require a project", mutate: func(s *entities.Settings) { s.Project = "" }, message: "project"},
		{name: "should require a package", mutate: func(s *entities.Settings) { s.Package = "" }, message: "package"},
		{name: "should require a token", mutate: func(s *entities.Settings) { s.Token = "" }, message: "token"},
		{
			name:    "should reject an unknown output kind",
			mutate:  func(s *entities.Settings) { s.OutputKind = "pdf" },
			message: "unknown output kind",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// given
			settings := validSettings()
			tt.mutate(settings)

			// when
			err := settings.Validate()

			// then
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestSettingsApplyDefaults(t *testing.T) {
	t.Run("should fill every optional value", func(t *testing.T) {
		// NOTE: cannot use t.Parallel() with t.Setenv()

		// given
		t.Setenv(entities.TokenEnvVar, "env-token")
		settings := &entities.Settings{}

		// when
		settings.ApplyDefaults()

		// then
		assert.Equal(t, entities.DefaultProviderType, settings.ProviderType)
		assert.Equal(t, entities.OutputConsole, settings.OutputKind)
		assert.Equal(t, entities.DefaultOutputFileName, settings.OutputFileName)
		assert.Equal(t, entities.DefaultFileSuffix, settings.FileSuffix)
		assert.Equal(t, "env-token", settings.Token)
	})

	t.Run("should keep values already set", func(t *testing.T) {
		// NOTE: cannot use t.Parallel() with t.Setenv()

		// given
		t.Setenv(entities.TokenEnvVar, "env-token")
		settings := &entities.Settings{Token: "flag-token", OutputKind: entities.OutputMd, FileSuffix: ".fsproj"}

		// when
		settings.ApplyDefaults()

		// then
		assert.Equal(t, "flag-token", settings.Token)
		assert.Equal(t, entities.OutputMd, settings.OutputKind)
		assert.Equal(t, ".fsproj", settings.FileSuffix)
	})
}

func TestNewSettings(t *testing.T) {
	t.Run("should load settings from a YAML file and expand the token", func(t *testing.T) {
		// NOTE: cannot use t.Parallel() with t.Setenv()

		// given
		t.Setenv("PKGVERSION_TEST_TOKEN", "from-env")
		path := filepath.Join(t.TempDir(), "pkgversion.yaml")
		content := `base_url: git.example.com
project: CORE
package: Newtonsoft.Json
token: ${PKGVERSION_TEST_TOKEN}
ignore_repo_prefix: archived-
output_kind: md
output_file_name: versions
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		// when
		settings, err := entities.NewSettings(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, "git.example.com", settings.BaseURL)
		assert.Equal(t, "CORE", settings.Project)
		assert.Equal(t, "Newtonsoft.Json", settings.Package)
		assert.Equal(t, "from-env", settings.Token)
		assert.Equal(t, "archived-", settings.IgnoreRepoPrefix)
		assert.Equal(t, entities.OutputMd, settings.OutputKind)
		assert.Equal(t, "versions", settings.OutputFileName)
	})

	t.Run("should fail for a missing file", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "missing.yaml")

		// when
		settings, err := entities.NewSettings(path)

		// then
		require.Error(t, err)
		assert.Nil(t, settings)
	})

	t.Run("should fail for invalid YAML", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "broken.yaml")
		require.NoError(t, os.WriteFile(path, []byte("project: [unclosed"), 0o600))

		// when
		settings, err := entities.NewSettings(path)

		// then
		require.Error(t, err)
		assert.Nil(t, settings)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})
}

//nolint:tparallel // some subtests use t.Setenv which is incompatible with t.Parallel on parent
func TestResolveToken(t *testing.T) {
	t.Run("should return inline token unchanged", func(t *testing.T) {
		t.Parallel()

		// given
		raw := "BBDC-abc123"

		// when
		result := entities.ResolveToken(raw)

		// then
		assert.Equal(t, "BBDC-abc123", result)
	})

	t.Run("should return empty for unset env var", func(t *testing.T) {
		t.Parallel()

		// given
		raw := "${DEFINITELY_NOT_SET_VAR_12345}"

		// when
		result := entities.ResolveToken(raw)

		// then
		assert.Empty(t, result)
	})

	t.Run("should read the token from a file path", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "token")
		require.NoError(t, os.WriteFile(path, []byte("  file-token\n"), 0o600))

		// when
		result := entities.ResolveToken(path)

		// then
		assert.Equal(t, "file-token", result)
	})
}
