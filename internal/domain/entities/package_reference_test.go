//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/pkgversion/internal/domain/entities"
)

func TestParsePackageReference(t *testing.T) {
	t.Parallel()

	t.Run("should extract name and version from a self-closing declaration", func(t *testing.T) {
		t.Parallel()

		// given
		line := `    <PackageReference Include="Newtonsoft.Json" Version="13.0.3" />`

		// when
		ref, ok := entities.ParsePackageReference(line)

		// then
		assert.True(t, ok)
		assert.Equal(t, entities.PackageReference{PackageName: "Newtonsoft.Json", Version: "13.0.3"}, ref)
	})

	tests := []struct {
		name    string
		line    string
		pkg     string
		version string
	}{
		{
			name:    "should accept version before include",
			line:    `<PackageReference Version="1.2.3" Include="Foo" />`,
			pkg:     "Foo",
			version: "1.2.3",
		},
		{
			name:    "should tolerate blanks around the equals sign",
			line:    "\t<PackageReference   Include = \"Foo\"\tVersion =  \"1.2.3\"/>",
			pkg:     "Foo",
			version: "1.2.3",
		},
		{
			name:    "should accept single quoted attributes",
			line:    `<PackageReference Include='Foo' Version='2.0.0-beta.1' />`,
			pkg:     "Foo",
			version: "2.0.0-beta.1",
		},
		{
			name:    "should accept an element with a closing tag",
			line:    `<PackageReference Include="Foo" Version="1.0.0"></PackageReference>`,
			pkg:     "Foo",
			version: "1.0.0",
		},
		{
			name:    "should ignore extra attributes",
			line:    `<PackageReference Include="Foo" PrivateAssets="all" Version="[1.0,2.0)" />`,
			pkg:     "Foo",
			version: "[1.0,2.0)",
		},
		{
			name:    "should match attribute names regardless of case",
			line:    `<PackageReference include="Foo" version="3.1.4" />`,
			pkg:     "Foo",
			version: "3.1.4",
		},
		{
			name:    "should keep a version that is not semver as is",
			line:    `<PackageReference Include="Foo" Version="$(FooVersion)" />`,
			pkg:     "Foo",
			version: "$(FooVersion)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// given
			line := tt.line

			// when
			ref, ok := entities.ParsePackageReference(line)

			// then
			assert.True(t, ok)
			assert.Equal(t, tt.pkg, ref.PackageName)
			assert.Equal(t, tt.version, ref.Version)
		})
	}

	noMatches := []struct {
		name string
		line string
	}{
		{name: "should not match an empty line", line: ""},
		{name: "should not match an unrelated element", line: `<TargetFramework>net8.0</TargetFramework>`},
		{name: "should not match a project reference", line: `<ProjectReference Include="..\Lib\Lib.csproj" />`},
		{name: "should not match a commented out declaration", line: `<!-- <PackageReference Include="Foo" Version="1.0.0" /> -->`},
		{name: "should not match keywords in free text", line: `Upgrade PackageReference Include="Foo" Version="1.0.0" later`},
		{name: "should not match a declaration without version", line: `<PackageReference Include="Foo" />`},
		{name: "should not match a declaration without name", line: `<PackageReference Version="1.0.0" />`},
		{name: "should not match an empty version", line: `<PackageReference Include="Foo" Version="" />`},
		{name: "should not match an empty name", line: `<PackageReference Include="  " Version="1.0.0" />`},
		{name: "should not match an element with a longer name", line: `<PackageReferences Include="Foo" Version="1.0.0" />`},
		{name: "should not match an update item", line: `<PackageReference Update="Foo" Version="1.0.0" />`},
		{name: "should not match a multi-line declaration head", line: `<PackageReference Include="Foo">`},
	}

	for _, tt := range noMatches {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// given
			line := tt.line

			// when
			ref, ok := entities.ParsePackageReference(line)

			// then
			assert.False(t, ok)
			assert.Equal(t, entities.PackageReference{}, ref)
		})
	}
}
