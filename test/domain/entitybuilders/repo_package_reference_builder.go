//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/pkgversion/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// RepoPackageReferenceBuilder helps create test report records with a fluent interface.
type RepoPackageReferenceBuilder struct {
	*testkit.BaseBuilder
	repoSlug    string
	filePath    string
	packageName string
	version     string
}

// NewRepoPackageReferenceBuilder creates a new record builder with sensible defaults.
func NewRepoPackageReferenceBuilder() *RepoPackageReferenceBuilder {
	return &RepoPackageReferenceBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		repoSlug:    "test-repo",
		filePath:    "src/App/App.csproj",
		packageName: "Newtonsoft.Json",
		version:     "13.0.3",
	}
}

// WithRepoSlug sets the repository slug.
func (b *RepoPackageReferenceBuilder) WithRepoSlug(slug string) *RepoPackageReferenceBuilder {
	b.repoSlug = slug
	return b
}

// WithFilePath sets the file path.
func (b *RepoPackageReferenceBuilder) WithFilePath(path string) *RepoPackageReferenceBuilder {
	b.filePath = path
	return b
}

// WithPackageName sets the package name.
func (b *RepoPackageReferenceBuilder) WithPackageName(name string) *RepoPackageReferenceBuilder {
	b.packageName = name
	return b
}

// WithVersion sets the declared version.
func (b *RepoPackageReferenceBuilder) WithVersion(version string) *RepoPackageReferenceBuilder {
	b.version = version
	return b
}

// Build creates the record (satisfies testkit.Builder interface).
func (b *RepoPackageReferenceBuilder) Build() interface{} {
	return b.BuildRepoPackageReference()
}

// BuildRepoPackageReference creates the record with a concrete return type.
func (b *RepoPackageReferenceBuilder) BuildRepoPackageReference() entities.RepoPackageReference {
	return entities.NewRepoPackageReference(b.repoSlug, b.filePath, entities.PackageReference{
		PackageName: b.packageName,
		Version:     b.version,
	})
}

// Reset clears the builder state, allowing it to be reused.
func (b *RepoPackageReferenceBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.repoSlug = "test-repo"
	b.filePath = "src/App/App.csproj"
	b.packageName = "Newtonsoft.Json"
	b.version = "13.0.3"
	return b
}

// Clone creates a deep copy of the RepoPackageReferenceBuilder.
func (b *RepoPackageReferenceBuilder) Clone() testkit.Builder {
	return &RepoPackageReferenceBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		repoSlug:    b.repoSlug,
		filePath:    b.filePath,
		packageName: b.packageName,
		version:     b.version,
	}
}
