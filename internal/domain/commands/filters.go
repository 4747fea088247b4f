package commands

import (
	"strings"

	"github.com/rios0rios0/pkgversion/internal/domain/entities"
)

// isIgnoredRepository reports whether a repository is excluded by the ignore prefix.
// An empty prefix ignores nothing.
func isIgnoredRepository(slug, ignorePrefix string) bool {
	return ignorePrefix != "" && strings.HasPrefix(slug, ignorePrefix)
}

// matchesPackage reports whether ref declares the target package.
// The comparison is exact: no case folding, no trimming.
func matchesPackage(ref entities.PackageReference, target string) bool {
	return ref.PackageName == target
}

// extractReferences scans every line of file and returns the declarations of target,
// in line order, annotated with their origin.
func extractReferences(repoSlug string, file entities.RepoFile, target string) []entities.RepoPackageReference {
	var found []entities.RepoPackageReference
	for _, line := range file.Lines {
		ref, ok := entities.ParsePackageReference(line)
		if !ok || !matchesPackage(ref, target) {
			continue
		}
		found = append(found, entities.NewRepoPackageReference(repoSlug, file.Path, ref))
	}
	return found
}
