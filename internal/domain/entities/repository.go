package entities

import "strings"

// Repository represents a repository listed under a project of the hosting provider.
type Repository struct {
	Slug    string // Unique identifier inside the project
	Name    string // Display name
	Project string // Key of the owning project
}

// RepoFile holds the content of a single file fetched from a repository.
type RepoFile struct {
	Path  string   // Repository-relative path
	Lines []string // Content split on the file's own line breaks
}

// SplitLines splits content on "\n", dropping one trailing "\r" from each line.
// A final line break does not produce an extra empty line.
func SplitLines(content string) []string {
	if content == "" {
		return []string{}
	}

	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
