package commands

// IsIgnoredRepository exports isIgnoredRepository for testing.
var IsIgnoredRepository = isIgnoredRepository //nolint:gochecknoglobals // test export

// MatchesPackage exports matchesPackage for testing.
var MatchesPackage = matchesPackage //nolint:gochecknoglobals // test export

// ExtractReferences exports extractReferences for testing.
var ExtractReferences = extractReferences //nolint:gochecknoglobals // test export

// FetchFiles exports fetchFiles for testing.
var FetchFiles = fetchFiles //nolint:gochecknoglobals // test export
