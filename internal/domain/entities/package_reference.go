package entities

import (
	"regexp"
	"strings"
)

const (
	packageReferenceElement = "<PackageReference"
	includeAttribute        = "Include"
	versionAttribute        = "Version"
)

// attributePattern matches name="value" and name='value' pairs, tolerating blanks around "=".
var attributePattern = regexp.MustCompile(`([A-Za-z_][\w.-]*)\s*=\s*(?:"([^"]*)"|'([^']*)')`)

// PackageReference is a package declaration found on a single line of a build-project file.
type PackageReference struct {
	PackageName string
	Version     string
}

// RepoPackageReference is a PackageReference annotated with the repository and file it came from.
type RepoPackageReference struct {
	RepoSlug string
	FilePath string
	PackageReference
}

// NewRepoPackageReference annotates a reference with its origin.
func NewRepoPackageReference(repoSlug, filePath string, ref PackageReference) RepoPackageReference {
	return RepoPackageReference{
		RepoSlug:         repoSlug,
		FilePath:         filePath,
		PackageReference: ref,
	}
}

// ParsePackageReference extracts the package name and version from a line such as
//
//	<PackageReference Include="Newtonsoft.Json" Version="13.0.3" />
//
// It returns false when the line is not a declaration or when the name or the version is empty.
// Declarations are expected on a single line; a version given as a child element is not recognized.
func ParsePackageReference(line string) (PackageReference, bool) {
	element, ok := openingElement(line)
	if !ok {
		return PackageReference{}, false
	}

	var name, version string
	for _, match := range attributePattern.FindAllStringSubmatch(element, -1) {
		value := match[2]
		if value == "" {
			value = match[3]
		}

		switch {
		case strings.EqualFold(match[1], includeAttribute) && name == "":
			name = strings.TrimSpace(value)
		case strings.EqualFold(match[1], versionAttribute) && version == "":
			version = strings.TrimSpace(value)
		}
	}

	if name == "" || version == "" {
		return PackageReference{}, false
	}
	return PackageReference{PackageName: name, Version: version}, true
}

// openingElement returns the attribute section of the element starting the line.
func openingElement(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, packageReferenceElement) {
		return "", false
	}

	rest := trimmed[len(packageReferenceElement):]
	if rest == "" || !(rest[0] == ' ' || rest[0] == '\t' || rest[0] == '/' || rest[0] == '>') {
		// e.g. <PackageReferences> or <PackageReferenceFoo
		return "", false
	}

	if end := strings.Index(rest, ">"); end >= 0 {
		rest = rest[:end]
	}
	return rest, true
}
