package entities

import (
	"fmt"
	"strings"
)

// OutputKind selects how the report is rendered and where it is delivered.
type OutputKind string

const (
	OutputConsole OutputKind = "console"
	OutputTxt     OutputKind = "txt"
	OutputMd      OutputKind = "md"
)

// OutputKinds lists every supported kind in the order shown to users.
func OutputKinds() []OutputKind {
	return []OutputKind{OutputConsole, OutputTxt, OutputMd}
}

// ParseOutputKind converts a user supplied value into an OutputKind.
func ParseOutputKind(raw string) (OutputKind, error) {
	kind := OutputKind(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range OutputKinds() {
		if kind == known {
			return kind, nil
		}
	}
	return "", fmt.Errorf("unknown output kind %q (expected console, txt or md)", raw)
}

// Extension returns the file extension for kinds that are written to disk.
// Console output is never written, so it has none.
func (k OutputKind) Extension() string {
	switch k {
	case OutputTxt:
		return ".txt"
	case OutputMd:
		return ".md"
	default:
		return ""
	}
}

// IsFile reports whether the kind is delivered as a file.
func (k OutputKind) IsFile() bool {
	return k.Extension() != ""
}
