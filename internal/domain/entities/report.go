package entities

import (
	"encoding/csv"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"golang.org/x/mod/semver"
)

const (
	reportTitle     = "Package version report"
	emptyReportNote = "No references found."
)

// PackageVersionReport is the append-only, insertion-ordered collection of references
// found during one run. Rendering never reorders or groups the records.
type PackageVersionReport struct {
	packageName string
	records     []RepoPackageReference
}

// NewPackageVersionReport creates an empty report for the given package.
func NewPackageVersionReport(packageName string) *PackageVersionReport {
	return &PackageVersionReport{packageName: packageName}
}

// PackageName returns the package the report was created for.
func (r *PackageVersionReport) PackageName() string {
	return r.packageName
}

// Append adds records to the end of the report.
func (r *PackageVersionReport) Append(records ...RepoPackageReference) {
	r.records = append(r.records, records...)
}

// Records returns a copy of the records in insertion order.
func (r *PackageVersionReport) Records() []RepoPackageReference {
	out := make([]RepoPackageReference, len(r.records))
	copy(out, r.records)
	return out
}

// Len returns the number of records.
func (r *PackageVersionReport) Len() int {
	return len(r.records)
}

// Render returns the report as text in the given kind.
func (r *PackageVersionReport) Render(kind OutputKind) (string, error) {
	switch kind {
	case OutputConsole:
		return r.renderConsole()
	case OutputTxt:
		return r.renderDelimited()
	case OutputMd:
		return r.renderMarkdown(), nil
	default:
		return "", fmt.Errorf("cannot render report as %q", kind)
	}
}

func (r *PackageVersionReport) title() string {
	if r.packageName == "" {
		return reportTitle
	}
	return reportTitle + ": " + r.packageName
}

func (r *PackageVersionReport) renderConsole() (string, error) {
	var sb strings.Builder
	sb.WriteString(r.title() + "\n\n")

	if len(r.records) == 0 {
		sb.WriteString(emptyReportNote + "\n")
		return sb.String(), nil
	}

	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "REPOSITORY\tFILE\tVERSION")
	for _, rec := range r.records {
		fmt.Fprintf(w, "%s\t%s\t%s\n", rec.RepoSlug, rec.FilePath, rec.Version)
	}
	if err := w.Flush(); err != nil {
		return "", fmt.Errorf("failed to render console report: %w", err)
	}
	return sb.String(), nil
}

func (r *PackageVersionReport) renderDelimited() (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	rows := make([][]string, 0, len(r.records)+1)
	rows = append(rows, []string{"repository", "file", "package", "version"})
	for _, rec := range r.records {
		rows = append(rows, []string{rec.RepoSlug, rec.FilePath, rec.PackageName, rec.Version})
	}

	if err := w.WriteAll(rows); err != nil {
		return "", fmt.Errorf("failed to render delimited report: %w", err)
	}
	return sb.String(), nil
}

func (r *PackageVersionReport) renderMarkdown() string {
	var sb strings.Builder
	sb.WriteString("# " + r.title() + "\n\n")
	sb.WriteString("| Repository | File | Package | Version |\n")
	sb.WriteString("| --- | --- | --- | --- |\n")
	for _, rec := range r.records {
		fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n",
			escapeCell(rec.RepoSlug), escapeCell(rec.FilePath),
			escapeCell(rec.PackageName), escapeCell(rec.Version))
	}
	return sb.String()
}

func escapeCell(value string) string {
	return strings.ReplaceAll(value, "|", `\|`)
}

// DistinctVersions returns every version present in the report once, newest first.
// Versions that are not valid semver are ordered after valid ones, by plain string comparison.
func (r *PackageVersionReport) DistinctVersions() []string {
	seen := make(map[string]struct{})
	var versions []string
	for _, rec := range r.records {
		if _, ok := seen[rec.Version]; ok {
			continue
		}
		seen[rec.Version] = struct{}{}
		versions = append(versions, rec.Version)
	}

	sortVersionsDescending(versions)
	return versions
}

func sortVersionsDescending(versions []string) {
	sort.SliceStable(versions, func(i, j int) bool {
		v1 := normalizeVersion(versions[i])
		v2 := normalizeVersion(versions[j])

		valid1, valid2 := semver.IsValid(v1), semver.IsValid(v2)
		switch {
		case valid1 && valid2:
			if c := semver.Compare(v1, v2); c != 0 {
				return c > 0
			}
			return versions[i] > versions[j]
		case valid1 != valid2:
			return valid1
		default:
			return versions[i] > versions[j]
		}
	})
}

// normalizeVersion ensures version has 'v' prefix for semver compatibility
func normalizeVersion(version string) string {
	if strings.HasPrefix(version, "v") {
		return version
	}
	return "v" + version
}
