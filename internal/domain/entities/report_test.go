//go:build unit

package entities_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/pkgversion/internal/domain/entities"
	builders "github.com/rios0rios0/pkgversion/test/domain/entitybuilders"
)

func TestPackageVersionReport(t *testing.T) {
	t.Parallel()

	t.Run("should keep records in append order without deduplication", func(t *testing.T) {
		t.Parallel()

		// given
		report := entities.NewPackageVersionReport("Foo")
		first := builders.NewRepoPackageReferenceBuilder().WithRepoSlug("b").WithPackageName("Foo").
			WithVersion("2.0.0").BuildRepoPackageReference()
		second := builders.NewRepoPackageReferenceBuilder().WithRepoSlug("a").WithPackageName("Foo").
			WithVersion("1.0.0").BuildRepoPackageReference()

		// when
		report.Append(first, second)
		report.Append(first)

		// then
		assert.Equal(t, []entities.RepoPackageReference{first, second, first}, report.Records())
		assert.Equal(t, 3, report.Len())
	})

	t.Run("should not expose its internal slice", func(t *testing.T) {
		t.Parallel()

		// given
		report := entities.NewPackageVersionReport("Foo")
		report.Append(builders.NewRepoPackageReferenceBuilder().WithVersion("1.0.0").BuildRepoPackageReference())

		// when
		records := report.Records()
		records[0].Version = "9.9.9"

		// then
		assert.Equal(t, "1.0.0", report.Records()[0].Version)
	})

	t.Run("should render the same output twice without mutating the records", func(t *testing.T) {
		t.Parallel()

		// given
		report := entities.NewPackageVersionReport("Foo")
		report.Append(
			builders.NewRepoPackageReferenceBuilder().WithRepoSlug("a").WithVersion("1.0.0").BuildRepoPackageReference(),
			builders.NewRepoPackageReferenceBuilder().WithRepoSlug("b").WithVersion("2.0.0").BuildRepoPackageReference(),
		)
		before := report.Records()

		for _, kind := range entities.OutputKinds() {
			// when
			first, firstErr := report.Render(kind)
			second, secondErr := report.Render(kind)

			// then
			require.NoError(t, firstErr)
			require.NoError(t, secondErr)
			assert.Equal(t, first, second, "kind %s", kind)
		}
		assert.Equal(t, before, report.Records())
	})

	t.Run("should fail to render an unknown kind", func(t *testing.T) {
		t.Parallel()

		// given
		report := entities.NewPackageVersionReport("Foo")

		// when
		out, err := report.Render(entities.OutputKind("json"))

		// then
		require.Error(t, err)
		assert.Empty(t, out)
	})
}

func TestPackageVersionReportRender(t *testing.T) {
	t.Parallel()

	newReport := func() *entities.PackageVersionReport {
		report := entities.NewPackageVersionReport("Foo")
		report.Append(
			builders.NewRepoPackageReferenceBuilder().WithRepoSlug("zeta").WithFilePath("src/Z.csproj").
				WithPackageName("Foo").WithVersion("1.2.3").BuildRepoPackageReference(),
			builders.NewRepoPackageReferenceBuilder().WithRepoSlug("alpha").WithFilePath("A.csproj").
				WithPackageName("Foo").WithVersion("1.0.0").BuildRepoPackageReference(),
		)
		return report
	}

	t.Run("should render console output as an aligned table in insertion order", func(t *testing.T) {
		t.Parallel()

		// given
		report := newReport()

		// when
		out, err := report.Render(entities.OutputConsole)

		// then
		require.NoError(t, err)
		expected := "Package version report: Foo\n\n" +
			"REPOSITORY  FILE          VERSION\n" +
			"zeta        src/Z.csproj  1.2.3\n" +
			"alpha       A.csproj      1.0.0\n"
		assert.Equal(t, expected, out)
	})

	t.Run("should render delimited output with a header", func(t *testing.T) {
		t.Parallel()

		// given
		report := newReport()

		// when
		out, err := report.Render(entities.OutputTxt)

		// then
		require.NoError(t, err)
		expected := "repository,file,package,version\n" +
			"zeta,src/Z.csproj,Foo,1.2.3\n" +
			"alpha,A.csproj,Foo,1.0.0\n"
		assert.Equal(t, expected, out)
	})

	t.Run("should quote delimited fields containing the separator", func(t *testing.T) {
		t.Parallel()

		// given
		report := entities.NewPackageVersionReport("Foo")
		report.Append(builders.NewRepoPackageReferenceBuilder().WithRepoSlug("a").WithFilePath("A.csproj").
			WithPackageName("Foo").WithVersion("[1.0,2.0)").BuildRepoPackageReference())

		// when
		out, err := report.Render(entities.OutputTxt)

		// then
		require.NoError(t, err)
		assert.Contains(t, out, `a,A.csproj,Foo,"[1.0,2.0)"`)
	})

	t.Run("should render markdown as a table in insertion order", func(t *testing.T) {
		t.Parallel()

		// given
		report := newReport()

		// when
		out, err := report.Render(entities.OutputMd)

		// then
		require.NoError(t, err)
		expected := "# Package version report: Foo\n\n" +
			"| Repository | File | Package | Version |\n" +
			"| --- | --- | --- | --- |\n" +
			"| zeta | src/Z.csproj | Foo | 1.2.3 |\n" +
			"| alpha | A.csproj | Foo | 1.0.0 |\n"
		assert.Equal(t, expected, out)
	})

	t.Run("should escape pipes in markdown cells", func(t *testing.T) {
		t.Parallel()

		// given
		report := entities.NewPackageVersionReport("Foo")
		report.Append(builders.NewRepoPackageReferenceBuilder().WithVersion("1.0|2.0").BuildRepoPackageReference())

		// when
		out, err := report.Render(entities.OutputMd)

		// then
		require.NoError(t, err)
		assert.Contains(t, out, `| 1.0\|2.0 |`)
	})

	emptyCases := []struct {
		name     string
		kind     entities.OutputKind
		expected string
	}{
		{
			name:     "should render an empty console report",
			kind:     entities.OutputConsole,
			expected: "Package version report: Foo\n\nNo references found.\n",
		},
		{
			name:     "should render an empty delimited report as header only",
			kind:     entities.OutputTxt,
			expected: "repository,file,package,version\n",
		},
		{
			name: "should render an empty markdown report with a well-formed table",
			kind: entities.OutputMd,
			expected: "# Package version report: Foo\n\n" +
				"| Repository | File | Package | Version |\n" +
				"| --- | --- | --- | --- |\n",
		},
	}

	for _, tt := range emptyCases {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// given
			report := entities.NewPackageVersionReport("Foo")

			// when
			out, err := report.Render(tt.kind)

			// then
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestPackageVersionReportDistinctVersions(t *testing.T) {
	t.Parallel()

	t.Run("should list each version once, newest first", func(t *testing.T) {
		t.Parallel()

		// given
		report := entities.NewPackageVersionReport("Foo")
		for _, v := range []string{"1.2.3", "10.0.0", "1.2.3", "2.0.0-rc.1", "2.0.0", "$(FooVersion)"} {
			report.Append(builders.NewRepoPackageReferenceBuilder().WithVersion(v).BuildRepoPackageReference())
		}

		// when
		versions := report.DistinctVersions()

		// then
		assert.Equal(t, []string{"10.0.0", "2.0.0", "2.0.0-rc.1", "1.2.3", "$(FooVersion)"}, versions)
	})

	t.Run("should leave the render order untouched", func(t *testing.T) {
		t.Parallel()

		// given
		report := entities.NewPackageVersionReport("Foo")
		report.Append(
			builders.NewRepoPackageReferenceBuilder().WithRepoSlug("old").WithVersion("1.0.0").BuildRepoPackageReference(),
			builders.NewRepoPackageReferenceBuilder().WithRepoSlug("new").WithVersion("2.0.0").BuildRepoPackageReference(),
		)

		// when
		_ = report.DistinctVersions()
		out, err := report.Render(entities.OutputTxt)

		// then
		require.NoError(t, err)
		assert.Less(t, strings.Index(out, "old"), strings.Index(out, "new"))
	})

	t.Run("should return nothing for an empty report", func(t *testing.T) {
		t.Parallel()

		// given
		report := entities.NewPackageVersionReport("Foo")

		// when
		versions := report.DistinctVersions()

		// then
		assert.Empty(t, versions)
	})
}
