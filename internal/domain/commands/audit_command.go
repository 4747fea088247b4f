package commands

import (
	"context"
	"fmt"
	"strings"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rios0rios0/pkgversion/internal/domain/entities"
	"github.com/rios0rios0/pkgversion/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/pkgversion/internal/infrastructure/repositories"
)

// Audit is the interface for the audit command.
type Audit interface {
	Execute(ctx context.Context, settings *entities.Settings) error
}

// AuditCommand orchestrates a full run:
// list repositories -> list build files -> fetch them concurrently -> extract -> report.
type AuditCommand struct {
	providerRegistry *infraRepos.ProviderRegistry
	outputRegistry   *infraRepos.OutputRegistry
}

// NewAuditCommand creates a new AuditCommand with the given registries.
func NewAuditCommand(
	providerRegistry *infraRepos.ProviderRegistry,
	outputRegistry *infraRepos.OutputRegistry,
) *AuditCommand {
	return &AuditCommand{
		providerRegistry: providerRegistry,
		outputRegistry:   outputRegistry,
	}
}

// Execute collects the report for the configured project, renders it and delivers it.
// Nothing is delivered when collection fails.
func (it *AuditCommand) Execute(ctx context.Context, settings *entities.Settings) error {
	provider, err := it.providerRegistry.Get(settings.ProviderType, settings.BaseURL, settings.Token)
	if err != nil {
		return err
	}

	output, err := it.outputRegistry.Get(settings.OutputKind)
	if err != nil {
		return err
	}

	logger.Infof("Auditing package %q in project %q on %s", settings.Package, settings.Project, provider.Name())

	report, err := Collect(ctx, provider, settings)
	if err != nil {
		return err
	}

	logVersionSummary(report)

	rendered, err := report.Render(settings.OutputKind)
	if err != nil {
		return err
	}

	name := ""
	if settings.OutputKind.IsFile() {
		name = settings.OutputFileName + settings.OutputKind.Extension()
	}
	if writeErr := output.Write(ctx, name, rendered); writeErr != nil {
		return fmt.Errorf("failed to deliver report: %w", writeErr)
	}
	return nil
}

// Collect walks every repository of the project in enumeration order and builds the report.
// Listing failures abort the run; a file that cannot be fetched is skipped.
func Collect(
	ctx context.Context,
	provider repositories.ProviderRepository,
	settings *entities.Settings,
) (*entities.PackageVersionReport, error) {
	report := entities.NewPackageVersionReport(settings.Package)

	repos, err := provider.ListRepositories(ctx, settings.Project)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate repositories: %w", err)
	}
	logger.Infof("Found %d repositories in %q", len(repos), settings.Project)

	for _, repo := range repos {
		if isIgnoredRepository(repo.Slug, settings.IgnoreRepoPrefix) {
			logger.Infof("Ignored repo: %s", repo.Slug)
			continue
		}

		refs, repoErr := processRepository(ctx, provider, settings, repo)
		if repoErr != nil {
			return nil, repoErr
		}
		report.Append(refs...)

		logger.Infof("Done processing files from repo: %s", repo.Slug)
	}

	return report, nil
}

// processRepository returns the matching references of one repository,
// in file listing order and then line order.
func processRepository(
	ctx context.Context,
	provider repositories.ProviderRepository,
	settings *entities.Settings,
	repo entities.Repository,
) ([]entities.RepoPackageReference, error) {
	paths, err := provider.ListFiles(ctx, settings.Project, repo.Slug, settings.FileSuffix)
	if err != nil {
		return nil, fmt.Errorf("failed to list files of %q: %w", repo.Slug, err)
	}
	logger.Debugf("Found %d %s files in %s", len(paths), settings.FileSuffix, repo.Slug)

	var refs []entities.RepoPackageReference
	for _, file := range fetchFiles(ctx, provider, settings.Project, repo.Slug, paths) {
		refs = append(refs, extractReferences(repo.Slug, file, settings.Package)...)
	}
	return refs, nil
}

// fetchFiles requests every path at once and waits for all of them. Files that fail
// are dropped; the survivors keep the order of paths whatever order they completed in.
func fetchFiles(
	ctx context.Context,
	provider repositories.ProviderRepository,
	project, repoSlug string,
	paths []string,
) []entities.RepoFile {
	results := make([]*entities.RepoFile, len(paths))

	var group errgroup.Group
	for i, path := range paths {
		group.Go(func() error {
			lines, err := provider.GetFileContent(ctx, project, repoSlug, path)
			if err != nil {
				logger.Debugf("Skipping %s/%s: %v", repoSlug, path, err)
				return nil
			}
			results[i] = &entities.RepoFile{Path: path, Lines: lines}
			return nil
		})
	}
	_ = group.Wait() // goroutines never fail

	files := make([]entities.RepoFile, 0, len(paths))
	for _, file := range results {
		if file != nil {
			files = append(files, *file)
		}
	}
	return files
}

func logVersionSummary(report *entities.PackageVersionReport) {
	versions := report.DistinctVersions()
	switch {
	case len(versions) == 0:
		logger.Infof("No references to %q found", report.PackageName())
	case len(versions) == 1:
		logger.Infof("%d references to %q, all on version %s", report.Len(), report.PackageName(), versions[0])
	default:
		logger.Warnf(
			"Version drift for %q: %d references across %d versions (%s)",
			report.PackageName(), report.Len(), len(versions), strings.Join(versions, ", "),
		)
	}
}
