package controllers

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/pkgversion/internal/domain/commands"
	"github.com/rios0rios0/pkgversion/internal/domain/entities"
)

const (
	flagBaseURL          = "base-url"
	flagProject          = "project"
	flagPackage          = "package"
	flagToken            = "token"
	flagOutputKind       = "output-kind"
	flagIgnoreRepoPrefix = "ignore-repo-prefix"
	flagOutputFileName   = "output-file-name"
	flagFileSuffix       = "file-suffix"
	flagProvider         = "provider"
	flagConfig           = "config"
	flagVerbose          = "verbose"
)

// AuditController handles the "audit" subcommand.
type AuditController struct {
	command commands.Audit
}

// NewAuditController creates a new AuditController.
func NewAuditController(command commands.Audit) *AuditController {
	return &AuditController{command: command}
}

// GetBind returns the Cobra command metadata for the audit controller.
func (it *AuditController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "audit",
		Short: "Report the declared versions of a package across a project",
		Long: `List every repository of a Bitbucket Server project, read its .csproj files
and report which version of the given package each file declares.

Repositories are processed one at a time; the files of a repository are
fetched concurrently. Files that cannot be read are skipped.`,
	}
}

// AddFlags adds the audit-specific flags to the given Cobra command.
func (it *AuditController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String(flagBaseURL, "", "URL of the hosting instance, protocol optional (defaults to the public host for github and gitlab)")
	cmd.Flags().String(flagProject, "", "Key of the project to scan")
	cmd.Flags().String(flagPackage, "", "Exact name of the package to report on")
	cmd.Flags().String(flagOutputKind, string(entities.OutputConsole), "Output kind: console, txt or md")
	cmd.Flags().String(flagIgnoreRepoPrefix, "", "Skip repositories whose slug starts with this prefix")
	cmd.Flags().String(flagOutputFileName, entities.DefaultOutputFileName,
		"Base name of the report file (ignored for console output)")
	cmd.Flags().String(flagFileSuffix, entities.DefaultFileSuffix, "Suffix of the build files to scan")
	cmd.Flags().String(flagProvider, entities.DefaultProviderType, "Hosting provider type: azuredevops, bitbucket, github or gitlab")
}

// Execute builds the settings from the config file and flags, then runs the audit.
func (it *AuditController) Execute(cmd *cobra.Command, _ []string) error {
	if verbose, _ := cmd.Flags().GetBool(flagVerbose); verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	settings, err := loadSettings(cmd)
	if err != nil {
		logger.Errorf("Invalid configuration: %v", err)
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if runErr := it.command.Execute(ctx, settings); runErr != nil {
		logger.Errorf("Audit failed: %v", runErr)
		return runErr
	}
	return nil
}

// loadSettings reads the optional config file and applies explicitly set flags on top of it.
func loadSettings(cmd *cobra.Command) (*entities.Settings, error) {
	settings := &entities.Settings{}

	configPath, _ := cmd.Flags().GetString(flagConfig)
	if configPath == "" {
		if found, findErr := entities.FindConfigFile(); findErr == nil {
			configPath = found
		}
	}
	if configPath != "" {
		logger.Infof("Using config file: %s", configPath)
		loaded, err := entities.NewSettings(configPath)
		if err != nil {
			return nil, err
		}
		settings = loaded
	}

	overrides := map[string]*string{
		flagBaseURL:          &settings.BaseURL,
		flagProject:          &settings.Project,
		flagPackage:          &settings.Package,
		flagToken:            &settings.Token,
		flagIgnoreRepoPrefix: &settings.IgnoreRepoPrefix,
		flagOutputFileName:   &settings.OutputFileName,
		flagFileSuffix:       &settings.FileSuffix,
		flagProvider:         &settings.ProviderType,
	}
	for name, target := range overrides {
		if !cmd.Flags().Changed(name) {
			continue
		}
		value, _ := cmd.Flags().GetString(name)
		*target = value
	}
	if cmd.Flags().Changed(flagToken) {
		settings.Token = entities.ResolveToken(settings.Token)
	}

	rawKind := string(settings.OutputKind)
	if cmd.Flags().Changed(flagOutputKind) {
		rawKind, _ = cmd.Flags().GetString(flagOutputKind)
	}
	if rawKind != "" {
		kind, err := entities.ParseOutputKind(rawKind)
		if err != nil {
			return nil, err
		}
		settings.OutputKind = kind
	}

	settings.ApplyDefaults()
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("%w; see --help", err)
	}
	return settings, nil
}
