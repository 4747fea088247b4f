package main

import (
	"os"

	"github.com/joho/godotenv"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/pkgversion/internal"
	"github.com/rios0rios0/pkgversion/internal/domain/entities"
	"github.com/rios0rios0/pkgversion/internal/infrastructure/controllers"
)

func buildRootCommand(auditController *controllers.AuditController) *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "pkgversion",
		Short: "Cross-repository package version report",
		Long: `Report which version of a shared package every repository of a
project declares in its .csproj files. Bitbucket Server is the default
hosting provider; Azure DevOps, GitHub and GitLab are also supported.

Usage modes:
  pkgversion --base-url git.example.com --project CORE --package Newtonsoft.Json
  pkgversion audit --output-kind md    Same, as a subcommand
  pkgversion -c pkgversion.yaml        Take the settings from a config file`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, args []string) error {
			if command.Flags().NFlag() == 0 {
				if _, err := entities.FindConfigFile(); err != nil {
					return command.Help()
				}
			}
			return auditController.Execute(command, args)
		},
	}

	// Global persistent flags
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to config file (default: auto-detect)")
	cmd.PersistentFlags().String("token", "",
		"Access token for the hosting provider (default: $BITBUCKET_TOKEN)")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable verbose output")

	auditController.AddFlags(cmd)
	return cmd
}

func addSubcommands(rootCmd *cobra.Command, appContext *internal.AppInternal) {
	for _, controller := range appContext.GetControllers() {
		bind := controller.GetBind()
		ctrl := controller
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:   bind.Use,
			Short: bind.Short,
			Long:  bind.Long,
			Args:  cobra.NoArgs,
			RunE: func(command *cobra.Command, arguments []string) error {
				return ctrl.Execute(command, arguments)
			},
		}
		ctrl.AddFlags(subCmd)

		rootCmd.AddCommand(subCmd)
	}
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	logger.SetOutput(os.Stderr)

	// A missing .env file is fine: the token can come from flags or the environment.
	_ = godotenv.Load()

	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	appContext := injectAppContext()
	cobraRoot := buildRootCommand(injectAuditController())
	addSubcommands(cobraRoot, appContext)

	if err := cobraRoot.Execute(); err != nil {
		logger.Fatalf("Error executing 'pkgversion': %s", err)
	}
}
