package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	DefaultProviderType   = "bitbucket"
	DefaultFileSuffix     = ".csproj"
	DefaultOutputFileName = "package-version-report"
	TokenEnvVar           = "BITBUCKET_TOKEN"
)

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// Settings holds everything a single audit run needs.
type Settings struct {
	ProviderType     string     `yaml:"provider"`
	BaseURL          string     `yaml:"base_url"`
	Project          string     `yaml:"project"`
	Package          string     `yaml:"package"`
	Token            string     `yaml:"token"` // Inline, ${ENV_VAR}, or file path
	IgnoreRepoPrefix string     `yaml:"ignore_repo_prefix"`
	OutputKind       OutputKind `yaml:"output_kind"`
	OutputFileName   string     `yaml:"output_file_name"`
	FileSuffix       string     `yaml:"file_suffix"`
}

// NewSettings reads and parses a settings file, expanding environment variables
// and resolving token file paths. The result still has to be validated once
// command line overrides are applied.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var settings Settings
	if unmarshalErr := yaml.Unmarshal(data, &settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	settings.Token = ResolveToken(settings.Token)
	return &settings, nil
}

// ApplyDefaults fills unset optional values.
func (s *Settings) ApplyDefaults() {
	if s.ProviderType == "" {
		s.ProviderType = DefaultProviderType
	}
	if s.OutputKind == "" {
		s.OutputKind = OutputConsole
	}
	if s.OutputFileName == "" {
		s.OutputFileName = DefaultOutputFileName
	}
	if s.FileSuffix == "" {
		s.FileSuffix = DefaultFileSuffix
	}
	if s.Token == "" {
		s.Token = os.Getenv(TokenEnvVar)
	}
}

// RequiresBaseURL reports whether the provider has no public default instance.
// GitHub and GitLab fall back to github.com and gitlab.com.
func (s *Settings) RequiresBaseURL() bool {
	switch s.ProviderType {
	case "github", "gitlab":
		return false
	default:
		return true
	}
}

// Validate checks for required values.
func (s *Settings) Validate() error {
	if s.RequiresBaseURL() && strings.TrimSpace(s.BaseURL) == "" {
		return fmt.Errorf("base_url is required for provider %q", s.ProviderType)
	}
	if strings.TrimSpace(s.Project) == "" {
		return errors.New("project is required")
	}
	if s.Package == "" {
		return errors.New("package is required")
	}
	if s.Token == "" {
		return fmt.Errorf(
			"token is required (set inline, via ${ENV_VAR}, as file path, or with %s)",
			TokenEnvVar,
		)
	}
	if _, err := ParseOutputKind(string(s.OutputKind)); err != nil {
		return err
	}
	return nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".pkgversion.yaml",
		".pkgversion.yml",
		"pkgversion.yaml",
		"pkgversion.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// ResolveToken expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the token from the file.
func ResolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	if _, statErr := os.Stat(resolved); statErr == nil {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Infof("Read token from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}
