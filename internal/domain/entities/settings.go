package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	// AppName names the configuration directory under the XDG config home.
	AppName = "statsexport"

	ReportTypeLogging     = "logging"
	ReportTypeFile        = "file"
	ReportTypeMailingList = "mailing-list"
	ReportTypeS3          = "s3"
)

var (
	// ErrInvalidReportType is returned for an unknown report sink.
	ErrInvalidReportType = errors.New("invalid report type")
	// ErrMissingReportPath is returned when a sink needs a destination path.
	ErrMissingReportPath = errors.New("report path is required")
)

// Settings is the top-level configuration for statsexport.
type Settings struct {
	Report    ReportSettings `yaml:"report"     toml:"report"`
	GitAuthor string         `yaml:"git_author" toml:"git_author"`
}

// ReportSettings selects and addresses the report sink.
type ReportSettings struct {
	Type        string              `yaml:"type"         toml:"type"`         // "logging", "file", "mailing-list", "s3"
	Path        string              `yaml:"path"         toml:"path"`         // file path or s3://bucket/key
	S3          S3Settings          `yaml:"s3"           toml:"s3"`
	MailingList MailingListSettings `yaml:"mailing_list" toml:"mailing_list"`
}

// S3Settings configures the object storage client.
type S3Settings struct {
	Endpoint  string `yaml:"endpoint"   toml:"endpoint"`
	PathStyle bool   `yaml:"path_style" toml:"path_style"`
}

// MailingListSettings addresses the rendered mailing-list document.
type MailingListSettings struct {
	From    string      `yaml:"from"    toml:"from"`
	To      []string    `yaml:"to"      toml:"to"`
	Cc      []string    `yaml:"cc"      toml:"cc"`
	Subject string      `yaml:"subject" toml:"subject"`
	Git     GitSettings `yaml:"git"     toml:"git"`
}

// GitSettings points at the repository the document is published to.
type GitSettings struct {
	Repository     string `yaml:"repository"      toml:"repository"`
	BranchTemplate string `yaml:"branch_template" toml:"branch_template"`
	FilePath       string `yaml:"file_path"       toml:"file_path"`
	CommitMessage  string `yaml:"commit_message"  toml:"commit_message"`
}

// ReportingEnabled reports whether a report sink is configured.
func (s *Settings) ReportingEnabled() bool {
	return strings.TrimSpace(s.Report.Type) != ""
}

// GitPublishingEnabled reports whether the mailing-list document goes to a git remote.
func (s *Settings) GitPublishingEnabled() bool {
	return strings.TrimSpace(s.Report.MailingList.Git.Repository) != ""
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// NewSettings reads and parses a configuration file, expanding environment
// variables. YAML and TOML files are accepted.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var settings Settings
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if unmarshalErr := toml.Unmarshal(data, &settings); unmarshalErr != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
		}
	default:
		if unmarshalErr := yaml.Unmarshal(data, &settings); unmarshalErr != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
		}
	}

	settings.Report.Path = expandEnv(settings.Report.Path)
	settings.Report.S3.Endpoint = expandEnv(settings.Report.S3.Endpoint)
	settings.Report.MailingList.Git.Repository = expandEnv(settings.Report.MailingList.Git.Repository)
	settings.GitAuthor = expandEnv(settings.GitAuthor)

	if validateErr := settings.Validate(); validateErr != nil {
		return nil, validateErr
	}

	return &settings, nil
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
		locations = append(locations, homeDir)
	}
	locations = append(locations, filepath.Join(xdg.ConfigHome, AppName))

	patterns := []string{
		".statsexport.yaml",
		".statsexport.yml",
		".statsexport.toml",
		"statsexport.yaml",
		"statsexport.yml",
		"statsexport.toml",
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

// Validate checks for required configuration values.
func (s *Settings) Validate() error {
	s.Report.Type = strings.TrimSpace(s.Report.Type)

	switch s.Report.Type {
	case "", ReportTypeLogging, ReportTypeMailingList:
		return nil
	case ReportTypeFile, ReportTypeS3:
		if strings.TrimSpace(s.Report.Path) == "" {
			return fmt.Errorf("%w for report type %q", ErrMissingReportPath, s.Report.Type)
		}
		return nil
	default:
		return fmt.Errorf(
			"%w %q (expected %s, %s, %s or %s)",
			ErrInvalidReportType, s.Report.Type,
			ReportTypeLogging, ReportTypeFile, ReportTypeMailingList, ReportTypeS3,
		)
	}
}

// expandEnv expands ${ENV_VAR} references, leaving unknown variables empty.
func expandEnv(raw string) string {
	if raw == "" {
		return raw
	}

	return envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})
}
