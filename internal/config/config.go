// =============================================================================
// fieldforge - Configuration
// =============================================================================
//
// This module loads the tool configuration from a YAML file. The configuration
// covers the Metadata API version, the staging location, CSV parsing settings,
// and the default login endpoint. Every setting has a sensible default, so a
// configuration file is optional: a missing file yields the default
// configuration rather than an error.
//
// EXAMPLE config.yaml:
//
//   api_version: "61.0"
//   staging_dir: ""                # empty = system temp directory
//   login_url: https://login.salesforce.com
//   csv:
//     delimiter: ","
//     encoding: UTF-8
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// CONFIGURATION TYPES
// =============================================================================

// Config is the top-level tool configuration.
type Config struct {
	// APIVersion is the Metadata API version used for the SOAP endpoint
	// and written into the package.xml manifest.
	APIVersion string `yaml:"api_version"`

	// StagingDir overrides where staging directories are created.
	// Empty means the system temp directory.
	StagingDir string `yaml:"staging_dir"`

	// LoginURL is the default Salesforce login endpoint. The SF_LOGIN_URL
	// environment variable and the --login-url flag take precedence.
	LoginURL string `yaml:"login_url"`

	// CSV contains the parsing settings for CSV input files.
	CSV CSVSettings `yaml:"csv"`
}

// CSVSettings controls how CSV input files are read.
type CSVSettings struct {
	// Delimiter is the field separator. Aliases "tab", "pipe" and
	// "semicolon" are accepted alongside literal characters.
	Delimiter string `yaml:"delimiter"`

	// Encoding is the character encoding of the input file.
	// Supported: UTF-8 (default), windows-1251, windows-1252, iso-8859-1.
	Encoding string `yaml:"encoding"`
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration from the given path, applies defaults and
// validates the result. A missing file is not an error: the defaults are
// returned instead.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyDefaults(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Default returns the built-in default configuration.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// applyDefaults fills in defaults for unset values.
func applyDefaults(cfg *Config) {
	if cfg.APIVersion == "" {
		cfg.APIVersion = "61.0"
	}
	if cfg.LoginURL == "" {
		cfg.LoginURL = "https://login.salesforce.com"
	}
	if cfg.CSV.Delimiter == "" {
		cfg.CSV.Delimiter = ","
	}
	if cfg.CSV.Encoding == "" {
		cfg.CSV.Encoding = "UTF-8"
	}
}

// validate checks the configuration for values the rest of the tool
// cannot work with.
func validate(cfg *Config) error {
	// API versions look like "61.0". Only the shape is checked here; the
	// org rejects versions it does not serve.
	if !strings.Contains(cfg.APIVersion, ".") {
		return fmt.Errorf("api_version %q does not look like a Metadata API version (expected e.g. \"61.0\")", cfg.APIVersion)
	}

	switch strings.ToLower(cfg.CSV.Encoding) {
	case "utf-8", "utf8", "windows-1251", "windows-1252", "iso-8859-1", "latin1":
		// supported
	default:
		return fmt.Errorf("unsupported csv encoding %q", cfg.CSV.Encoding)
	}

	if cfg.StagingDir != "" {
		info, err := os.Stat(cfg.StagingDir)
		if err != nil {
			return fmt.Errorf("staging_dir %q: %w", cfg.StagingDir, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("staging_dir %q is not a directory", cfg.StagingDir)
		}
	}

	return nil
}
