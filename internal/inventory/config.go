// Package inventory produces a CSV inventory of every repository visible to
// a credential within a GitHub Enterprise instance.
package inventory

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Environment variable names.
const (
	EnvToken          = "GITHUB_TOKEN"
	EnvHost           = "GITHUB_HOST"
	EnvEnterpriseSlug = "GITHUB_ENTERPRISE_SLUG"
	EnvOutputPath     = "REPOSITORY_INVENTORY"
	EnvAppID          = "GITHUB_APP_ID"
	EnvInstallationID = "GITHUB_APP_INSTALLATION_ID"
	EnvPrivateKey     = "GITHUB_APP_PRIVATE_KEY"
	EnvIncludes       = "REPOSITORY_INCLUDE_PATTERNS"
	EnvExcludes       = "REPOSITORY_EXCLUDE_PATTERNS"
)

// DefaultEnterpriseSlug is used when GITHUB_ENTERPRISE_SLUG is unset.
const DefaultEnterpriseSlug = "github"

// Config holds the inventory run configuration, sourced from the
// environment.
type Config struct {
	Host           string
	EnterpriseSlug string
	OutputPath     string

	// Token auth (classic PAT).
	Token string

	// GitHub App auth (alternative to Token).
	AppID          int64
	InstallationID int64
	PrivateKey     string

	// Repository name filtering. Empty IncludePatterns means include all.
	IncludePatterns []string
	ExcludePatterns []string
}

// FromEnv builds a Config from environment variables, applying defaults for
// the enterprise slug and output path.
func FromEnv() (Config, error) {
	config := Config{
		Host:            os.Getenv(EnvHost),
		EnterpriseSlug:  os.Getenv(EnvEnterpriseSlug),
		OutputPath:      os.Getenv(EnvOutputPath),
		Token:           os.Getenv(EnvToken),
		PrivateKey:      os.Getenv(EnvPrivateKey),
		IncludePatterns: splitPatterns(os.Getenv(EnvIncludes)),
		ExcludePatterns: splitPatterns(os.Getenv(EnvExcludes)),
	}

	if config.Host == "" {
		return Config{}, fmt.Errorf("%s is required", EnvHost)
	}

	var err error
	if config.AppID, err = envInt64(EnvAppID); err != nil {
		return Config{}, err
	}
	if config.InstallationID, err = envInt64(EnvInstallationID); err != nil {
		return Config{}, err
	}

	if config.EnterpriseSlug == "" {
		config.EnterpriseSlug = DefaultEnterpriseSlug
	}
	if config.OutputPath == "" {
		if config.OutputPath, err = defaultOutputPath(); err != nil {
			return Config{}, err
		}
	}

	return config, nil
}

// defaultOutputPath generates the fallback destination: a timestamped CSV in
// the current working directory.
func defaultOutputPath() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolving working directory: %w", err)
	}
	name := fmt.Sprintf("repository-inventory-%d.csv", time.Now().UnixMilli())
	return filepath.Join(cwd, name), nil
}

// envInt64 parses an optional integer environment variable, returning 0 when
// unset.
func envInt64(key string) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

// splitPatterns splits a comma-separated pattern list, dropping empty
// entries.
func splitPatterns(value string) []string {
	if value == "" {
		return nil
	}
	var patterns []string
	for _, p := range strings.Split(value, ",") {
		if p = strings.TrimSpace(p); p != "" {
			patterns = append(patterns, p)
		}
	}
	return patterns
}
