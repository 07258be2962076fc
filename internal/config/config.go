// Package config provides layered configuration for the changelog CLI using
// koanf. Values are loaded with priority: environment variables >
// project config (.changelog.yml) > user config (~/.config/changelog/config.yml)
// > defaults. Command-line flags override all of these at the CLI layer.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Configuration holds every setting the changelog CLI reads.
type Configuration struct {
	// Repo is the path to the git repository to generate from.
	Repo string `koanf:"repo"`

	// Output is the changelog file path, relative to the working directory
	// unless absolute.
	Output string `koanf:"output"`

	// URL is the base repository URL used in rendered entry links. When
	// empty it is resolved from the repository's origin remote.
	URL string `koanf:"url"`

	// Follow lists path scopes; each gets its own section per run. Empty
	// means one section covering the whole repository.
	Follow []string `koanf:"follow"`

	// Verbose enables debug logging.
	Verbose bool `koanf:"verbose"`
}

// LoadOptions configures how configuration is loaded.
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path
	// (default: .changelog.yml).
	ProjectConfigPath string
}

// Load loads configuration from user, project, and environment sources.
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options.
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")

	for key, value := range Defaults() {
		k.Set(key, value)
	}

	if userPath, err := UserConfigPath(); err == nil && fileExists(userPath) {
		if err := k.Load(file.Provider(userPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading user config: %w", err)
		}
	}

	projectPath := ProjectConfigPath()
	if opts.ProjectConfigPath != "" {
		projectPath = opts.ProjectConfigPath
	}
	if fileExists(projectPath) {
		if err := k.Load(file.Provider(projectPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading project config: %w", err)
		}
	}

	if err := k.Load(env.Provider("CHANGELOG_", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("loading environment config: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// envTransform converts environment variable names to config keys.
// Example: CHANGELOG_OUTPUT -> output
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "CHANGELOG_"))
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
