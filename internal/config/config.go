// Package config provides hierarchical configuration for relkit using koanf.
// Values are loaded with priority: environment variables > project config
// (.relkit/config.yml) > user config (~/.config/relkit/config.yml) >
// defaults. Both YAML and JSON config files are supported.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// envPrefix is the prefix for environment overrides. Keys map lowercased
// with "__" as the nesting delimiter: RELKIT_DEFAULT_BRANCH sets
// default_branch, RELKIT_GRAPH__HEADING sets graph.heading.
const envPrefix = "RELKIT_"

// GraphConfig controls the graph command.
type GraphConfig struct {
	// Readme is the document the graph section is written into.
	Readme string `koanf:"readme"`
	// Heading is the section heading the mermaid block lives under.
	Heading string `koanf:"heading"`
	// SubjectLimit is the commit subject truncation threshold in runes.
	SubjectLimit int `koanf:"subject_limit"`
	// MaxReleases caps how many tags the release graph includes.
	MaxReleases int `koanf:"max_releases"`
}

// ChangelogConfig controls the changelog command.
type ChangelogConfig struct {
	// Path is the changelog document.
	Path string `koanf:"path"`
	// GroupOrder optionally reorders section titles in the output.
	GroupOrder []string `koanf:"group_order"`
	// RulesFile optionally points at a YAML section-rules file.
	RulesFile string `koanf:"rules_file"`
}

// Configuration is the resolved relkit configuration.
type Configuration struct {
	// DefaultBranch is the mainline branch graphs and changelogs follow.
	DefaultBranch string `koanf:"default_branch"`

	Graph     GraphConfig     `koanf:"graph"`
	Changelog ChangelogConfig `koanf:"changelog"`

	// MaxHistoryEntries caps the run-history file; oldest entries are
	// pruned past the limit.
	MaxHistoryEntries int `koanf:"max_history_entries"`
}

// Load resolves configuration from defaults, the user config file, the
// project config file, and the environment, in ascending priority.
// projectPath overrides the project config location; an empty string uses
// .relkit/config.yml. Missing files are not an error.
func Load(projectPath string) (*Configuration, error) {
	k := koanf.New(".")

	userPath, err := UserConfigPath()
	if err == nil {
		if err := loadFile(k, userPath); err != nil {
			return nil, err
		}
	}

	if projectPath == "" {
		projectPath = ProjectConfigPath()
		if _, err := os.Stat(projectPath); os.IsNotExist(err) {
			projectPath = LegacyProjectConfigPath()
		}
	}
	if err := loadFile(k, projectPath); err != nil {
		return nil, err
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading environment overrides: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decoding configuration: %w", err)
	}
	return cfg, nil
}

// loadFile merges one config file into k, picking the parser by extension.
// A missing file is skipped.
func loadFile(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	var parser koanf.Parser = yaml.Parser()
	if strings.HasSuffix(path, ".json") {
		parser = json.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return fmt.Errorf("loading config %s: %w", path, err)
	}
	return nil
}

// envKey maps an environment variable to a koanf key.
func envKey(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// UserConfigPath returns the XDG-compliant user config file location.
func UserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "relkit", "config.yml"), nil
}

// ProjectConfigPath returns the project config location relative to the
// working directory.
func ProjectConfigPath() string {
	return filepath.Join(".relkit", "config.yml")
}

// LegacyProjectConfigPath returns the legacy JSON project config location.
func LegacyProjectConfigPath() string {
	return filepath.Join(".relkit", "config.json")
}

// StateDir returns the directory relkit keeps per-project state in, such as
// the run history file.
func StateDir() string {
	return ".relkit"
}
