// Package config loads the engine configuration. Files are JWCC (JSON with
// comments and trailing commas); precedence is defaults, then the global
// user config, then the project config, then CLI overrides. The result is a
// value snapshot: engine operations receive it as an argument and never
// consult ambient state.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"

	"tasktree/internal/item"
)

// FileName is the project config file name, looked up in the working
// directory.
const FileName = ".tasktree.json"

var (
	ErrConfigRead    = errors.New("cannot read config file")
	ErrConfigInvalid = errors.New("invalid config file")
	ErrNoTags        = errors.New("tags cannot be empty")
	ErrUnknownTag    = errors.New("active tag is not in the tag list")
	ErrNoInclude     = errors.New("include pattern cannot be empty")
)

// Config holds all configuration values consumed by the engine.
type Config struct {
	// Root is the directory tree to index. Defaults to the working
	// directory.
	Root string `json:"root,omitempty"`

	// Tags are the candidate tags, e.g. ["#task", "#note"].
	Tags []string `json:"tags,omitempty"`

	// Tag is the active tag selector. Empty selects wildcard mode: any
	// candidate tag qualifies a document.
	Tag string `json:"tag,omitempty"`

	// Include is the glob candidate filenames must match.
	Include string `json:"include,omitempty"`

	// Exclude lists directory names skipped during the walk, in addition
	// to hidden directories.
	Exclude []string `json:"exclude,omitempty"`
}

// Sources tracks which config files were loaded.
type Sources struct {
	Global  string // path to the global config if loaded
	Project string // path to the project config if loaded
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Tags:    []string{"#task"},
		Include: "*.md",
		Exclude: []string{"node_modules", "vendor", "dist", "build", "target", "out"},
	}
}

// TagConfig converts the candidate list into the classifier's snapshot,
// trimming entries and dropping empties.
func (c Config) TagConfig() item.TagConfig {
	tc := item.TagConfig{Active: strings.TrimSpace(c.Tag)}

	for _, tag := range c.Tags {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tc.Tags = append(tc.Tags, tag)
		}
	}

	return tc
}

// Load builds the effective configuration for workDir.
//
// Precedence, highest last:
//  1. Defaults
//  2. Global user config ($XDG_CONFIG_HOME/tasktree/config.json or
//     ~/.config/tasktree/config.json)
//  3. Project config (.tasktree.json in workDir), or the explicit file at
//     configPath when non-empty
//  4. Overrides (non-zero fields win)
func Load(workDir, configPath string, overrides Config, env []string) (Config, Sources, error) {
	cfg := Default()

	var sources Sources

	globalCfg, globalPath, err := loadFileIfExists(globalConfigPath(env))
	if err != nil {
		return Config{}, Sources{}, err
	}

	sources.Global = globalPath
	cfg = merge(cfg, globalCfg)

	projectPath := configPath
	if projectPath == "" {
		projectPath = filepath.Join(workDir, FileName)
	}

	projectCfg, projectPath, err := loadFileIfExists(projectPath)
	if err != nil {
		return Config{}, Sources{}, err
	}

	sources.Project = projectPath
	cfg = merge(cfg, projectCfg)
	cfg = merge(cfg, overrides)

	if cfg.Root == "" {
		cfg.Root = workDir
	}

	err = validate(cfg)
	if err != nil {
		return Config{}, Sources{}, err
	}

	return cfg, sources, nil
}

// globalConfigPath returns the global config location, honoring
// XDG_CONFIG_HOME from the provided env slice before the process
// environment. Empty when no home directory can be determined.
func globalConfigPath(env []string) string {
	for _, e := range env {
		if after, ok := strings.CutPrefix(e, "XDG_CONFIG_HOME="); ok {
			return filepath.Join(after, "tasktree", "config.json")
		}
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tasktree", "config.json")
	}

	home, err := os.UserHomeDir()
	if err == nil {
		return filepath.Join(home, ".config", "tasktree", "config.json")
	}

	return ""
}

// loadFileIfExists parses the config file at path. A missing file is not an
// error; the returned path is empty in that case.
func loadFileIfExists(path string) (Config, string, error) {
	if path == "" {
		return Config{}, "", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, "", nil
		}

		return Config{}, "", fmt.Errorf("%w: %s: %v", ErrConfigRead, path, err)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, "", fmt.Errorf("%w: %s: %v", ErrConfigInvalid, path, err)
	}

	var cfg Config

	err = json.Unmarshal(standardized, &cfg)
	if err != nil {
		return Config{}, "", fmt.Errorf("%w: %s: %v", ErrConfigInvalid, path, err)
	}

	return cfg, path, nil
}

// merge overlays non-zero fields of over onto base.
func merge(base, over Config) Config {
	if over.Root != "" {
		base.Root = over.Root
	}

	if len(over.Tags) > 0 {
		base.Tags = over.Tags
	}

	if over.Tag != "" {
		base.Tag = over.Tag
	}

	if over.Include != "" {
		base.Include = over.Include
	}

	if len(over.Exclude) > 0 {
		base.Exclude = over.Exclude
	}

	return base
}

func validate(cfg Config) error {
	tc := cfg.TagConfig()

	if len(tc.Tags) == 0 {
		return ErrNoTags
	}

	if tc.Active != "" {
		found := false

		for _, tag := range tc.Tags {
			if tag == tc.Active {
				found = true

				break
			}
		}

		if !found {
			return fmt.Errorf("%w: %s", ErrUnknownTag, tc.Active)
		}
	}

	if strings.TrimSpace(cfg.Include) == "" {
		return ErrNoInclude
	}

	return nil
}
