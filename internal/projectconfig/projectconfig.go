// Package projectconfig loads tokmd.yml, the project-level defaults
// file the `init` command scaffolds and every other command
// optionally reads to seed its module-roots/preset/redaction flags.
// Same yaml.v3 config-loading idiom as the teacher's
// internal/config.ProjectConfig, rebuilt on this spec's schema
// (ignore roots, module roots/depth, preset defaults) instead of
// scoring-weight overrides.
package projectconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectConfig is the on-disk shape of tokmd.yml.
type ProjectConfig struct {
	Version     int      `yaml:"version"`
	ModuleRoots []string `yaml:"module_roots"`
	ModuleDepth int      `yaml:"module_depth"`
	Excluded    []string `yaml:"excluded"`
	Preset      string   `yaml:"preset"`
	Redact      string   `yaml:"redact"`
}

// Default returns the built-in defaults used when no tokmd.yml exists.
func Default() ProjectConfig {
	return ProjectConfig{
		Version:     1,
		ModuleRoots: nil,
		ModuleDepth: 2,
		Preset:      "receipt",
		Redact:      "none",
	}
}

const fileName = "tokmd.yml"

// Load reads tokmd.yml from dir, or from explicitPath if given.
// Returns Default() with no error when no config file exists --
// tokmd runs with sane defaults on a tree that never opted in.
func Load(dir, explicitPath string) (ProjectConfig, error) {
	path := explicitPath
	if path == "" {
		path = filepath.Join(dir, fileName)
		if _, err := os.Stat(path); err != nil {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return ProjectConfig{}, fmt.Errorf("read project config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ProjectConfig{}, fmt.Errorf("parse project config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return ProjectConfig{}, fmt.Errorf("invalid project config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks tokmd.yml's values are structurally sane.
func (c ProjectConfig) Validate() error {
	if c.Version != 0 && c.Version != 1 {
		return fmt.Errorf("unsupported config version %d (expected 1)", c.Version)
	}
	if c.ModuleDepth < 0 {
		return fmt.Errorf("module_depth must be >= 0, got %d", c.ModuleDepth)
	}
	switch c.Redact {
	case "", "none", "paths", "all":
	default:
		return fmt.Errorf("redact must be one of none/paths/all, got %q", c.Redact)
	}
	return nil
}

// Template is a named starter tokmd.yml the `init` command writes.
type Template string

const (
	TemplateRust Template = "rust"
	TemplateNode Template = "node"
	TemplateMono Template = "mono"
)

// templateConfigs gives each starter template reasonable module roots
// for its ecosystem's conventional layout.
var templateConfigs = map[Template]ProjectConfig{
	TemplateRust: {
		Version:     1,
		ModuleRoots: []string{"crates", "src"},
		ModuleDepth: 2,
		Preset:      "receipt",
		Redact:      "none",
	},
	TemplateNode: {
		Version:     1,
		ModuleRoots: []string{"packages", "apps", "src"},
		ModuleDepth: 2,
		Preset:      "receipt",
		Redact:      "none",
	},
	TemplateMono: {
		Version:     1,
		ModuleRoots: []string{"services", "libs", "apps", "packages"},
		ModuleDepth: 2,
		Excluded:    []string{"**/dist/**", "**/build/**"},
		Preset:      "architecture",
		Redact:      "none",
	},
}

// Render produces the YAML bytes for a template, falling back to
// Default() for an unrecognized name.
func Render(t Template) ([]byte, error) {
	cfg, ok := templateConfigs[t]
	if !ok {
		cfg = Default()
	}
	return yaml.Marshal(cfg)
}

// Write renders template t to <dir>/tokmd.yml. If force is false and
// the file already exists, Write returns an error instead of
// overwriting in-progress configuration.
func Write(dir string, t Template, force bool) (string, error) {
	path := filepath.Join(dir, fileName)
	if !force {
		if _, err := os.Stat(path); err == nil {
			return path, fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	data, err := Render(t)
	if err != nil {
		return path, err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return path, err
	}
	return path, nil
}
