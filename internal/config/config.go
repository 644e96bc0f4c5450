package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// FileName is the base name of the optional configuration file. Either
// smooth.yaml or smooth.hcl is read from the working directory; YAML wins
// when both exist.
const FileName = "smooth"

// EnvPrefix prefixes environment overrides, e.g. SMOOTH_BRANCH.
const EnvPrefix = "SMOOTH"

// Config holds the CLI settings. Values come from defaults, then the config
// file, then the environment.
type Config struct {
	Blueprint           string              `mapstructure:"blueprint" yaml:"blueprint"`
	Branch              string              `mapstructure:"branch" yaml:"branch"`
	AutoInstall         bool                `mapstructure:"auto_install" yaml:"auto_install"`
	PackageManager      string              `mapstructure:"package_manager" yaml:"package_manager,omitempty"`
	FrameworkDependency string              `mapstructure:"framework_dependency" yaml:"framework_dependency"`
	Directories         map[string][]string `mapstructure:"directories" yaml:"directories"`
}

// hclConfig mirrors Config for smooth.hcl; pointers tell unset from zero.
type hclConfig struct {
	Blueprint           *string             `hcl:"blueprint,optional"`
	Branch              *string             `hcl:"branch,optional"`
	AutoInstall         *bool               `hcl:"auto_install,optional"`
	PackageManager      *string             `hcl:"package_manager,optional"`
	FrameworkDependency *string             `hcl:"framework_dependency,optional"`
	Directories         map[string][]string `hcl:"directories,optional"`
}

// ErrExists is returned by WriteDefault when the file is already there.
var ErrExists = errors.New("configuration file already exists")

var packageManagers = map[string]bool{"": true, "npm": true, "yarn": true, "pnpm": true}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		Blueprint:           "smoothjs/smooth-app",
		Branch:              "master",
		AutoInstall:         true,
		FrameworkDependency: "@smoothjs/smooth",
		Directories: map[string][]string{
			"controller": {"app/controllers", "controllers"},
			"entity":     {"app/entities", "entities"},
			"hook":       {"app/hooks", "hooks"},
			"service":    {"app/services", "services"},
			"filter":     {"app/filters", "filters"},
			"event":      {"app/events", "events"},
			"listener":   {"app/listeners", "listeners"},
		},
	}
}

// Load reads the configuration for the project in dir.
func Load(dir string) (*Config, error) {
	cfg := Defaults()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	yamlPath := filepath.Join(dir, FileName+".yaml")
	hclPath := filepath.Join(dir, FileName+".hcl")

	switch {
	case fileExists(yamlPath):
		v.SetConfigFile(yamlPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", yamlPath, err)
		}
	case fileExists(hclPath):
		if err := decodeHCL(hclPath, cfg); err != nil {
			return nil, err
		}
	}

	v.SetDefault("blueprint", cfg.Blueprint)
	v.SetDefault("branch", cfg.Branch)
	v.SetDefault("auto_install", cfg.AutoInstall)
	v.SetDefault("package_manager", cfg.PackageManager)
	v.SetDefault("framework_dependency", cfg.FrameworkDependency)
	for kind, dirs := range cfg.Directories {
		v.SetDefault("directories."+kind, dirs)
	}

	var out Config
	if err := v.Unmarshal(&out); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &out, nil
}

func decodeHCL(path string, cfg *Config) error {
	var file hclConfig
	if err := hclsimple.DecodeFile(path, nil, &file); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if file.Blueprint != nil {
		cfg.Blueprint = *file.Blueprint
	}
	if file.Branch != nil {
		cfg.Branch = *file.Branch
	}
	if file.AutoInstall != nil {
		cfg.AutoInstall = *file.AutoInstall
	}
	if file.PackageManager != nil {
		cfg.PackageManager = *file.PackageManager
	}
	if file.FrameworkDependency != nil {
		cfg.FrameworkDependency = *file.FrameworkDependency
	}
	for kind, dirs := range file.Directories {
		cfg.Directories[kind] = dirs
	}
	return nil
}

// HasFile reports whether dir holds smooth.yaml or smooth.hcl.
func HasFile(dir string) bool {
	return fileExists(filepath.Join(dir, FileName+".yaml")) || fileExists(filepath.Join(dir, FileName+".hcl"))
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	if c.Blueprint == "" {
		return errors.New("blueprint cannot be empty")
	}
	if c.FrameworkDependency == "" {
		return errors.New("framework_dependency cannot be empty")
	}
	if !packageManagers[c.PackageManager] {
		return fmt.Errorf("package_manager must be npm, yarn or pnpm, got %q", c.PackageManager)
	}
	for kind, dirs := range c.Directories {
		for _, dir := range dirs {
			if filepath.IsAbs(dir) {
				return fmt.Errorf("directories.%s: %q must be relative to the project root", kind, dir)
			}
		}
	}
	return nil
}

// WriteDefault writes the default configuration as YAML to dir. An existing
// file is only replaced when overwrite is true.
func WriteDefault(dir string, overwrite bool) (string, error) {
	path := filepath.Join(dir, FileName+".yaml")
	if fileExists(path) && !overwrite {
		return path, fmt.Errorf("%w: %s", ErrExists, path)
	}

	data, err := yaml.Marshal(Defaults())
	if err != nil {
		return path, fmt.Errorf("failed to encode configuration: %w", err)
	}

	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return path, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return path, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
