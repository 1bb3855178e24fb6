// Package config loads and validates gallerybuilder configuration.
//
// Configuration comes from an optional YAML file (gallery.yaml by default)
// with environment variable expansion, overridden by CLI flags. A missing
// config file is not an error; flags alone are enough to run a build.
package config

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/gallerybuilder/internal/gallery"
)

// RunMode selects between writing output files and reporting intended work.
type RunMode int

const (
	Normal RunMode = iota
	DryRun
)

func (m RunMode) String() string {
	if m == DryRun {
		return "dry-run"
	}
	return "normal"
}

// Config represents the application configuration.
type Config struct {
	Input  string       `yaml:"input"`
	Output OutputConfig `yaml:"output"`
	Site   SiteConfig   `yaml:"site"`
	Build  BuildConfig  `yaml:"build"`

	// Mode is set from the CLI, never from the file.
	Mode RunMode `yaml:"-"`
}

// OutputConfig represents output configuration.
type OutputConfig struct {
	Directory string `yaml:"directory"`
}

// SiteConfig carries the page-level presentation settings.
type SiteConfig struct {
	Title string `yaml:"title"`
	// Footer is an HTML snippet shown at the bottom of every page.
	Footer string `yaml:"footer,omitempty"`
	// Order is "most-recent-first" (default) or "oldest-first".
	Order string `yaml:"order,omitempty"`
}

// BuildConfig controls the work scheduler.
type BuildConfig struct {
	// Workers bounds the concurrent artifact fan-out. 0 means one worker
	// per CPU.
	Workers int `yaml:"workers,omitempty"`
}

// Load loads configuration from the specified file. A missing file yields a
// default configuration.
func Load(configPath string) (*Config, error) {
	// Load .env if present; absence is fine.
	loadEnvFile()

	cfg := &Config{}
	data, err := os.ReadFile(configPath)
	if err != nil {
		// Only a missing file falls back to defaults; an unreadable one must
		// not be silently ignored.
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config %s: %w", configPath, err)
		}
	} else {
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, fmt.Errorf("unmarshal config %s: %w", configPath, err)
		}
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Output.Directory == "" {
		c.Output.Directory = "./site"
	}
	if c.Site.Title == "" {
		c.Site.Title = "Gallery"
	}
	if c.Site.Order == "" {
		c.Site.Order = "most-recent-first"
	}
	if c.Build.Workers <= 0 {
		c.Build.Workers = runtime.NumCPU()
	}
}

// Validate checks settings that cannot be defaulted away.
func (c *Config) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("input directory is required (flag --input or config key 'input')")
	}
	if _, err := ParseOrder(c.Site.Order); err != nil {
		return err
	}
	return nil
}

// Order returns the parsed group ordering. Call Validate first.
func (c *Config) Order() gallery.Order {
	order, err := ParseOrder(c.Site.Order)
	if err != nil {
		return gallery.MostRecentFirst
	}
	return order
}

// ParseOrder parses the order config value.
func ParseOrder(s string) (gallery.Order, error) {
	switch s {
	case "", "most-recent-first":
		return gallery.MostRecentFirst, nil
	case "oldest-first":
		return gallery.OldestFirst, nil
	default:
		return gallery.MostRecentFirst, fmt.Errorf("invalid site order %q (want most-recent-first or oldest-first)", s)
	}
}

// Init writes a starter configuration file.
func Init(configPath string, force bool) error {
	if !force {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
		}
	}
	return os.WriteFile(configPath, []byte(starterConfig), 0o644)
}

const starterConfig = `# gallerybuilder configuration
input: ./photos
output:
  directory: ./site
site:
  title: "My Gallery"
  # footer: "&copy; 2026"
  # order: most-recent-first
build:
  # workers: 4
`
