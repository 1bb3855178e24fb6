// Package commands wires the CLI surface to the gallery pipeline.
package commands

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/gallerybuilder/internal/config"
)

// Global context passed to subcommands if we need to share global state later.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"gallery.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build BuildCmd `cmd:"" help:"Generate the gallery website from the input directory"`
	Scan  ScanCmd  `cmd:"" help:"Scan the input directory and print the discovered gallery"`
	Check CheckCmd `cmd:"" help:"Render the site in memory and verify internal references"`
	Init  InitCmd  `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// sourceFlags are the flags shared by every command that reads the input
// directory. Flag values override the config file.
type sourceFlags struct {
	Input string `short:"i" help:"Source directory containing dated photo folders"`
}

func (f *sourceFlags) apply(cfg *config.Config) {
	if f.Input != "" {
		cfg.Input = f.Input
	}
}

// loadConfig loads the config file and applies shared flag overrides.
func loadConfig(root *CLI, flags *sourceFlags) (*config.Config, error) {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return nil, err
	}
	if flags != nil {
		flags.apply(cfg)
	}
	return cfg, nil
}
