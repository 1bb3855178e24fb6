package commands

import (
	"log/slog"

	"git.home.luguber.info/inful/gallerybuilder/internal/config"
	gerrors "git.home.luguber.info/inful/gallerybuilder/internal/errors"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	if err := config.Init(root.Config, i.Force); err != nil {
		return gerrors.WrapError(err, gerrors.CategoryConfig, "initialize configuration")
	}
	slog.Info("Configuration file written", slog.String("path", root.Config))
	return nil
}
