package commands

import (
	"fmt"
	"log/slog"

	gerrors "git.home.luguber.info/inful/gallerybuilder/internal/errors"
	"git.home.luguber.info/inful/gallerybuilder/internal/scan"
)

// ScanCmd implements the 'scan' command: discovery only, no output writes.
type ScanCmd struct {
	sourceFlags
}

func (s *ScanCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root, &s.sourceFlags)
	if err != nil {
		return gerrors.WrapError(err, gerrors.CategoryConfig, "load configuration")
	}
	if err := cfg.Validate(); err != nil {
		return gerrors.WrapError(err, gerrors.CategoryConfig, "invalid configuration")
	}

	g, err := scan.Discover(cfg.Input)
	if err != nil {
		return err
	}
	fmt.Print(g.String())
	slog.Info("Scan complete", slog.Int("groups", len(g.Groups)))
	return nil
}
