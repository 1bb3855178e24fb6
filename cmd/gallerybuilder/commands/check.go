package commands

import (
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/gallerybuilder/internal/assets"
	gerrors "git.home.luguber.info/inful/gallerybuilder/internal/errors"
	"git.home.luguber.info/inful/gallerybuilder/internal/linkcheck"
	"git.home.luguber.info/inful/gallerybuilder/internal/scan"
	"git.home.luguber.info/inful/gallerybuilder/internal/site"
	"git.home.luguber.info/inful/gallerybuilder/internal/util/sets"
)

// CheckCmd implements the 'check' command: render the whole site in memory
// and verify that every internal reference points at a planned artifact.
// Nothing is written to disk.
type CheckCmd struct {
	sourceFlags
}

func (c *CheckCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root, &c.sourceFlags)
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
	templates, err := site.LoadTemplates()
	if err != nil {
		return gerrors.WrapError(err, gerrors.CategoryInternal, "load templates")
	}

	pages := make(map[string][]byte)
	produced := sets.New[string]()

	for i := range g.Groups {
		group := &g.Groups[i]
		page, err := site.RenderGroupPage(group, cfg, templates)
		if err != nil {
			return err
		}
		if page != nil {
			pages[page.Path] = []byte(page.Content)
			produced.Add(page.Path)
		}
		items, err := assets.Plan(group)
		if err != nil {
			return gerrors.WrapError(err, gerrors.CategoryValidation, "plan image artifacts").
				WithContext("group", group.Path)
		}
		for _, item := range items {
			produced.Add(item.OutputPath())
		}
	}
	for _, item := range site.StaticItems() {
		produced.Add(item.OutputPath())
	}

	overview, err := site.RenderOverview(g, cfg, templates)
	if err != nil {
		return err
	}
	pages[overview.Path] = []byte(overview.Content)
	produced.Add(overview.Path)

	problems := linkcheck.Verify(pages, produced)
	for _, p := range problems {
		fmt.Println(p)
	}
	if len(problems) > 0 {
		return gerrors.ValidationError(
			fmt.Sprintf("%d unresolved references across %d pages", len(problems), len(pages)))
	}

	slog.Info("Site check passed",
		slog.Int("pages", len(pages)),
		slog.Int("artifacts", len(produced)))
	return nil
}
