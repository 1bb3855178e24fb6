package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/gallerybuilder/internal/assets"
	"git.home.luguber.info/inful/gallerybuilder/internal/config"
	gerrors "git.home.luguber.info/inful/gallerybuilder/internal/errors"
	"git.home.luguber.info/inful/gallerybuilder/internal/gallery"
	"git.home.luguber.info/inful/gallerybuilder/internal/logfields"
	"git.home.luguber.info/inful/gallerybuilder/internal/scan"
	"git.home.luguber.info/inful/gallerybuilder/internal/site"
	"git.home.luguber.info/inful/gallerybuilder/internal/work"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	sourceFlags
	Output string `short:"o" help:"Output directory for the generated site"`
	Title  string `help:"Top-level page title"`
	Footer string `help:"HTML snippet for the page footer"`
	Order  string `help:"Group ordering: most-recent-first or oldest-first"`
	Jobs   int    `short:"j" help:"Concurrent artifact workers (default: one per CPU)"`
	DryRun bool   `name:"dry-run" help:"Report intended writes without touching the output directory"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root, &b.sourceFlags)
	if err != nil {
		return gerrors.WrapError(err, gerrors.CategoryConfig, "load configuration")
	}
	if b.Output != "" {
		cfg.Output.Directory = b.Output
	}
	if b.Title != "" {
		cfg.Site.Title = b.Title
	}
	if b.Footer != "" {
		cfg.Site.Footer = b.Footer
	}
	if b.Order != "" {
		cfg.Site.Order = b.Order
	}
	if b.Jobs > 0 {
		cfg.Build.Workers = b.Jobs
	}
	if b.DryRun {
		cfg.Mode = config.DryRun
	}
	if err := cfg.Validate(); err != nil {
		return gerrors.WrapError(err, gerrors.CategoryConfig, "invalid configuration")
	}
	return RunBuild(context.Background(), cfg)
}

// RunBuild executes one full generation run: scan, render, plan, schedule.
func RunBuild(ctx context.Context, cfg *config.Config) error {
	start := time.Now()
	logger := slog.Default().With(logfields.RunID(uuid.NewString()))

	logger.Info("Starting gallery build",
		logfields.Path(cfg.Input),
		slog.String("output", cfg.Output.Directory),
		slog.String("mode", cfg.Mode.String()),
		logfields.Workers(cfg.Build.Workers))

	g, err := scan.Discover(cfg.Input)
	if err != nil {
		return err
	}

	templates, err := site.LoadTemplates()
	if err != nil {
		return gerrors.WrapError(err, gerrors.CategoryInternal, "load templates")
	}

	batch, err := planBatch(g, cfg, templates, logger)
	if err != nil {
		return err
	}

	writer := work.NewWriter(cfg.Output.Directory, cfg.Mode)
	scheduler := work.NewScheduler(cfg.Build.Workers).WithLogger(logger)

	// The overview is rendered and written last: its view may reference
	// thumbnail state that phase one only just materialized.
	err = scheduler.Run(ctx, writer, batch, func() (work.Item, error) {
		return site.RenderOverview(g, cfg, templates)
	})
	if err != nil {
		return err
	}

	logger.Info("Gallery build complete",
		slog.Int("groups", len(g.Groups)),
		logfields.Items(len(batch)+1),
		logfields.DurationMS(float64(time.Since(start).Milliseconds())))
	return nil
}

// planBatch collects every phase-one work item: detail pages, image copies,
// thumbnails, and static assets. The overview page is excluded on purpose.
func planBatch(g *gallery.Gallery, cfg *config.Config, templates *site.Templates, logger *slog.Logger) ([]work.Item, error) {
	var batch []work.Item
	for i := range g.Groups {
		group := &g.Groups[i]

		page, err := site.RenderGroupPage(group, cfg, templates)
		if err != nil {
			return nil, err
		}
		if page != nil {
			batch = append(batch, page)
		}

		items, err := assets.Plan(group)
		if err != nil {
			return nil, gerrors.WrapError(err, gerrors.CategoryValidation, "plan image artifacts").
				WithContext("group", group.Path)
		}
		batch = append(batch, items...)

		logger.Debug("Planned group artifacts",
			logfields.Group(group.Path),
			logfields.Items(len(items)))
	}
	batch = append(batch, site.StaticItems()...)
	return batch, nil
}
