package site

import (
	"fmt"
	"html/template"
	"os"

	"git.home.luguber.info/inful/gallerybuilder/internal/config"
	gerrors "git.home.luguber.info/inful/gallerybuilder/internal/errors"
	"git.home.luguber.info/inful/gallerybuilder/internal/gallery"
	"git.home.luguber.info/inful/gallerybuilder/internal/markdown"
	"git.home.luguber.info/inful/gallerybuilder/internal/webpath"
	"git.home.luguber.info/inful/gallerybuilder/internal/work"
)

// RenderOverview renders the overview page listing all groups, sorted by the
// configured date order.
func RenderOverview(g *gallery.Gallery, cfg *config.Config, t *Templates) (*work.HTMLItem, error) {
	groups := g.SortedGroups(cfg.Order())
	views := make([]GroupView, 0, len(groups))
	for i := range groups {
		view, err := newGroupView(&groups[i], gallery.ThumbnailSmall, false)
		if err != nil {
			return nil, gerrors.WrapError(err, gerrors.CategoryRender, "build overview view").
				WithContext("group", groups[i].Path)
		}
		views = append(views, *view)
	}

	content, err := t.render("overview.html.tmpl", overviewView{
		Title:  cfg.Site.Title,
		Footer: template.HTML(cfg.Site.Footer),
		Groups: views,
	})
	if err != nil {
		return nil, gerrors.WrapError(err, gerrors.CategoryRender, "render overview page")
	}
	return &work.HTMLItem{Content: content, Path: "index.html"}, nil
}

// RenderGroupPage renders a group's detail page, or returns (nil, nil) for
// groups without a description document.
func RenderGroupPage(group *gallery.ImageGroup, cfg *config.Config, t *Templates) (*work.HTMLItem, error) {
	if !group.HasDescription() {
		return nil, nil
	}

	view, err := newGroupView(group, gallery.ThumbnailLarge, true)
	if err != nil {
		return nil, gerrors.WrapError(err, gerrors.CategoryRender, "build group view").
			WithContext("group", group.Path)
	}

	source, err := os.ReadFile(group.DescriptionFile)
	if err != nil {
		return nil, gerrors.WrapError(err, gerrors.CategoryFileSystem, "read description document").
			WithContext("path", group.DescriptionFile)
	}

	woven, err := markdown.Weave(source, toWeaverImages(view.Images))
	if err != nil {
		return nil, gerrors.WrapError(err, gerrors.CategoryValidation,
			fmt.Sprintf("weave description for group %q", group.Title)).
			WithContext("path", group.DescriptionFile)
	}
	view.Description = template.HTML(woven.HTML)
	view.Images = fromWeaverImages(woven.Images)

	content, err := t.render("group.html.tmpl", detailView{
		GroupView: *view,
		PageTitle: group.Title,
		Footer:    template.HTML(cfg.Site.Footer),
	})
	if err != nil {
		return nil, gerrors.WrapError(err, gerrors.CategoryRender, "render group page").
			WithContext("group", group.Path)
	}
	return &work.HTMLItem{Content: content, Path: webpath.Join(view.URL, "index.html")}, nil
}
