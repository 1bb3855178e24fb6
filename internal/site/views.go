package site

import (
	"fmt"
	"html/template"

	"git.home.luguber.info/inful/gallerybuilder/internal/assets"
	"git.home.luguber.info/inful/gallerybuilder/internal/gallery"
	"git.home.luguber.info/inful/gallerybuilder/internal/markdown"
	"git.home.luguber.info/inful/gallerybuilder/internal/webpath"
)

// ImageView describes a single image to the templates.
type ImageView struct {
	Name string
	// URL is relative to the page embedding the view.
	URL string
	// Thumbnail is relative to the site root.
	Thumbnail string
	Anchor    string
}

// GroupView describes an image group to the templates.
type GroupView struct {
	// Title is empty when the group's only image already carries the same
	// name; repeating it as a heading would be redundant.
	Title string
	Date  string
	// URL is the group's slugged directory relative to the site root.
	URL string
	// DetailURL is the group's page, or "" when the group has none.
	DetailURL   string
	Images      []ImageView
	Description template.HTML
}

// overviewView is the root data for the overview template.
type overviewView struct {
	Title  string
	Footer template.HTML
	Groups []GroupView
}

// detailView is the root data for the group page template.
type detailView struct {
	GroupView
	PageTitle string
	Footer    template.HTML
}

// newGroupView builds the view record for one group. kind picks the
// thumbnail rendition, pageLocal controls whether image URLs are relative to
// the group's own page (detail) or to the site root (overview).
func newGroupView(group *gallery.ImageGroup, kind gallery.ThumbnailKind, pageLocal bool) (*GroupView, error) {
	groupSlug, err := webpath.ToWebSegment(group.Path)
	if err != nil {
		return nil, fmt.Errorf("encode group path %q: %w", group.Path, err)
	}

	images := make([]ImageView, 0, len(group.Images))
	for _, img := range group.Images {
		view, err := newImageView(&img, groupSlug, kind, pageLocal)
		if err != nil {
			return nil, err
		}
		images = append(images, view)
	}

	view := &GroupView{
		Title:  group.Title,
		Date:   group.Date.Format(gallery.DateFormat),
		URL:    groupSlug,
		Images: images,
	}
	if group.HasDescription() {
		view.DetailURL = webpath.Join(groupSlug, "index.html")
	}
	// Suppress the title if it's redundant.
	if len(group.Images) == 1 && group.Images[0].Name == group.Title {
		view.Title = ""
	}
	return view, nil
}

func newImageView(img *gallery.Image, groupSlug string, kind gallery.ThumbnailKind, pageLocal bool) (ImageView, error) {
	fileSlug, err := webpath.ToWebSegment(img.FileName)
	if err != nil {
		return ImageView{}, fmt.Errorf("encode image file %q: %w", img.FileName, err)
	}
	anchor, err := webpath.ToWebSegment(img.Name)
	if err != nil {
		return ImageView{}, fmt.Errorf("encode image name %q: %w", img.Name, err)
	}

	url := webpath.Join(groupSlug, fileSlug)
	if pageLocal {
		url = fileSlug
	}
	return ImageView{
		Name:      img.Name,
		URL:       url,
		Thumbnail: assets.ThumbnailPath(groupSlug, fileSlug, kind),
		Anchor:    anchor,
	}, nil
}

func toWeaverImages(images []ImageView) []markdown.Image {
	out := make([]markdown.Image, 0, len(images))
	for _, img := range images {
		out = append(out, markdown.Image{
			Name:      img.Name,
			URL:       img.URL,
			Thumbnail: img.Thumbnail,
			Anchor:    img.Anchor,
		})
	}
	return out
}

func fromWeaverImages(images []markdown.Image) []ImageView {
	out := make([]ImageView, 0, len(images))
	for _, img := range images {
		out = append(out, ImageView{
			Name:      img.Name,
			URL:       img.URL,
			Thumbnail: img.Thumbnail,
			Anchor:    img.Anchor,
		})
	}
	return out
}
