// Package work models the output side of a build as uniform work items and
// executes them: HTML pages, full-size image copies, generated thumbnails,
// and static assets. Items are created read-only by the renderer and the
// asset planner, consumed exactly once by the scheduler, then discarded.
package work

import "git.home.luguber.info/inful/gallerybuilder/internal/gallery"

// Item is one schedulable unit of output production. The variant set is
// closed: HTMLItem, ImageItem, ThumbnailItem, StaticItem. The writer matches
// it exhaustively; adding a variant means touching every switch.
type Item interface {
	// OutputPath returns the destination relative to the output root.
	OutputPath() string
	// Kind returns the variant name used in logs and dry-run reports.
	Kind() string

	workItem()
}

// HTMLItem is a rendered page ready to be written to disk.
type HTMLItem struct {
	Content string
	Path    string
}

func (i *HTMLItem) OutputPath() string { return i.Path }
func (i *HTMLItem) Kind() string       { return "HTML" }
func (i *HTMLItem) workItem()          {}

// ImageItem is a full-size copy of a source image.
type ImageItem struct {
	SourcePath string
	Path       string
}

func (i *ImageItem) OutputPath() string { return i.Path }
func (i *ImageItem) Kind() string       { return "Image" }
func (i *ImageItem) workItem()          {}

// ThumbnailItem is a resized rendition of a source image produced by the
// external conversion tool.
type ThumbnailItem struct {
	SourcePath string
	Path       string
	Thumbnail  gallery.ThumbnailKind
}

func (i *ThumbnailItem) OutputPath() string { return i.Path }
func (i *ThumbnailItem) Kind() string       { return "Thumbnail" }
func (i *ThumbnailItem) workItem()          {}

// StaticItem is an embedded site asset (stylesheet) written verbatim.
type StaticItem struct {
	Content []byte
	Path    string
}

func (i *StaticItem) OutputPath() string { return i.Path }
func (i *StaticItem) Kind() string       { return "Static" }
func (i *StaticItem) workItem()          {}
