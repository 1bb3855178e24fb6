// Package assets decides which image artifacts a build must produce: one
// full-size copy per image, a small thumbnail for the overview, and a large
// thumbnail only when the group has its own detail page. Planning is a pure
// computation over the gallery model; staleness is evaluated later, at write
// time, so a dry run can report intended work from reads alone.
package assets

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/gallerybuilder/internal/gallery"
	"git.home.luguber.info/inful/gallerybuilder/internal/webpath"
	"git.home.luguber.info/inful/gallerybuilder/internal/work"
)

// thumbnailExt is the lossy web format all thumbnails are re-encoded to,
// regardless of source format.
const thumbnailExt = ".webp"

// thumbnailRoot is the top-level output directory for generated thumbnails.
const thumbnailRoot = "thumbnails"

// Plan returns the work items for all of a group's image artifacts.
func Plan(group *gallery.ImageGroup) ([]work.Item, error) {
	groupSlug, err := webpath.ToWebSegment(group.Path)
	if err != nil {
		return nil, fmt.Errorf("encode group path %q: %w", group.Path, err)
	}

	items := make([]work.Item, 0, 3*len(group.Images))
	for _, img := range group.Images {
		fileSlug, err := webpath.ToWebSegment(img.FileName)
		if err != nil {
			return nil, fmt.Errorf("encode image file %q in group %q: %w", img.FileName, group.Path, err)
		}

		items = append(items, &work.ImageItem{
			SourcePath: img.Path,
			Path:       webpath.Join(groupSlug, fileSlug),
		})
		items = append(items, &work.ThumbnailItem{
			SourcePath: img.Path,
			Path:       ThumbnailPath(groupSlug, fileSlug, gallery.ThumbnailSmall),
			Thumbnail:  gallery.ThumbnailSmall,
		})
		// A large thumbnail is only ever linked from a detail page; skip it
		// for groups that won't have one.
		if group.HasDescription() {
			items = append(items, &work.ThumbnailItem{
				SourcePath: img.Path,
				Path:       ThumbnailPath(groupSlug, fileSlug, gallery.ThumbnailLarge),
				Thumbnail:  gallery.ThumbnailLarge,
			})
		}
	}
	return items, nil
}

// ThumbnailPath returns the output-root-relative path of a thumbnail, given
// already-encoded group and file segments.
func ThumbnailPath(groupSlug, fileSlug string, kind gallery.ThumbnailKind) string {
	return webpath.Join(thumbnailRoot, kind.String(), groupSlug, replaceExt(fileSlug, thumbnailExt))
}

func replaceExt(fileSlug, ext string) string {
	if idx := strings.LastIndexByte(fileSlug, '.'); idx > 0 {
		return fileSlug[:idx] + ext
	}
	return fileSlug + ext
}
