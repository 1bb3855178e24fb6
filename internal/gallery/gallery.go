// Package gallery defines the data model shared by the scanner and the
// output pipeline: a gallery of dated image groups, each holding an ordered
// list of images and an optional markdown description file.
//
// Values of these types are built once per run by the scanner and treated as
// read-only everywhere else.
package gallery

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Image is a single source image inside a group.
type Image struct {
	// Name is the user-visible name of the image (the file stem).
	Name string
	// Path is the full path to the source image.
	Path string
	// FileName is the file name of the source image relative to its group.
	FileName string
}

// ImageGroup is a dated folder of images treated as one gallery unit.
type ImageGroup struct {
	// Path is the group directory relative to the input root. It doubles as
	// the group's unique identifier and never carries a trailing slash.
	Path string
	// Title is the user-visible title. Never empty.
	Title string
	// Date is the date parsed from the directory name.
	Date time.Time
	// Images is sorted alphabetically by display name.
	Images []Image
	// DescriptionFile is the path to the group's index.md, or "" if the
	// group has none.
	DescriptionFile string
}

// HasDescription reports whether the group carries a markdown description
// document and therefore gets its own detail page.
func (g *ImageGroup) HasDescription() bool {
	return g.DescriptionFile != ""
}

func (g *ImageGroup) String() string {
	names := make([]string, 0, len(g.Images))
	for _, img := range g.Images {
		names = append(names, img.Name)
	}
	return fmt.Sprintf("%q (%s) -> [%s] [%s]",
		g.Title, g.Date.Format(DateFormat), strings.Join(names, ", "), g.DescriptionFile)
}

// Gallery is the complete set of image groups discovered in the input
// directory.
type Gallery struct {
	Groups []ImageGroup
}

func (g *Gallery) String() string {
	var b strings.Builder
	for i := range g.Groups {
		b.WriteString(g.Groups[i].String())
		b.WriteByte('\n')
	}
	return b.String()
}

// DateFormat is the ISO date layout used in directory names and rendered
// pages.
const DateFormat = "2006-01-02"

// Order controls how groups are sorted on the overview page.
type Order int

const (
	MostRecentFirst Order = iota
	OldestFirst
)

func (o Order) String() string {
	if o == OldestFirst {
		return "oldest-first"
	}
	return "most-recent-first"
}

// SortedGroups returns a copy of the group list sorted by date in the given
// direction. Groups sharing a date are ordered by title, ascending.
func (g *Gallery) SortedGroups(order Order) []ImageGroup {
	groups := make([]ImageGroup, len(g.Groups))
	copy(groups, g.Groups)
	sort.SliceStable(groups, func(i, j int) bool {
		if !groups[i].Date.Equal(groups[j].Date) {
			if order == OldestFirst {
				return groups[i].Date.Before(groups[j].Date)
			}
			return groups[i].Date.After(groups[j].Date)
		}
		return groups[i].Title < groups[j].Title
	})
	return groups
}

// ThumbnailKind selects the thumbnail size class. The overview page uses
// small thumbnails; group detail pages use large ones.
type ThumbnailKind int

const (
	ThumbnailSmall ThumbnailKind = iota
	ThumbnailLarge
)

// String returns the output subdirectory name for the kind.
func (k ThumbnailKind) String() string {
	if k == ThumbnailLarge {
		return "large"
	}
	return "small"
}
