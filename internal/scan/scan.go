// Package scan reads the source directory into the gallery model. This is a
// read-only operation: one subdirectory per image group, named
// "YYYY-MM-DD <title>". Directories without a leading ISO date are skipped.
package scan

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	gerrors "git.home.luguber.info/inful/gallerybuilder/internal/errors"
	"git.home.luguber.info/inful/gallerybuilder/internal/gallery"
	"git.home.luguber.info/inful/gallerybuilder/internal/logfields"
)

// datePrefix matches the leading ISO date of a group directory name.
var datePrefix = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})[ ._-]?`)

// descriptionFile is the well-known name of a group's markdown document.
const descriptionFile = "index.md"

// imageExtensions are the two recognized source formats.
var imageExtensions = map[string]bool{
	".webp": true,
	".jpeg": true,
}

// Discover reads the input directory non-recursively and builds the gallery.
func Discover(inputDir string) (*gallery.Gallery, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, gerrors.WrapError(err, gerrors.CategoryScan, "open input directory").
			WithContext("path", inputDir)
	}

	g := &gallery.Gallery{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		group, err := readGroup(inputDir, entry.Name())
		if err != nil {
			return nil, err
		}
		if group == nil {
			slog.Debug("Skipping directory without date prefix", logfields.Path(entry.Name()))
			continue
		}
		g.Groups = append(g.Groups, *group)
	}

	sort.Slice(g.Groups, func(i, j int) bool {
		if !g.Groups[i].Date.Equal(g.Groups[j].Date) {
			return g.Groups[i].Date.After(g.Groups[j].Date)
		}
		return g.Groups[i].Title < g.Groups[j].Title
	})

	slog.Info("Gallery scan complete",
		logfields.Path(inputDir), slog.Int("groups", len(g.Groups)))
	return g, nil
}

// readGroup builds one image group from a directory, or returns (nil, nil)
// when the directory name carries no date.
func readGroup(inputDir, name string) (*gallery.ImageGroup, error) {
	if !utf8.ValidString(name) {
		return nil, gerrors.New(gerrors.CategoryScan, gerrors.SeverityError,
			fmt.Sprintf("directory name is not valid UTF-8: %q", name))
	}

	m := datePrefix.FindStringSubmatch(name)
	if m == nil {
		return nil, nil
	}
	date, err := time.Parse(gallery.DateFormat, m[1]+"-"+m[2]+"-"+m[3])
	if err != nil {
		return nil, gerrors.WrapError(err, gerrors.CategoryScan, "invalid date in directory name").
			WithContext("path", name)
	}
	title := strings.TrimSpace(datePrefix.ReplaceAllString(name, ""))
	if title == "" {
		slog.Warn("Skipping group with empty title", logfields.Path(name))
		return nil, nil
	}

	groupDir := filepath.Join(inputDir, name)
	entries, err := os.ReadDir(groupDir)
	if err != nil {
		return nil, gerrors.WrapError(err, gerrors.CategoryScan, "read group directory").
			WithContext("path", groupDir)
	}

	group := &gallery.ImageGroup{
		Path:  name,
		Title: title,
		Date:  date,
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		fileName := entry.Name()
		if !utf8.ValidString(fileName) {
			return nil, gerrors.New(gerrors.CategoryScan, gerrors.SeverityError,
				fmt.Sprintf("file name is not valid UTF-8 in group %q", name))
		}
		if fileName == descriptionFile {
			group.DescriptionFile = filepath.Join(groupDir, fileName)
			continue
		}
		ext := strings.ToLower(filepath.Ext(fileName))
		if !imageExtensions[ext] {
			continue
		}
		group.Images = append(group.Images, gallery.Image{
			Name:     strings.TrimSuffix(fileName, filepath.Ext(fileName)),
			Path:     filepath.Join(groupDir, fileName),
			FileName: fileName,
		})
	}
	sort.Slice(group.Images, func(i, j int) bool {
		return group.Images[i].Name < group.Images[j].Name
	})
	return group, nil
}
