package scan

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/gallerybuilder/internal/gallery"
)

func writeFixture(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for path, content := range files {
		full := filepath.Join(root, filepath.FromSlash(path))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o750))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
}

func TestDiscover_EmptyDirectory(t *testing.T) {
	g, err := Discover(t.TempDir())
	require.NoError(t, err)
	require.Empty(t, g.Groups)
}

func TestDiscover_SimpleGroup(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, map[string]string{
		"2021-01-01 Fuji, Japan/Valley.webp": "v",
		"2021-01-01 Fuji, Japan/Summit.webp": "s",
	})

	g, err := Discover(root)
	require.NoError(t, err)
	require.Len(t, g.Groups, 1)

	group := g.Groups[0]
	require.Equal(t, "2021-01-01 Fuji, Japan", group.Path)
	require.Equal(t, "Fuji, Japan", group.Title)
	require.Equal(t, time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), group.Date)
	require.False(t, group.HasDescription())

	// Alphabetical by display name.
	require.Len(t, group.Images, 2)
	require.Equal(t, "Summit", group.Images[0].Name)
	require.Equal(t, "Summit.webp", group.Images[0].FileName)
	require.Equal(t, "Valley", group.Images[1].Name)
}

func TestDiscover_DescriptionFile(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, map[string]string{
		"2021-01-01 Fuji, Japan/index.md":    "!image Summit\n",
		"2021-01-01 Fuji, Japan/Summit.webp": "s",
	})

	g, err := Discover(root)
	require.NoError(t, err)
	require.Len(t, g.Groups, 1)
	require.True(t, g.Groups[0].HasDescription())
	require.Equal(t,
		filepath.Join(root, "2021-01-01 Fuji, Japan", "index.md"),
		g.Groups[0].DescriptionFile)
	// index.md is not an image.
	require.Len(t, g.Groups[0].Images, 1)
}

func TestDiscover_IgnoresUnrelatedEntries(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, map[string]string{
		"2021-12-01 Fuji, Japan/Summit.webp":       "s",
		"2021-12-01 Fuji, Japan/notes.txt":         "ignored",
		"2021-12-01 Fuji, Japan/raw.CR2":           "ignored",
		"2021-12-01 Fuji, Japan/Nested/Inner.webp": "ignored subdirectory",
		"stray-file.webp":                          "top-level file, not a group",
	})

	g, err := Discover(root)
	require.NoError(t, err)
	require.Len(t, g.Groups, 1)
	require.Len(t, g.Groups[0].Images, 1)
	require.Equal(t, "Summit", g.Groups[0].Images[0].Name)
}

func TestDiscover_SkipsDirectoriesWithoutDate(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, map[string]string{
		"2021-01 Fuji, Japan/Summit.webp": "incomplete date",
		"Assorted/Other.webp":             "no date at all",
	})

	g, err := Discover(root)
	require.NoError(t, err)
	require.Empty(t, g.Groups)
}

func TestDiscover_SortsByDateMostRecentFirst(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, map[string]string{
		"2020-03-01 Older/A.webp":  "a",
		"2022-07-15 Newer/B.webp":  "b",
		"2022-07-15 Also/C.jpeg":   "c",
		"2021-01-01 Middle/D.webp": "d",
	})

	g, err := Discover(root)
	require.NoError(t, err)
	require.Len(t, g.Groups, 4)
	require.Equal(t, "Also", g.Groups[0].Title, "date ties break by title")
	require.Equal(t, "Newer", g.Groups[1].Title)
	require.Equal(t, "Middle", g.Groups[2].Title)
	require.Equal(t, "Older", g.Groups[3].Title)
}

func TestDiscover_MissingInputDirectory(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestSortedGroups_Orders(t *testing.T) {
	g := &gallery.Gallery{Groups: []gallery.ImageGroup{
		{Title: "Old", Date: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)},
		{Title: "New", Date: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)},
	}}
	recent := g.SortedGroups(gallery.MostRecentFirst)
	require.Equal(t, "New", recent[0].Title)
	oldest := g.SortedGroups(gallery.OldestFirst)
	require.Equal(t, "Old", oldest[0].Title)
}
