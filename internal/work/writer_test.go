package work

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/gallerybuilder/internal/config"
	gerrors "git.home.luguber.info/inful/gallerybuilder/internal/errors"
	"git.home.luguber.info/inful/gallerybuilder/internal/gallery"
)

// captureStdout runs fn with os.Stdout redirected and returns what it wrote.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	require.NoError(t, w.Close())
	os.Stdout = old
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(data)
}

func TestWriter_HTML(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, config.Normal)

	err := w.Materialize(&HTMLItem{Content: "<html></html>", Path: "a/index.html"})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "a", "index.html"))
	require.NoError(t, err)
	require.Equal(t, "<html></html>", string(data))
}

func TestWriter_ImageCopy(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.webp")
	require.NoError(t, os.WriteFile(src, []byte("pixels"), 0o644))

	out := filepath.Join(dir, "out")
	w := NewWriter(out, config.Normal)
	require.NoError(t, w.Materialize(&ImageItem{SourcePath: src, Path: "g/src.webp"}))

	data, err := os.ReadFile(filepath.Join(out, "g", "src.webp"))
	require.NoError(t, err)
	require.Equal(t, "pixels", string(data))
}

func TestWriter_ImageCopySkippedWhenFresh(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.webp")
	require.NoError(t, os.WriteFile(src, []byte("old pixels"), 0o644))

	out := filepath.Join(dir, "out")
	target := filepath.Join(out, "g", "src.webp")
	require.NoError(t, os.MkdirAll(filepath.Dir(target), 0o750))
	require.NoError(t, os.WriteFile(target, []byte("already copied"), 0o644))

	// Make the output strictly newer than the source.
	older := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(src, older, older))

	w := NewWriter(out, config.Normal)
	require.NoError(t, w.Materialize(&ImageItem{SourcePath: src, Path: "g/src.webp"}))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	require.Equal(t, "already copied", string(data), "fresh output must not be rewritten")
}

func TestWriter_MissingSourceIsError(t *testing.T) {
	out := t.TempDir()
	w := NewWriter(out, config.Normal)
	err := w.Materialize(&ImageItem{SourcePath: filepath.Join(out, "nope.webp"), Path: "g/nope.webp"})
	require.Error(t, err)
	require.True(t, gerrors.IsCategory(err, gerrors.CategoryFileSystem))
}

func TestWriter_DryRunWritesNothing(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.webp")
	require.NoError(t, os.WriteFile(src, []byte("pixels"), 0o644))

	out := filepath.Join(dir, "out")
	w := NewWriter(out, config.DryRun)

	logged := captureStdout(t, func() {
		require.NoError(t, w.Materialize(&HTMLItem{Content: "x", Path: "index.html"}))
		require.NoError(t, w.Materialize(&ImageItem{SourcePath: src, Path: "g/src.webp"}))
		require.NoError(t, w.Materialize(&StaticItem{Content: []byte("css"), Path: "css/style.css"}))
	})

	require.Contains(t, logged, "HTML:")
	require.Contains(t, logged, "Image:")
	require.Contains(t, logged, "Static:")

	_, err := os.Stat(out)
	require.True(t, os.IsNotExist(err), "dry run must not create the output root")
}

// Thumbnails are intentionally silent in dry-run mode, unlike HTML and image
// items, and no conversion tool is invoked.
func TestWriter_DryRunThumbnailSilent(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.webp")
	require.NoError(t, os.WriteFile(src, []byte("pixels"), 0o644))

	w := NewWriter(filepath.Join(dir, "out"), config.DryRun)
	logged := captureStdout(t, func() {
		require.NoError(t, w.Materialize(&ThumbnailItem{
			SourcePath: src,
			Path:       "thumbnails/small/g/src.webp",
			Thumbnail:  gallery.ThumbnailSmall,
		}))
	})
	require.Empty(t, logged)
}
