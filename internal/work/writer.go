package work

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/gallerybuilder/internal/config"
	gerrors "git.home.luguber.info/inful/gallerybuilder/internal/errors"
)

// Writer materializes work items under the output root. In dry-run mode it
// reports intended writes instead of performing them; thumbnails are silent
// in dry-run by longstanding convention.
type Writer struct {
	outputDir string
	mode      config.RunMode
}

// NewWriter creates a writer rooted at outputDir.
func NewWriter(outputDir string, mode config.RunMode) *Writer {
	return &Writer{outputDir: outputDir, mode: mode}
}

// Materialize produces a single item on disk (or reports it in dry-run).
func (w *Writer) Materialize(item Item) error {
	switch it := item.(type) {
	case *HTMLItem:
		return w.writeHTML(it)
	case *ImageItem:
		return w.copyImage(it)
	case *ThumbnailItem:
		return w.writeThumbnail(it)
	case *StaticItem:
		return w.writeStatic(it)
	default:
		return gerrors.New(gerrors.CategoryInternal, gerrors.SeverityFatal,
			fmt.Sprintf("unhandled work item type %T", item))
	}
}

func (w *Writer) writeHTML(item *HTMLItem) error {
	target := filepath.Join(w.outputDir, filepath.FromSlash(item.Path))
	if w.mode == config.DryRun {
		fmt.Printf("HTML:  %q\n", target)
		return nil
	}
	if err := createParentDirectories(target); err != nil {
		return err
	}
	if err := os.WriteFile(target, []byte(item.Content), 0o644); err != nil {
		return gerrors.WrapError(err, gerrors.CategoryFileSystem, "write HTML file").
			WithContext("path", target)
	}
	return nil
}

func (w *Writer) writeStatic(item *StaticItem) error {
	target := filepath.Join(w.outputDir, filepath.FromSlash(item.Path))
	if w.mode == config.DryRun {
		fmt.Printf("Static: %q\n", target)
		return nil
	}
	if err := createParentDirectories(target); err != nil {
		return err
	}
	if err := os.WriteFile(target, item.Content, 0o644); err != nil {
		return gerrors.WrapError(err, gerrors.CategoryFileSystem, "write static asset").
			WithContext("path", target)
	}
	return nil
}

func (w *Writer) copyImage(item *ImageItem) error {
	target := filepath.Join(w.outputDir, filepath.FromSlash(item.Path))
	fresh, err := isFresh(target, item.SourcePath)
	if err != nil {
		return err
	}
	if fresh {
		return nil
	}
	if w.mode == config.DryRun {
		fmt.Printf("Image: %q\n", target)
		return nil
	}
	if err := createParentDirectories(target); err != nil {
		return err
	}
	if err := copyFile(item.SourcePath, target); err != nil {
		return gerrors.WrapError(err, gerrors.CategoryFileSystem, "copy image").
			WithContext("source", item.SourcePath).
			WithContext("path", target)
	}
	return nil
}

func (w *Writer) writeThumbnail(item *ThumbnailItem) error {
	target := filepath.Join(w.outputDir, filepath.FromSlash(item.Path))
	fresh, err := isFresh(target, item.SourcePath)
	if err != nil {
		return err
	}
	if fresh || w.mode == config.DryRun {
		return nil
	}
	if err := createParentDirectories(target); err != nil {
		return err
	}
	return convertThumbnail(item.SourcePath, target, item.Thumbnail)
}

// isFresh reports whether the output already exists and is not older than its
// source. A missing output is simply not fresh; a missing source is an error.
func isFresh(target, source string) (bool, error) {
	srcInfo, err := os.Stat(source)
	if err != nil {
		return false, gerrors.WrapError(err, gerrors.CategoryFileSystem, "stat source image").
			WithContext("source", source)
	}
	outInfo, err := os.Stat(target)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, gerrors.WrapError(err, gerrors.CategoryFileSystem, "stat output file").
			WithContext("path", target)
	}
	return !outInfo.ModTime().Before(srcInfo.ModTime()), nil
}

// createParentDirectories creates all directories leading up to a file path.
// MkdirAll is idempotent, so concurrent sibling items racing on a shared
// parent cannot fail the run.
func createParentDirectories(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return gerrors.WrapError(err, gerrors.CategoryFileSystem, "create directory").
			WithContext("path", dir)
	}
	return nil
}

func copyFile(source, target string) error {
	in, err := os.Open(source)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(target)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
