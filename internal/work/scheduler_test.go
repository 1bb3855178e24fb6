package work

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/gallerybuilder/internal/config"
)

func TestScheduler_RunsBatchThenFinalize(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, config.Normal)

	batch := []Item{
		&HTMLItem{Content: "a", Path: "a/index.html"},
		&HTMLItem{Content: "b", Path: "b/index.html"},
		&StaticItem{Content: []byte("css"), Path: "css/style.css"},
	}

	var finalized atomic.Bool
	err := NewScheduler(4).Run(context.Background(), w, batch, func() (Item, error) {
		finalized.Store(true)
		// The finalize item may depend on batch artifacts being on disk.
		for _, it := range batch {
			_, err := os.Stat(filepath.Join(dir, filepath.FromSlash(it.OutputPath())))
			require.NoError(t, err)
		}
		return &HTMLItem{Content: "overview", Path: "index.html"}, nil
	})
	require.NoError(t, err)
	require.True(t, finalized.Load())

	data, err := os.ReadFile(filepath.Join(dir, "index.html"))
	require.NoError(t, err)
	require.Equal(t, "overview", string(data))
}

func TestScheduler_FirstErrorWinsAndSkipsFinalize(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, config.Normal)

	// Two failing image items with missing sources; the error surfaced must
	// be the first by submission order regardless of completion order.
	batch := []Item{
		&HTMLItem{Content: "ok", Path: "ok/index.html"},
		&ImageItem{SourcePath: filepath.Join(dir, "first-missing.webp"), Path: "g/a.webp"},
		&ImageItem{SourcePath: filepath.Join(dir, "second-missing.webp"), Path: "g/b.webp"},
	}

	finalized := false
	err := NewScheduler(2).Run(context.Background(), w, batch, func() (Item, error) {
		finalized = true
		return &HTMLItem{Content: "overview", Path: "index.html"}, nil
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "first-missing.webp")
	require.False(t, finalized, "finalize must not run after a batch failure")

	_, statErr := os.Stat(filepath.Join(dir, "index.html"))
	require.True(t, os.IsNotExist(statErr))
}

func TestScheduler_SiblingsCompleteDespiteFailure(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, config.Normal)

	batch := []Item{
		&ImageItem{SourcePath: filepath.Join(dir, "missing.webp"), Path: "g/a.webp"},
		&HTMLItem{Content: "sibling", Path: "sibling/index.html"},
	}

	err := NewScheduler(2).Run(context.Background(), w, batch, nil)
	require.Error(t, err)

	// The failed run may still have produced sibling artifacts.
	data, readErr := os.ReadFile(filepath.Join(dir, "sibling", "index.html"))
	require.NoError(t, readErr)
	require.Equal(t, "sibling", string(data))
}

func TestScheduler_EmptyBatch(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, config.Normal)

	err := NewScheduler(1).Run(context.Background(), w, nil, func() (Item, error) {
		return &HTMLItem{Content: "overview", Path: "index.html"}, nil
	})
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "index.html"))
	require.NoError(t, statErr)
}

func TestScheduler_CancelledContextStopsSubmission(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, config.Normal)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewScheduler(1).Run(ctx, w, []Item{
		&HTMLItem{Content: "a", Path: "a/index.html"},
	}, nil)
	require.ErrorIs(t, err, context.Canceled)
}
