package integration

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// mustParseTime parses an RFC 3339 timestamp or fails the test.
func mustParseTime(t *testing.T, value string) time.Time {
	t.Helper()

	ts, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return ts
}

// writeGroup creates one dated photo folder under inputDir with the given
// files. File contents are arbitrary; nothing in the pipeline decodes image
// data except the external thumbnail tool, which these tests avoid.
func writeGroup(t *testing.T, inputDir, name string, files map[string]string) {
	t.Helper()

	dir := filepath.Join(inputDir, name)
	require.NoError(t, os.MkdirAll(dir, 0o750))
	for file, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte(content), 0o600))
	}
}

// prefreshThumbnail creates a thumbnail output file ahead of the build so the
// writer's staleness check skips the external conversion tool.
func prefreshThumbnail(t *testing.T, outputDir, relPath string) {
	t.Helper()

	path := filepath.Join(outputDir, relPath)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte("thumb"), 0o600))
}

// captureStdout runs fn while collecting everything written to stdout.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	orig := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	os.Stdout = orig
	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

// readOutput reads a generated file relative to the output directory.
func readOutput(t *testing.T, outputDir, relPath string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(outputDir, relPath))
	require.NoError(t, err)
	return string(data)
}
