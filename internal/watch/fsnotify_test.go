package watch

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitetask/sitetask/internal/log"
	"github.com/sitetask/sitetask/internal/testutils/fstest"
)

const testDebounce = 20 * time.Millisecond

func newTestSource(t *testing.T, root string) *FSNotifySource {
	t.Helper()

	src, err := NewFSNotifySource(root, []string{".git/**", "_site/**"}, testDebounce, log.StdLogger)
	require.NoError(t, err)
	t.Cleanup(func() {
		src.Close()
	})

	return src
}

// nextContaining returns batches from src until one contains path.
func nextContaining(t *testing.T, src *FSNotifySource, path string) []string {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for {
		paths, err := src.Next(ctx)
		require.NoError(t, err)

		if slices.Contains(paths, path) {
			return paths
		}
	}
}

func TestFSNotifySourceReportsChangedFiles(t *testing.T) {
	log.RedirectToTestingLog(t)

	root := t.TempDir()
	fstest.WriteToFile(t, []byte("a{}"), filepath.Join(root, "sass", "main.scss"))

	src := newTestSource(t, root)

	fstest.WriteToFile(t, []byte("b{}"), filepath.Join(root, "sass", "main.scss"))
	fstest.WriteToFile(t, []byte("<p/>"), filepath.Join(root, "index.html"))

	paths := nextContaining(t, src, "sass/main.scss")
	if !slices.Contains(paths, "index.html") {
		paths = append(paths, nextContaining(t, src, "index.html")...)
	}

	assert.Contains(t, paths, "index.html")
}

func TestFSNotifySourceWatchesNewDirectories(t *testing.T) {
	log.RedirectToTestingLog(t)

	root := t.TempDir()
	src := newTestSource(t, root)

	require.NoError(t, os.MkdirAll(filepath.Join(root, "_posts"), 0o755))
	nextContaining(t, src, "_posts")

	fstest.WriteToFile(t, []byte("---\n---\n"), filepath.Join(root, "_posts", "2026-01-01-hello.md"))
	nextContaining(t, src, "_posts/2026-01-01-hello.md")
}

func TestFSNotifySourceSkipsIgnoredDirectories(t *testing.T) {
	log.RedirectToTestingLog(t)

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "_site", "css"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sass"), 0o755))

	src := newTestSource(t, root)

	var watched []string
	for _, dir := range src.WatchList() {
		rel, err := filepath.Rel(root, dir)
		require.NoError(t, err)
		watched = append(watched, filepath.ToSlash(rel))
	}
	assert.ElementsMatch(t, []string{".", "sass"}, watched)

	fstest.WriteToFile(t, []byte("x"), filepath.Join(root, "_site", "index.html"))
	fstest.WriteToFile(t, []byte("y"), filepath.Join(root, "sass", "main.scss"))

	paths := nextContaining(t, src, "sass/main.scss")
	for _, p := range paths {
		assert.NotContains(t, p, "_site")
	}
}

func TestFSNotifySourceReportsFilesOfMovedInDirectory(t *testing.T) {
	log.RedirectToTestingLog(t)

	root := t.TempDir()
	outside := t.TempDir()
	fstest.WriteToFile(t, []byte("<p/>"), filepath.Join(outside, "drafts", "post.html"))
	fstest.WriteToFile(t, []byte("<p/>"), filepath.Join(outside, "drafts", "sub", "nested.html"))

	src := newTestSource(t, root)

	require.NoError(t, os.Rename(filepath.Join(outside, "drafts"), filepath.Join(root, "drafts")))

	paths := nextContaining(t, src, "drafts/post.html")
	if !slices.Contains(paths, "drafts/sub/nested.html") {
		paths = append(paths, nextContaining(t, src, "drafts/sub/nested.html")...)
	}

	assert.Contains(t, paths, "drafts/sub/nested.html")
}
