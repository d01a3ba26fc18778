package publish

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishAll(t *testing.T) {
	blog := newFakeBlog()
	engine := newTestEngine(blog, &fakeStore{})

	store := t.TempDir()
	for _, name := range []string{"2025-01-01-alpha", "2025-02-02-bravo", "2025-03-03-charlie"} {
		dir := filepath.Join(store, name)
		require.NoError(t, os.MkdirAll(dir, 0755))
		content := "---\ntitle: " + name + "\ndate: 2025-01-01\nstatus: published\n---\nBody.\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, "post.md"), []byte(content), 0644))
	}

	runner := Runner{Engine: engine, Workers: 2}
	results, err := runner.PublishAll(context.Background(), store)
	require.NoError(t, err)

	require.Len(t, results, 3)
	assert.Equal(t, 3, blog.createCalls)

	// results come back sorted by directory regardless of worker order
	assert.Contains(t, results[0].Dir, "alpha")
	assert.Contains(t, results[1].Dir, "bravo")
	assert.Contains(t, results[2].Dir, "charlie")
}

func TestPublishAllCollectsFailures(t *testing.T) {
	blog := newFakeBlog()
	engine := newTestEngine(blog, &fakeStore{})

	store := t.TempDir()

	good := filepath.Join(store, "2025-01-01-good")
	require.NoError(t, os.MkdirAll(good, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(good, "post.md"),
		[]byte("---\ntitle: Good\ndate: 2025-01-01\nstatus: published\n---\nFine.\n"), 0644))

	bad := filepath.Join(store, "2025-02-02-bad")
	require.NoError(t, os.MkdirAll(bad, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(bad, "post.md"),
		[]byte("no frontmatter at all\n"), 0644))

	runner := Runner{Engine: engine, Workers: 2}
	results, err := runner.PublishAll(context.Background(), store)

	// one post's failure doesn't stop the other
	require.Len(t, results, 1)
	assert.Contains(t, results[0].Dir, "good")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "2025-02-02-bad")
}

func TestPublishAllEmptyStore(t *testing.T) {
	runner := Runner{Engine: newTestEngine(newFakeBlog(), &fakeStore{})}
	results, err := runner.PublishAll(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, results)
}
