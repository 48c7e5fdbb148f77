package discover

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Discovery:
// - Find .py files recursively, returning slash-relative paths
// - Skip non-Python files
// - Skip underscore-prefixed files (__init__.py, _private.py)
// - Honor ignore globs, both file patterns and directory prefixes
// - Return files in a stable walk order
// - Reject invalid ignore patterns

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func TestDiscovery_FindsPythonFiles(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"app.py":        "x = 1",
		"pkg/util.py":   "y = 2",
		"pkg/README.md": "docs",
		"notes.txt":     "notes",
	})

	d, err := New(root, nil)
	require.NoError(t, err)
	files, err := d.Discover()
	require.NoError(t, err)

	assert.Equal(t, []string{"app.py", "pkg/util.py"}, files)
}

func TestDiscovery_SkipsUnderscoreFiles(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"pkg/__init__.py": "",
		"pkg/_private.py": "x = 1",
		"pkg/public.py":   "y = 2",
	})

	d, err := New(root, nil)
	require.NoError(t, err)
	files, err := d.Discover()
	require.NoError(t, err)

	assert.Equal(t, []string{"pkg/public.py"}, files)
}

func TestDiscovery_IgnorePatterns(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"app.py":           "x = 1",
		"venv/lib/mod.py":  "y = 2",
		"tests/fixture.py": "z = 3",
	})

	d, err := New(root, []string{"venv/**", "tests"})
	require.NoError(t, err)
	files, err := d.Discover()
	require.NoError(t, err)

	assert.Equal(t, []string{"app.py"}, files)
}

func TestDiscovery_DoubleStarPrefixMatchesRoot(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"setup.py":     "x = 1",
		"pkg/setup.py": "y = 2",
		"pkg/app.py":   "z = 3",
	})

	d, err := New(root, []string{"**/setup.py"})
	require.NoError(t, err)
	files, err := d.Discover()
	require.NoError(t, err)

	assert.Equal(t, []string{"pkg/app.py"}, files)
}

func TestDiscovery_StableOrder(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"b.py":     "",
		"a.py":     "",
		"sub/c.py": "",
	})

	d, err := New(root, nil)
	require.NoError(t, err)

	first, err := d.Discover()
	require.NoError(t, err)
	second, err := d.Discover()
	require.NoError(t, err)

	assert.Equal(t, []string{"a.py", "b.py", "sub/c.py"}, first)
	assert.Equal(t, first, second)
}

func TestNew_InvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := New(t.TempDir(), []string{"[unclosed"})
	assert.Error(t, err)
}
