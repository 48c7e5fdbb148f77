// Package discover walks a source tree and selects the Python files a run
// will process. Discovery order is the walk order of filepath.Walk, which
// is lexical per directory, so repeated runs over the same tree see the
// same files in the same order.
package discover

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// compiledPattern holds both the pattern string and compiled glob.
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// Discovery selects .py files under a root directory, honoring ignore
// glob patterns. Files whose base name starts with an underscore are
// always skipped (dunder modules, private helpers).
type Discovery struct {
	rootDir        string
	ignorePatterns []compiledPattern
}

// New creates a discovery over rootDir with the given ignore globs.
func New(rootDir string, ignorePatterns []string) (*Discovery, error) {
	d := &Discovery{rootDir: rootDir}
	for _, pattern := range ignorePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
		}
		d.ignorePatterns = append(d.ignorePatterns, compiledPattern{pattern: pattern, glob: g})
	}
	return d, nil
}

// Discover walks the tree and returns matching files as slash-separated
// paths relative to the root.
func (d *Discovery) Discover() ([]string, error) {
	var files []string
	err := filepath.Walk(d.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(d.rootDir, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if !isPythonSource(filepath.Base(path)) {
			return nil
		}
		if d.shouldIgnore(relPath) {
			return nil
		}
		files = append(files, relPath)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", d.rootDir, err)
	}
	return files, nil
}

// Root returns the root directory the discovery walks.
func (d *Discovery) Root() string { return d.rootDir }

// isPythonSource reports whether a base name is a processable Python file.
// Underscore-prefixed files (__init__.py, _private.py) are excluded.
func isPythonSource(base string) bool {
	return strings.HasSuffix(base, ".py") && !strings.HasPrefix(base, "_")
}

// shouldIgnore checks if a path matches any ignore pattern, either
// directly or as a directory prefix (so "venv" ignores "venv/app.py").
func (d *Discovery) shouldIgnore(relPath string) bool {
	if d.matchesAnyPattern(relPath) {
		return true
	}
	for dir := filepath.ToSlash(filepath.Dir(relPath)); dir != "." && dir != "/"; dir = filepath.ToSlash(filepath.Dir(dir)) {
		if d.matchesAnyPattern(dir) {
			return true
		}
	}
	return false
}

func (d *Discovery) matchesAnyPattern(path string) bool {
	for _, cp := range d.ignorePatterns {
		if cp.glob.Match(path) {
			return true
		}
	}

	// Patterns written as "**/name" should also match a bare root-level
	// "name", which glob's separator handling would otherwise miss.
	if !strings.Contains(path, "/") {
		for _, cp := range d.ignorePatterns {
			if strings.HasPrefix(cp.pattern, "**/") {
				simplified := strings.TrimPrefix(cp.pattern, "**/")
				if g, err := glob.Compile(simplified, '/'); err == nil && g.Match(path) {
					return true
				}
			}
		}
	}
	return false
}
