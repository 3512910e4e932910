package selection

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fetchit/pkg/config"
	"fetchit/pkg/ignore"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

func newTestCollector(cfg config.Config) *Collector {
	return NewCollector(ignore.NewCache(), cfg, nil)
}

func TestCollectFolderHonoursRootIgnoreFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".gitignore", "node_modules/\n*.png\n")
	writeFile(t, root, "web/src/a.js", "console.log(1)\n")
	writeFile(t, root, "web/node_modules/x/y.js", "module.exports = 1\n")
	writeFile(t, root, "web/assets/b.png", "\x89PNG")

	c := newTestCollector(config.Default())
	result, err := c.Collect(root, filepath.Join(root, "web"))
	require.NoError(t, err)
	assert.Equal(t, []string{"web/src/a.js"}, result.Paths())
	assert.Equal(t, filepath.Join(root, "web", "src", "a.js"), result.Files[0].Abs)
}

func TestCollectFolderIsDeterministic(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "b.go", "package x\n")
	writeFile(t, root, "a/z.go", "package a\n")
	writeFile(t, root, "a/c.go", "package a\n")
	writeFile(t, root, "readme", "hello\n")
	writeFile(t, root, "photo.PNG", "binary")
	writeFile(t, root, ".git/config", "[core]\n")

	c := newTestCollector(config.Default())
	first, err := c.Collect(root, root)
	require.NoError(t, err)

	c.Cache.Clear()
	second, err := c.Collect(root, root)
	require.NoError(t, err)

	assert.Equal(t, first.Paths(), second.Paths())
	assert.Equal(t, []string{"a/c.go", "a/z.go", "b.go", "readme"}, first.Paths())
}

func TestCollectNestedIgnoreScopes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".gitignore", "*.log\n")
	writeFile(t, root, "svc/.gitignore", "!keep.log\n/local.txt\ngen\n")
	writeFile(t, root, "svc/keep.log", "kept\n")
	writeFile(t, root, "svc/drop.log", "dropped\n")
	writeFile(t, root, "svc/local.txt", "anchored\n")
	writeFile(t, root, "svc/deep/local.txt", "not anchored here\n")
	writeFile(t, root, "svc/deep/gen", "generated\n")
	writeFile(t, root, "svc/main.go", "package svc\n")

	c := newTestCollector(config.Default())
	result, err := c.Collect(root, filepath.Join(root, "svc"))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"svc/.gitignore",
		"svc/deep/local.txt",
		"svc/keep.log",
		"svc/main.go",
	}, result.Paths())
}

func TestCollectSingleFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "pkg/main.go", "package main\n")
	writeFile(t, root, "pkg/app.lock", "lock\n")
	writeFile(t, root, "pkg/logo.png", "png")

	cfg := config.Default()
	cfg.ExcludeGlobs = []string{"*.lock"}
	c := newTestCollector(cfg)

	result, err := c.Collect(root, filepath.Join(root, "pkg", "main.go"))
	require.NoError(t, err)
	assert.Equal(t, []string{"pkg/main.go"}, result.Paths())

	result, err = c.Collect(root, filepath.Join(root, "pkg", "app.lock"))
	assert.ErrorIs(t, err, ErrEmptySelection, "an excluded file is not forced in")
	assert.Empty(t, result.Files)

	_, err = c.Collect(root, filepath.Join(root, "pkg", "logo.png"))
	assert.ErrorIs(t, err, ErrEmptySelection)
}

func TestCollectOutsideRoot(t *testing.T) {
	root := t.TempDir()
	other := t.TempDir()
	writeFile(t, other, "x.go", "package x\n")

	c := newTestCollector(config.Default())
	_, err := c.Collect(root, filepath.Join(other, "x.go"))
	assert.ErrorIs(t, err, ErrNoWorkspaceRoot)
}

func TestCollectMissingTarget(t *testing.T) {
	root := t.TempDir()
	c := newTestCollector(config.Default())
	_, err := c.Collect(root, filepath.Join(root, "missing.go"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmptySelection)
}

type staticEnumerator []Entry

func (s staticEnumerator) Enumerate(string) ([]Entry, error) { return s, nil }

func TestCollectDropsDirectoriesAndDuplicates(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/a.go", "package src\n")

	c := newTestCollector(config.Default())
	c.Enumerator = staticEnumerator{
		{Abs: filepath.Join(root, "src", "a.go"), Rel: "a.go"},
		{Abs: filepath.Join(root, "src", "lib"), Rel: "lib", IsDir: true},
		{Abs: filepath.Join(root, "src", "a.go"), Rel: "a.go"},
	}

	result, err := c.Collect(root, filepath.Join(root, "src"))
	require.NoError(t, err)
	assert.Equal(t, []string{"src/a.go"}, result.Paths())
}

func TestGlobEnumeratorExclude(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.txt", "a")
	writeFile(t, root, ".git/HEAD", "ref")
	writeFile(t, root, "sub/.git/HEAD", "ref")
	writeFile(t, root, "sub/b.txt", "b")

	entries, err := GlobEnumerator{Exclude: "**/.git"}.Enumerate(root)
	require.NoError(t, err)

	var rels []string
	for _, e := range entries {
		rels = append(rels, e.Rel)
	}
	assert.Equal(t, []string{"a.txt", "sub", "sub/b.txt"}, rels)
}
