package ignore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fetchit/pkg/config"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

func TestLoadLayersRootAndNestedFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".gitignore", "*.log\n")
	writeFile(t, root, "svc/.gitignore", "!keep.log\ntmp\n")
	writeFile(t, root, "node_modules/pkg/.gitignore", "*.js\n")
	writeFile(t, root, ".git/info/.gitignore", "*.go\n")

	m := Load(root, config.Default(), nil)

	assert.True(t, m.IsIgnored("a.log"))
	assert.False(t, m.IsIgnored("svc/keep.log"))
	assert.True(t, m.IsIgnored("svc/deep/tmp"))
	assert.False(t, m.IsIgnored("tmp"))
	assert.False(t, m.IsIgnored("src/app.js"), "ignore files under node_modules are not loaded")
	assert.False(t, m.IsIgnored("main.go"), "ignore files under .git are not loaded")
}

func TestLoadWithoutIgnoreFiles(t *testing.T) {
	root := t.TempDir()
	cfg := config.Default()
	cfg.ExcludeGlobs = []string{"*.bak"}

	m := Load(root, cfg, nil)
	assert.True(t, m.IsIgnored("x/y.bak"))
	assert.False(t, m.IsIgnored("x/y.go"))
}

func TestLoadCustomIgnoreFileName(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".gitignore", "*.go\n")
	writeFile(t, root, ".fetchignore", "*.txt\n")

	cfg := config.Default()
	cfg.IgnoreFileName = ".fetchignore"
	m := Load(root, cfg, nil)

	assert.False(t, m.IsIgnored("main.go"))
	assert.True(t, m.IsIgnored("notes.txt"))
}

func TestFindNestedIsSorted(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "b/.gitignore", "")
	writeFile(t, root, "a/z/.gitignore", "")
	writeFile(t, root, "a/.gitignore", "")
	writeFile(t, root, ".gitignore", "")

	files := findNested(root, config.Default(), nil)
	require.Len(t, files, 3)
	assert.Equal(t, filepath.Join(root, "a", ".gitignore"), files[0])
	assert.Equal(t, filepath.Join(root, "a", "z", ".gitignore"), files[1])
	assert.Equal(t, filepath.Join(root, "b", ".gitignore"), files[2])
}
