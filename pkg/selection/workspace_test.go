package selection

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkspaceRootFor(t *testing.T) {
	base := t.TempDir()
	first := filepath.Join(base, "first")
	second := filepath.Join(base, "second")

	ws, err := NewWorkspace(first, second)
	require.NoError(t, err)

	root, err := ws.RootFor(filepath.Join(second, "pkg", "a.go"))
	require.NoError(t, err)
	assert.Equal(t, second, root)

	root, err = ws.RootFor(first)
	require.NoError(t, err)
	assert.Equal(t, first, root, "a root contains itself")

	_, err = ws.RootFor(filepath.Join(base, "firstborn", "x.go"))
	assert.True(t, errors.Is(err, ErrNoWorkspaceRoot), "sibling with a shared name prefix is outside")

	_, err = ws.RootFor(base)
	assert.ErrorIs(t, err, ErrNoWorkspaceRoot)
}

func TestDiscoverRoot(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "repo", ".git"), 0o755))
	deep := filepath.Join(base, "repo", "a", "b")
	require.NoError(t, os.MkdirAll(deep, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(deep, "f.go"), []byte("package b\n"), 0o644))

	root, err := DiscoverRoot(deep)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "repo"), root)

	root, err = DiscoverRoot(filepath.Join(deep, "f.go"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "repo"), root)
}
