package selection

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoWorkspaceRoot is returned when a target lies outside every known root.
var ErrNoWorkspaceRoot = errors.New("unable to determine workspace root")

// Workspace is the set of root directories a selection may come from.
type Workspace struct {
	Roots []string
}

// NewWorkspace resolves roots to cleaned absolute paths.
func NewWorkspace(roots ...string) (*Workspace, error) {
	ws := &Workspace{}
	for _, r := range roots {
		abs, err := filepath.Abs(r)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve root %s: %w", r, err)
		}
		ws.Roots = append(ws.Roots, filepath.Clean(abs))
	}
	return ws, nil
}

// RootFor returns the first root containing path.
func (w *Workspace) RootFor(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	for _, root := range w.Roots {
		if contains(root, abs) {
			return root, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNoWorkspaceRoot, path)
}

func contains(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	if filepath.IsAbs(rel) {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// DiscoverRoot walks up from start to the nearest directory containing a
// .git entry. When none is found, start itself is the root.
func DiscoverRoot(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", start, err)
	}
	if info, err := os.Stat(abs); err == nil && !info.IsDir() {
		abs = filepath.Dir(abs)
	}

	for dir := abs; ; {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return abs, nil
		}
		dir = parent
	}
}
