package selection

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// Entry is a filesystem entry found under a selection target.
type Entry struct {
	Abs   string // Absolute, OS-specific path.
	Rel   string // Root-relative path with forward slashes.
	IsDir bool
}

// Enumerator lists every entry beneath dir. Entries are returned relative
// to dir, in a stable order for a given filesystem state.
type Enumerator interface {
	Enumerate(dir string) ([]Entry, error)
}

// GlobEnumerator walks a directory with doublestar. Entries are produced in
// lexical order per directory. Directories matching Exclude are not
// descended into.
type GlobEnumerator struct {
	Pattern string // Defaults to "**".
	Exclude string // Optional doublestar pattern relative to the walked directory.
}

// Enumerate implements Enumerator. Rel is relative to dir; the collector
// rebases it onto the root.
func (g GlobEnumerator) Enumerate(dir string) ([]Entry, error) {
	pattern := g.Pattern
	if pattern == "" {
		pattern = "**"
	}

	var entries []Entry
	err := doublestar.GlobWalk(os.DirFS(dir), pattern, func(p string, d fs.DirEntry) error {
		if p == "." {
			return nil
		}
		if g.Exclude != "" {
			if excluded, _ := doublestar.Match(g.Exclude, p); excluded {
				if d.IsDir() {
					return doublestar.SkipDir
				}
				return nil
			}
		}
		abs := filepath.Join(dir, filepath.FromSlash(p))
		isDir := d.IsDir()
		switch {
		case d.Type()&fs.ModeSymlink != 0:
			// Not followed; a link to a directory still counts as one.
			if info, err := os.Stat(abs); err == nil && info.IsDir() {
				isDir = true
			}
		case !isDir && !d.Type().IsRegular():
			return nil
		}
		entries = append(entries, Entry{
			Abs:   abs,
			Rel:   path.Clean(p),
			IsDir: isDir,
		})
		return nil
	}, doublestar.WithNoFollow())
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate %s: %w", dir, err)
	}
	return entries, nil
}
