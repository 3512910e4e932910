// Package selection decides which files under a workspace root make up a
// selection.
package selection

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"go.uber.org/zap"

	"fetchit/pkg/config"
	"fetchit/pkg/ignore"
	"fetchit/pkg/logging"
)

// ErrEmptySelection is returned when filtering removed every candidate.
var ErrEmptySelection = errors.New("no copyable files")

// Result is the ordered set of files chosen for one invocation. It never
// holds directories or duplicates.
type Result struct {
	Root  string
	Files []Entry
}

// Paths returns the root-relative paths of the selected files.
func (r Result) Paths() []string {
	paths := make([]string, len(r.Files))
	for i, f := range r.Files {
		paths[i] = f.Rel
	}
	return paths
}

// Collector enumerates a target and filters the candidates through the
// root's ignore matcher and the binary classifier.
type Collector struct {
	Cache      *ignore.Cache
	Config     config.Config
	Enumerator Enumerator
	Logger     *zap.Logger
}

// NewCollector returns a Collector that walks the filesystem, skipping
// .git directories.
func NewCollector(cache *ignore.Cache, cfg config.Config, logger *zap.Logger) *Collector {
	if cache == nil {
		cache = ignore.NewCache()
	}
	return &Collector{
		Cache:      cache,
		Config:     cfg,
		Enumerator: GlobEnumerator{Exclude: "**/.git"},
		Logger:     logging.OrNop(logger),
	}
}

// Matcher returns the cached ignore matcher for root, building it on first use.
func (c *Collector) Matcher(root string) *ignore.Matcher {
	return c.Cache.Get(root, func() *ignore.Matcher {
		return ignore.Load(root, c.Config, c.Logger)
	})
}

// Collect returns the files under target that survive filtering. A file
// target goes through the same filters as a folder, so an ignored or
// binary file yields ErrEmptySelection.
func (c *Collector) Collect(root, target string) (Result, error) {
	result := Result{Root: root}

	absTarget, err := filepath.Abs(target)
	if err != nil {
		return result, fmt.Errorf("failed to resolve %s: %w", target, err)
	}
	if !contains(root, absTarget) {
		return result, fmt.Errorf("%w: %s", ErrNoWorkspaceRoot, target)
	}

	info, err := os.Stat(absTarget)
	if err != nil {
		c.Logger.Error("Target does not exist or cannot be accessed", zap.String("path", absTarget), zap.Error(err))
		return result, fmt.Errorf("failed to stat %s: %w", target, err)
	}

	relTarget, err := relativeTo(root, absTarget)
	if err != nil {
		return result, err
	}

	var candidates []Entry
	if info.IsDir() {
		c.Logger.Debug("Enumerating directory", zap.String("dir", absTarget))
		entries, err := c.Enumerator.Enumerate(absTarget)
		if err != nil {
			c.Logger.Error("Failed to enumerate directory", zap.String("dir", absTarget), zap.Error(err))
			return result, err
		}
		for _, e := range entries {
			e.Rel = joinRel(relTarget, e.Rel)
			candidates = append(candidates, e)
		}
	} else {
		candidates = []Entry{{Abs: absTarget, Rel: relTarget}}
	}

	matcher := c.Matcher(root)
	seen := make(map[string]bool, len(candidates))
	for _, e := range candidates {
		switch {
		case e.IsDir:
			continue
		case matcher.IsIgnoredEntry(e.Rel, false):
			c.Logger.Debug("Skipping ignored file", zap.String("file", e.Rel))
			continue
		case IsBinary(e.Rel):
			c.Logger.Debug("Skipping binary file", zap.String("file", e.Rel), zap.String("extension", filepath.Ext(e.Rel)))
			continue
		case seen[e.Rel]:
			continue
		}
		seen[e.Rel] = true
		result.Files = append(result.Files, e)
	}

	c.Logger.Debug("Completed file collection",
		zap.String("target", relTarget),
		zap.Int("candidates", len(candidates)),
		zap.Int("selected", len(result.Files)))

	if len(result.Files) == 0 {
		return result, fmt.Errorf("%w: %s", ErrEmptySelection, relTarget)
	}
	return result, nil
}

func relativeTo(root, abs string) (string, error) {
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return "", fmt.Errorf("failed to relate %s to root %s: %w", abs, root, err)
	}
	return filepath.ToSlash(rel), nil
}

func joinRel(base, rel string) string {
	if base == "." || base == "" {
		return rel
	}
	return path.Join(base, rel)
}
