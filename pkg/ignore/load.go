package ignore

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"fetchit/pkg/config"
	"fetchit/pkg/logging"
)

// Load discovers the ignore files under root and compiles them together
// with the configured exclude globs. The root-level file comes first, then
// nested files sorted by path. Directories named in
// cfg.NestedIgnoreExclusions are not searched. Unreadable ignore files
// contribute no rules.
func Load(root string, cfg config.Config, logger *zap.Logger) *Matcher {
	logger = logging.OrNop(logger)
	var sources []Source

	rootFile := filepath.Join(root, cfg.IgnoreFileName)
	if src, ok := readSource(root, rootFile, logger); ok {
		sources = append(sources, src)
	}

	nested := findNested(root, cfg, logger)
	for _, file := range nested {
		if src, ok := readSource(root, file, logger); ok {
			sources = append(sources, src)
		}
	}

	logger.Debug("Loaded ignore files",
		zap.String("root", root),
		zap.Int("files", len(sources)))
	return Compile(cfg.ExcludeGlobs, sources, logger)
}

// findNested walks root for ignore files below the top level.
func findNested(root string, cfg config.Config, logger *zap.Logger) []string {
	excluded := make(map[string]bool, len(cfg.NestedIgnoreExclusions))
	for _, name := range cfg.NestedIgnoreExclusions {
		excluded[name] = true
	}

	var files []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("Error accessing path while searching ignore files", zap.String("path", p), zap.Error(err))
			if d != nil && d.IsDir() && p != root {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if p != root && excluded[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() == cfg.IgnoreFileName && filepath.Dir(p) != filepath.Clean(root) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		logger.Warn("Failed to search for nested ignore files", zap.String("root", root), zap.Error(err))
	}

	sort.Strings(files)
	return files
}

func readSource(root, file string, logger *zap.Logger) (Source, bool) {
	content, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("Ignore file does not exist and will be skipped", zap.String("filePath", file))
		} else {
			logger.Warn("Failed to read ignore file", zap.String("filePath", file), zap.Error(err))
		}
		return Source{}, false
	}

	rel, err := filepath.Rel(root, file)
	if err != nil {
		logger.Warn("Ignore file is outside the root", zap.String("filePath", file), zap.Error(err))
		return Source{}, false
	}
	return Source{Path: filepath.ToSlash(rel), Text: string(content)}, true
}
