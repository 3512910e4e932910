// Package ignore compiles layered ignore files and configured exclude globs
// into a single ordered rule list evaluated against root-relative paths.
package ignore

import (
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"fetchit/pkg/logging"
)

// ConfigSource labels rules that come from configured exclude globs.
const ConfigSource = "config"

// Source is the text of one ignore file. Path is root-relative and uses
// forward slashes; its directory is the scope of the file's rules.
type Source struct {
	Path string
	Text string
}

// Matcher is an ordered list of compiled rules. Later rules override
// earlier ones, so nested ignore files can re-include what the root file
// excluded.
type Matcher struct {
	rules  []Rule
	logger *zap.Logger
}

// Compile builds a Matcher. Configured globs come first and match anywhere
// in the tree. The root-level ignore file is compiled next, then nested
// files in the order given.
func Compile(excludeGlobs []string, sources []Source, logger *zap.Logger) *Matcher {
	m := &Matcher{logger: logging.OrNop(logger)}

	for i, glob := range excludeGlobs {
		raw, ok := ParseLine(glob)
		if !ok {
			continue
		}
		m.add(expand(raw, "", true), ConfigSource, i+1)
	}

	ordered := make([]Source, len(sources))
	copy(ordered, sources)
	sort.SliceStable(ordered, func(i, j int) bool {
		return scopeOf(ordered[i].Path) == "" && scopeOf(ordered[j].Path) != ""
	})

	for _, src := range ordered {
		m.compileSource(src)
	}

	m.logger.Debug("Compiled ignore matcher",
		zap.Int("excludeGlobs", len(excludeGlobs)),
		zap.Int("ignoreFiles", len(sources)),
		zap.Int("rules", len(m.rules)))
	return m
}

func (m *Matcher) compileSource(src Source) {
	scope := scopeOf(src.Path)
	lines := strings.Split(strings.ReplaceAll(src.Text, "\r\n", "\n"), "\n")
	for i, line := range lines {
		raw, ok := ParseLine(line)
		if !ok {
			continue
		}
		m.add(expand(raw, scope, false), src.Path, i+1)
	}
}

func (m *Matcher) add(rules []Rule, source string, lineNo int) {
	for _, r := range rules {
		if !doublestar.ValidatePattern(r.Pattern) {
			m.logger.Warn("Dropping malformed ignore pattern",
				zap.String("source", source),
				zap.Int("lineNo", lineNo),
				zap.String("pattern", r.Pattern))
			continue
		}
		r.Source = source
		r.Line = lineNo
		m.rules = append(m.rules, r)
	}
}

// scopeOf returns the root-relative directory of an ignore file, "" for
// the root itself.
func scopeOf(p string) string {
	dir := path.Dir(normalizePath(p))
	if dir == "." || dir == "/" {
		return ""
	}
	return dir
}

// Rules returns a copy of the compiled rules in evaluation order.
func (m *Matcher) Rules() []Rule {
	out := make([]Rule, len(m.rules))
	copy(out, m.rules)
	return out
}

// IsIgnored reports whether rel is excluded. rel is root-relative. All
// rules apply, including the bare form of directory-only rules, so a path
// that names an ignored directory is ignored too.
func (m *Matcher) IsIgnored(rel string) bool {
	ignored, _ := m.Explain(rel, true)
	return ignored
}

// IsIgnoredEntry is IsIgnored for a known entry type; directory-only rules
// do not match a file of the same name.
func (m *Matcher) IsIgnoredEntry(rel string, isDir bool) bool {
	ignored, _ := m.Explain(rel, isDir)
	return ignored
}

// Explain reports whether rel is ignored and the rule that decided it.
// A path beneath an ignored directory is ignored regardless of later
// negations, matching git's behaviour of not descending into excluded
// directories.
func (m *Matcher) Explain(rel string, isDir bool) (bool, *Rule) {
	rel = normalizePath(rel)
	if rel == "" {
		return false, nil
	}

	parts := strings.Split(rel, "/")
	for i := 1; i < len(parts); i++ {
		ancestor := strings.Join(parts[:i], "/")
		if ignored, rule := m.decide(ancestor, true); ignored {
			m.logger.Debug("Path is beneath an ignored directory",
				zap.String("path", rel),
				zap.String("directory", ancestor),
				zap.String("pattern", rule.Pattern))
			return true, rule
		}
	}

	ignored, rule := m.decide(rel, isDir)
	if rule != nil {
		m.logger.Debug("Path matches pattern",
			zap.String("path", rel),
			zap.String("pattern", rule.Pattern),
			zap.String("source", rule.Source),
			zap.Int("lineNo", rule.Line),
			zap.Bool("negate", rule.Negate))
	}
	return ignored, rule
}

// decide evaluates every rule against p; the last match wins.
func (m *Matcher) decide(p string, isDir bool) (bool, *Rule) {
	var matched *Rule
	for i := range m.rules {
		r := &m.rules[i]
		if r.DirOnly && !isDir {
			continue
		}
		ok, err := doublestar.Match(r.Pattern, p)
		if err != nil || !ok {
			continue
		}
		matched = r
	}
	if matched == nil {
		return false, nil
	}
	return !matched.Negate, matched
}

// normalizePath converts a relative path to the slash-separated, cleaned
// form rules are written against.
func normalizePath(p string) string {
	p = filepath.ToSlash(p)
	p = strings.TrimPrefix(p, "./")
	p = strings.Trim(p, "/")
	if p == "" || p == "." {
		return ""
	}
	return path.Clean(p)
}
