package ignore

import (
	"path"
	"strings"
)

// RawLine is one meaningful line of an ignore file, split into its
// pattern body and flags.
type RawLine struct {
	Pattern  string // Pattern body without '!', leading '/' or trailing '/'.
	Negate   bool   // Line started with '!'.
	Anchored bool   // Leading '/' or an inner '/': match relative to the ignore file's directory only.
	DirOnly  bool   // Line ended with '/'.
}

// Rule is a compiled doublestar pattern matched against root-relative,
// slash-separated paths.
type Rule struct {
	Pattern string // doublestar pattern.
	Negate  bool   // A match re-includes the path instead of ignoring it.
	DirOnly bool   // From a trailing-slash line; only matches directories. Files beneath are caught through their ancestors.
	Source  string // Ignore file (root-relative) or "config" for configured globs.
	Line    int    // Line number in the source (1-based).
}

// ParseLine processes a single line from an ignore file. It returns false
// for blank lines, comments and lines with no pattern left after the
// markers are removed.
func ParseLine(line string) (RawLine, bool) {
	trimmed := strings.TrimSpace(line)

	// Ignore empty lines and comments
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return RawLine{}, false
	}

	var raw RawLine
	if strings.HasPrefix(trimmed, "!") {
		raw.Negate = true
		trimmed = trimmed[1:]
	}

	// Escaped '#' and '!' are literal.
	if strings.HasPrefix(trimmed, `\#`) || strings.HasPrefix(trimmed, `\!`) {
		trimmed = trimmed[1:]
	}

	if strings.HasPrefix(trimmed, "/") {
		raw.Anchored = true
		trimmed = trimmed[1:]
	}

	if strings.HasSuffix(trimmed, "/") {
		raw.DirOnly = true
		trimmed = strings.TrimRight(trimmed, "/")
	}

	if trimmed == "" {
		return RawLine{}, false
	}

	if strings.Contains(trimmed, "/") {
		raw.Anchored = true
	}
	raw.Pattern = trimmed
	return raw, true
}

// expand turns a parsed line into the doublestar patterns that implement it
// inside the directory scope (root-relative, "" for the root).
//
// Unanchored names match at any depth beneath scope, so they produce a
// direct-child pattern and a "**/" pattern. Directory-only lines add a
// "/**" pattern for everything beneath the directory.
func expand(raw RawLine, scope string, forceUnanchored bool) []Rule {
	prefix := escapeMeta(scope)

	var bases []string
	switch {
	case raw.Anchored && !forceUnanchored:
		bases = []string{joinPattern(prefix, raw.Pattern)}
	case strings.HasPrefix(raw.Pattern, "**/"):
		bases = []string{joinPattern(prefix, raw.Pattern)}
	default:
		bases = []string{
			joinPattern(prefix, raw.Pattern),
			joinPattern(prefix, "**/"+raw.Pattern),
		}
	}

	rules := make([]Rule, 0, len(bases)*2)
	for _, base := range bases {
		if raw.DirOnly {
			rules = append(rules,
				Rule{Pattern: base, Negate: raw.Negate, DirOnly: true},
				Rule{Pattern: base + "/**", Negate: raw.Negate, DirOnly: true},
			)
			continue
		}
		rules = append(rules, Rule{Pattern: base, Negate: raw.Negate})
	}
	return rules
}

func joinPattern(prefix, pattern string) string {
	if prefix == "" {
		return pattern
	}
	return prefix + "/" + pattern
}

// escapeMeta escapes glob metacharacters in a literal directory path so it
// can prefix a pattern.
func escapeMeta(p string) string {
	if p == "" || p == "." {
		return ""
	}
	var b strings.Builder
	for _, r := range path.Clean(p) {
		switch r {
		case '*', '?', '[', ']', '{', '}', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
