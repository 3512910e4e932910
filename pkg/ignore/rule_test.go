package ignore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want RawLine
		ok   bool
	}{
		{name: "blank", line: "   ", ok: false},
		{name: "comment", line: "# build output", ok: false},
		{name: "simple name", line: "foo", want: RawLine{Pattern: "foo"}, ok: true},
		{name: "surrounding space", line: "  *.log \r", want: RawLine{Pattern: "*.log"}, ok: true},
		{name: "negation", line: "!keep.log", want: RawLine{Pattern: "keep.log", Negate: true}, ok: true},
		{name: "leading slash", line: "/foo", want: RawLine{Pattern: "foo", Anchored: true}, ok: true},
		{name: "inner slash", line: "docs/api", want: RawLine{Pattern: "docs/api", Anchored: true}, ok: true},
		{name: "directory only", line: "build/", want: RawLine{Pattern: "build", DirOnly: true}, ok: true},
		{name: "anchored directory", line: "!/out/", want: RawLine{Pattern: "out", Negate: true, Anchored: true, DirOnly: true}, ok: true},
		{name: "escaped hash", line: `\#notes`, want: RawLine{Pattern: "#notes"}, ok: true},
		{name: "escaped bang", line: `\!important`, want: RawLine{Pattern: "!important"}, ok: true},
		{name: "only markers", line: "!/", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseLine(tt.line)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func patternsOf(rules []Rule) []string {
	out := make([]string, 0, len(rules))
	for _, r := range rules {
		out = append(out, r.Pattern)
	}
	return out
}

func TestExpand(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		scope  string
		config bool
		want   []string
	}{
		{name: "unanchored at root", line: "foo", want: []string{"foo", "**/foo"}},
		{name: "unanchored nested", line: "foo", scope: "pkg/a", want: []string{"pkg/a/foo", "pkg/a/**/foo"}},
		{name: "anchored at root", line: "/foo", want: []string{"foo"}},
		{name: "anchored nested", line: "/foo", scope: "pkg", want: []string{"pkg/foo"}},
		{name: "inner slash nested", line: "gen/out.txt", scope: "pkg", want: []string{"pkg/gen/out.txt"}},
		{name: "directory only", line: "build/", want: []string{"build", "build/**", "**/build", "**/build/**"}},
		{name: "leading double star", line: "**/tmp", scope: "a", want: []string{"a/**/tmp"}},
		{name: "config glob with slash stays unanchored", line: "gen/*.pb.go", config: true, want: []string{"gen/*.pb.go", "**/gen/*.pb.go"}},
		{name: "config glob with leading double star", line: "**/node_modules/**", config: true, want: []string{"**/node_modules/**"}},
		{name: "scope with metacharacters", line: "x", scope: "odd[1]", want: []string{`odd\[1\]/x`, `odd\[1\]/**/x`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, ok := ParseLine(tt.line)
			assert.True(t, ok)
			assert.Equal(t, tt.want, patternsOf(expand(raw, tt.scope, tt.config)))
		})
	}
}

func TestExpandKeepsNegationOnEveryPattern(t *testing.T) {
	raw, _ := ParseLine("!vendor/")
	rules := expand(raw, "", false)
	assert.Len(t, rules, 4)
	for _, r := range rules {
		assert.True(t, r.Negate, r.Pattern)
	}
	assert.True(t, rules[0].DirOnly)
	assert.True(t, rules[1].DirOnly)
}
