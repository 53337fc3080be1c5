// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package ignore

import (
	"testing"

	"github.com/rafaelvolkmer/docsmith/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMatcher(t *testing.T, patterns ...string) *Matcher {
	t.Helper()
	m := New(model.MatcherOptions{}, nil)
	m.AddPatterns(patterns)
	return m
}

func TestShouldIgnore_LastMatchWins(t *testing.T) {
	m := newMatcher(t, "*.log", "!debug.log")
	assert.True(t, m.ShouldIgnore("server.log"))
	assert.False(t, m.ShouldIgnore("debug.log"), "negation added last must win")

	reversed := newMatcher(t, "!debug.log", "*.log")
	assert.True(t, reversed.ShouldIgnore("debug.log"), "broad rule added last must win")
}

func TestShouldIgnore_NoMatchingRule(t *testing.T) {
	m := newMatcher(t, "*.log", "build/")
	assert.False(t, m.ShouldIgnore("src/main.go"))

	empty := newMatcher(t)
	assert.False(t, empty.ShouldIgnore("anything"))
}

func TestShouldIgnore_DirectoryRuleWithNegatedChild(t *testing.T) {
	m := newMatcher(t, "build/", "!build/keep.txt")
	assert.True(t, m.ShouldIgnore("build/a.o"))
	assert.False(t, m.ShouldIgnore("build/keep.txt"))
	assert.True(t, m.ShouldIgnore("build"))
}

func TestShouldIgnore_GlobSemantics(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		path    string
		want    bool
	}{
		{"star within segment", "*.tmp", "cache/x.tmp", true},
		{"star does not cross segments", "src/*.go", "src/sub/a.go", false},
		{"double star crosses segments", "src/**/*.go", "src/a/b/c.go", true},
		{"double star matches zero segments", "src/**/main.go", "src/main.go", true},
		{"trailing double star", "vendor/**", "vendor/pkg/mod.go", true},
		{"trailing double star excludes the dir itself", "vendor/**", "vendor", false},
		{"question mark", "file?.txt", "file1.txt", true},
		{"question mark is one char", "file?.txt", "file12.txt", false},
		{"bare name matches any depth", "node_modules", "a/b/node_modules/x.js", true},
		{"slashed pattern anchors at root", "build/out.txt", "sub/build/out.txt", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMatcher(t, tt.pattern)
			assert.Equal(t, tt.want, m.ShouldIgnore(tt.path))
		})
	}
}

func TestShouldIgnore_CaseSensitivity(t *testing.T) {
	insensitive := newMatcher(t, "BUILD/")
	assert.True(t, insensitive.ShouldIgnore("build/a.o"), "matching is case-insensitive by default")

	sensitive := New(model.MatcherOptions{CaseSensitive: true}, nil)
	sensitive.AddPatterns([]string{"BUILD/"})
	assert.False(t, sensitive.ShouldIgnore("build/a.o"))
	assert.True(t, sensitive.ShouldIgnore("BUILD/a.o"))
}

func TestAddPatterns_DiscardsEmptyAndKeepsOrder(t *testing.T) {
	m := newMatcher(t, "", "   ", "./", "/", "a.txt", "!a.txt")
	require.Equal(t, 2, m.RuleCount())
	assert.Equal(t, []string{"a.txt", "!a.txt"}, m.Rules())
	assert.False(t, m.ShouldIgnore("a.txt"))
}

func TestAddPatterns_DisabledNegation(t *testing.T) {
	m := New(model.MatcherOptions{DisableNegation: true}, nil)
	m.AddPatterns([]string{"a.txt", "!a.txt"})

	// The second rule matches the literal name "!a.txt", not a negation.
	assert.True(t, m.ShouldIgnore("a.txt"))
	assert.True(t, m.ShouldIgnore("!a.txt"))
}

func TestAddPatterns_MalformedGlobDoesNotPanic(t *testing.T) {
	m := newMatcher(t, "[invalid", "ok[").ShouldIgnore
	assert.NotPanics(t, func() { m("whatever") })
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  foo/bar  ", "foo/bar"},
		{`foo\bar`, "foo/bar"},
		{"./foo", "foo"},
		{"/foo", "foo"},
		{"foo/", "foo"},
		{"././//foo//", "foo"},
		{"./", ""},
		{"", ""},
	}

	for _, tt := range tests {
		got := Normalize(tt.in)
		assert.Equal(t, tt.want, got, "Normalize(%q)", tt.in)
		assert.Equal(t, got, Normalize(got), "Normalize must be idempotent for %q", tt.in)
	}
}
