// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package ignore

import (
	"regexp"
	"strings"

	"github.com/rafaelvolkmer/docsmith/internal/domain/model"
	"github.com/rafaelvolkmer/docsmith/internal/domain/ports"
	"go.uber.org/zap"
)

// rule is one compiled ignore pattern. The rule list is append-only and
// order-significant: the last matching rule decides the verdict.
type rule struct {
	raw     string
	pattern *regexp.Regexp
	negate  bool
}

// Matcher decides whether a relative path is excluded by a set of
// gitignore-style rules.
type Matcher struct {
	opts   model.MatcherOptions
	rules  []rule
	logger *zap.Logger
}

var _ ports.IgnoreMatcher = (*Matcher)(nil)

// New returns an empty Matcher. A nil logger is replaced with a no-op one.
func New(opts model.MatcherOptions, logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{
		opts:   opts,
		logger: logger,
	}
}

// AddPatterns normalizes, compiles and appends the given raw patterns.
// Patterns that are empty after normalization are discarded. Compilation is
// best-effort: an unusable pattern is dropped with a warning, never an error.
func (m *Matcher) AddPatterns(patterns []string) {
	for _, raw := range patterns {
		trimmed := strings.TrimSpace(raw)

		negate := false
		if !m.opts.DisableNegation && strings.HasPrefix(trimmed, "!") {
			negate = true
			trimmed = trimmed[1:]
		}

		normalized := Normalize(trimmed)
		if normalized == "" {
			continue
		}

		compiled, err := m.compile(normalized)
		if err != nil {
			m.logger.Warn("dropping unusable ignore pattern",
				zap.String("pattern", raw),
				zap.Error(err))
			continue
		}

		m.rules = append(m.rules, rule{raw: raw, pattern: compiled, negate: negate})
	}
}

// ShouldIgnore evaluates every rule against the normalized candidate path in
// addition order. Each matching rule overwrites the verdict according to its
// negation flag; a path matching zero rules is never ignored.
func (m *Matcher) ShouldIgnore(relPath string) bool {
	candidate := Normalize(relPath)
	if candidate == "" {
		return false
	}

	ignored := false
	for _, r := range m.rules {
		if r.pattern.MatchString(candidate) {
			ignored = !r.negate
		}
	}
	return ignored
}

// RuleCount reports the number of compiled rules.
func (m *Matcher) RuleCount() int {
	return len(m.rules)
}

// Rules returns the raw source text of every compiled rule, in order.
func (m *Matcher) Rules() []string {
	out := make([]string, len(m.rules))
	for i, r := range m.rules {
		out[i] = r.raw
	}
	return out
}

// Normalize canonicalizes a pattern or candidate path: backslashes become
// slashes, leading "./" and "/" and trailing "/" are stripped, surrounding
// whitespace is trimmed. Normalize is idempotent.
func Normalize(p string) string {
	p = strings.TrimSpace(p)
	p = strings.ReplaceAll(p, `\`, "/")

	for {
		switch {
		case strings.HasPrefix(p, "./"):
			p = p[2:]
		case strings.HasPrefix(p, "/"):
			p = p[1:]
		default:
			return strings.TrimSpace(strings.TrimRight(p, "/"))
		}
	}
}

// compile translates a normalized glob pattern into an anchored regular
// expression. "*" matches within one segment, "**" spans segments, "?"
// matches a single non-separator character. A pattern containing a slash is
// anchored at the root of the tree; a bare name matches at any depth, the
// way version-control ignore files treat basename patterns.
func (m *Matcher) compile(pattern string) (*regexp.Regexp, error) {
	var b strings.Builder

	if !m.opts.CaseSensitive {
		b.WriteString("(?i)")
	}
	if strings.Contains(pattern, "/") {
		b.WriteString("^")
	} else {
		b.WriteString("^(?:.*/)?")
	}

	for i := 0; i < len(pattern); {
		switch c := pattern[i]; c {
		case '*':
			if i+1 < len(pattern) && pattern[i+1] == '*' {
				i += 2
				if i < len(pattern) && pattern[i] == '/' {
					// "a/**/b" must also match "a/b", so swallow the slash.
					i++
					b.WriteString("(?:.*/)?")
				} else {
					b.WriteString(".*")
				}
			} else {
				b.WriteString("[^/]*")
				i++
			}
		case '?':
			b.WriteString("[^/]")
			i++
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
			i++
		}
	}

	// A matching directory excludes everything beneath it.
	b.WriteString("(?:/.*)?$")

	return regexp.Compile(b.String())
}
