// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package ignore

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rafaelvolkmer/docsmith/internal/domain/model"
	"github.com/rafaelvolkmer/docsmith/internal/domain/ports"
	"go.uber.org/zap"
)

// Loader sources ignore rules from inline patterns and ignore files.
type Loader struct {
	logger *zap.Logger
}

var _ ports.IgnoreLoader = (*Loader)(nil)

// NewLoader returns a Loader. A nil logger is replaced with a no-op one.
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{logger: logger}
}

// Load builds a Matcher from, in order: the caller-supplied extra patterns,
// the primary ignore file, and (when enabled) the .gitignore sitting next to
// it. Missing files contribute zero rules; loading never fails.
func (l *Loader) Load(ignorePath string, opts model.MatcherOptions) ports.IgnoreMatcher {
	return LoadFromFile(ignorePath, opts, l.logger)
}

// LoadFromFile is the Loader behavior as a plain function, for callers that
// do not need the port.
func LoadFromFile(ignorePath string, opts model.MatcherOptions, logger *zap.Logger) *Matcher {
	m := New(opts, logger)
	m.AddPatterns(opts.ExtraPatterns)
	m.AddPatterns(readPatternLines(ignorePath, m.logger))

	if opts.UseGitignore && ignorePath != "" {
		gitPath := filepath.Join(filepath.Dir(ignorePath), model.GitignoreFileName)
		m.AddPatterns(readPatternLines(gitPath, m.logger))
	}
	return m
}

// readPatternLines reads one pattern per line, skipping blank lines and
// "#" comments. A missing or unreadable file yields no patterns.
func readPatternLines(path string, logger *zap.Logger) []string {
	if path == "" {
		return nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("could not read ignore file",
				zap.String("path", path),
				zap.Error(err))
		}
		return nil
	}

	var patterns []string
	for _, line := range strings.Split(string(content), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns
}
