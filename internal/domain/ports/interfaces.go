// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package ports

import (
	"context"
	"time"

	"github.com/rafaelvolkmer/docsmith/internal/domain/model"
)

type IgnoreMatcher interface {
	AddPatterns(patterns []string)
	ShouldIgnore(relPath string) bool
	RuleCount() int
	Rules() []string
}

type IgnoreLoader interface {
	Load(ignorePath string, opts model.MatcherOptions) IgnoreMatcher
}

type FileScanner interface {
	Scan(ctx context.Context, root string, matcher IgnoreMatcher, opts model.ScanOptions) ([]model.ScanEntry, error)
}

type OutputWriter interface {
	WriteFile(ctx context.Context, path string, content []byte, createDirs bool) error
}

type Clock interface {
	Now() time.Time
	Since(t time.Time) time.Duration
	Sleep(ctx context.Context, d time.Duration) error
}

type OutputRenderer interface {
	Format() string
	Render(report *model.CollectReport) (string, error)
}

type RendererRegistry interface {
	Get(format string) (OutputRenderer, bool)
	List() []OutputRenderer
}
