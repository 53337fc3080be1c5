// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package infrastructure

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rafaelvolkmer/docsmith/internal/domain/model"
	"github.com/rafaelvolkmer/docsmith/internal/domain/ports"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// FSScanner walks a directory tree and produces a ScanEntry for every
// regular file that survives ignore-rule and extension filtering. Traversal
// is lexical, so emission order is deterministic for a given tree. Symlinks
// are never followed and never emitted.
type FSScanner struct {
	logger *zap.Logger
}

func NewFSScanner(logger *zap.Logger) *FSScanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FSScanner{logger: logger}
}

var _ ports.FileScanner = (*FSScanner)(nil)

type scanCandidate struct {
	path string
	rel  string
	ext  string
}

func (s *FSScanner) Scan(ctx context.Context, root string, matcher ports.IgnoreMatcher, opts model.ScanOptions) ([]model.ScanEntry, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root %s: %w", root, err)
	}

	allowed := allowedExtensions(opts.Extensions)

	var candidates []scanCandidate

	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == absRoot {
				return walkErr
			}
			s.logger.Warn("skipping unreadable entry",
				zap.String("path", path),
				zap.Error(walkErr))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path == absRoot {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		rel, relErr := filepath.Rel(absRoot, path)
		if relErr != nil {
			s.logger.Warn("skipping entry outside root",
				zap.String("path", path),
				zap.Error(relErr))
			return nil
		}
		rel = filepath.ToSlash(rel)

		// Ignore rules are evaluated per file, never per directory, so a
		// negated rule can re-include a file under an excluded directory.
		if d.IsDir() {
			return nil
		}

		// Symlinks and other non-regular entries are excluded outright.
		if !d.Type().IsRegular() {
			return nil
		}
		if matcher != nil && matcher.ShouldIgnore(rel) {
			return nil
		}

		ext := fileExtension(path)
		if len(allowed) > 0 {
			if _, ok := allowed[ext]; !ok {
				return nil
			}
		}

		candidates = append(candidates, scanCandidate{path: path, rel: rel, ext: ext})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", absRoot, err)
	}

	return s.statCandidates(ctx, candidates, opts.Concurrency)
}

// statCandidates stats every candidate under a bounded level of parallelism
// and assembles the entries in traversal order. Entries that disappear or
// become unreadable between walk and stat are dropped, not fatal.
func (s *FSScanner) statCandidates(ctx context.Context, candidates []scanCandidate, concurrency int) ([]model.ScanEntry, error) {
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
		if concurrency < 1 {
			concurrency = 1
		}
	}

	sizes := make([]int64, len(candidates))
	keep := make([]bool, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i := range candidates {
		i := i
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			info, err := os.Lstat(candidates[i].path)
			if err != nil || !info.Mode().IsRegular() {
				s.logger.Warn("dropping unreadable file",
					zap.String("path", candidates[i].path),
					zap.Error(err))
				return nil
			}
			sizes[i] = info.Size()
			keep[i] = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	entries := make([]model.ScanEntry, 0, len(candidates))
	for i, c := range candidates {
		if !keep[i] {
			continue
		}
		entries = append(entries, model.ScanEntry{
			Path:      c.path,
			RelPath:   c.rel,
			SizeBytes: sizes[i],
			Extension: c.ext,
		})
	}
	return entries, nil
}

// allowedExtensions lowers and un-dots the allow-list so both "go" and
// ".go" are accepted from configuration.
func allowedExtensions(extensions []string) map[string]struct{} {
	allowed := make(map[string]struct{}, len(extensions))
	for _, e := range extensions {
		trimmed := strings.TrimPrefix(strings.TrimSpace(e), ".")
		if trimmed == "" {
			continue
		}
		allowed[strings.ToLower(trimmed)] = struct{}{}
	}
	return allowed
}

// fileExtension returns the lowercased substring after the last dot of the
// base name, or the empty string when there is none.
func fileExtension(path string) string {
	base := filepath.Base(path)
	idx := strings.LastIndexByte(base, '.')
	if idx < 0 {
		return ""
	}
	return strings.ToLower(base[idx+1:])
}
