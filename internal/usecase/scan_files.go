// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package usecase

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rafaelvolkmer/docsmith/internal/domain/model"
	"github.com/rafaelvolkmer/docsmith/internal/domain/ports"
)

type ScanFilesRequest struct {
	RootPath      string
	Extensions    []string
	IgnoreFile    string
	ExtraPatterns []string
	UseGitignore  bool
	CaseSensitive bool
	Concurrency   int
}

// ScanFilesUseCase is the dry-run half of collect: it reports which files
// would be selected without reading any of them.
type ScanFilesUseCase struct {
	loader  ports.IgnoreLoader
	scanner ports.FileScanner
}

func NewScanFilesUseCase(loader ports.IgnoreLoader, scanner ports.FileScanner) *ScanFilesUseCase {
	return &ScanFilesUseCase{
		loader:  loader,
		scanner: scanner,
	}
}

func (uc *ScanFilesUseCase) Execute(ctx context.Context, req ScanFilesRequest) ([]model.ScanEntry, error) {
	if req.RootPath == "" {
		return nil, fmt.Errorf("root path is required")
	}
	absRoot, err := filepath.Abs(req.RootPath)
	if err != nil {
		return nil, fmt.Errorf("resolve root %s: %w", req.RootPath, err)
	}

	matcher := uc.loader.Load(ignoreFilePath(absRoot, req.IgnoreFile), model.MatcherOptions{
		CaseSensitive: req.CaseSensitive,
		ExtraPatterns: req.ExtraPatterns,
		UseGitignore:  req.UseGitignore,
	})

	entries, err := uc.scanner.Scan(ctx, absRoot, matcher, model.ScanOptions{
		Concurrency: req.Concurrency,
		Extensions:  req.Extensions,
	})
	if err != nil {
		return nil, fmt.Errorf("scan source files: %w", err)
	}
	return entries, nil
}
