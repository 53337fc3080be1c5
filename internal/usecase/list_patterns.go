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

type ListPatternsRequest struct {
	RootPath      string
	IgnoreFile    string
	ExtraPatterns []string
	UseGitignore  bool
	CaseSensitive bool
	TestPath      string // optional probe path, relative to the root
}

// ListPatternsUseCase loads the ignore rule set the way collect would and
// reports it, optionally with the verdict for one probe path.
type ListPatternsUseCase struct {
	loader ports.IgnoreLoader
}

func NewListPatternsUseCase(loader ports.IgnoreLoader) *ListPatternsUseCase {
	return &ListPatternsUseCase{loader: loader}
}

func (uc *ListPatternsUseCase) Execute(ctx context.Context, req ListPatternsRequest) (*model.PatternsReport, error) {
	_ = ctx

	if req.RootPath == "" {
		return nil, fmt.Errorf("root path is required")
	}
	absRoot, err := filepath.Abs(req.RootPath)
	if err != nil {
		return nil, fmt.Errorf("resolve root %s: %w", req.RootPath, err)
	}

	ignorePath := ignoreFilePath(absRoot, req.IgnoreFile)
	matcher := uc.loader.Load(ignorePath, model.MatcherOptions{
		CaseSensitive: req.CaseSensitive,
		ExtraPatterns: req.ExtraPatterns,
		UseGitignore:  req.UseGitignore,
	})

	report := &model.PatternsReport{
		IgnoreFile: ignorePath,
		Rules:      matcher.Rules(),
	}
	if req.TestPath != "" {
		report.TestPath = req.TestPath
		report.Ignored = matcher.ShouldIgnore(req.TestPath)
	}
	return report, nil
}
