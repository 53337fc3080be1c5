// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package usecase

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rafaelvolkmer/docsmith/internal/domain/model"
	"github.com/rafaelvolkmer/docsmith/internal/domain/ports"
	"go.uber.org/zap"
)

type CollectFilesRequest struct {
	RootPath      string
	OutputPath    string // empty disables bundle persistence
	Extensions    []string
	IgnoreFile    string // empty means <root>/.docsignore
	ExtraPatterns []string
	UseGitignore  bool
	CaseSensitive bool
	Options       model.ProcessingOptions
}

// CollectFilesUseCase runs the full pipeline: load ignore rules, scan the
// tree, read every surviving file under bounded concurrency, and persist
// the combined bundle for the downstream analysis stage.
type CollectFilesUseCase struct {
	loader  ports.IgnoreLoader
	scanner ports.FileScanner
	writer  ports.OutputWriter
	clock   ports.Clock
	logger  *zap.Logger
}

func NewCollectFilesUseCase(
	loader ports.IgnoreLoader,
	scanner ports.FileScanner,
	writer ports.OutputWriter,
	clock ports.Clock,
	logger *zap.Logger,
) *CollectFilesUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CollectFilesUseCase{
		loader:  loader,
		scanner: scanner,
		writer:  writer,
		clock:   clock,
		logger:  logger,
	}
}

func (uc *CollectFilesUseCase) Execute(ctx context.Context, req CollectFilesRequest) (*model.CollectReport, error) {
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
		Concurrency: req.Options.Concurrency,
		Extensions:  req.Extensions,
	})
	if err != nil {
		return nil, fmt.Errorf("scan source files: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no files to collect under %s", absRoot)
	}

	processor := NewFileProcessor(req.Options, uc.clock, uc.writer, uc.logger)

	eventsDone := make(chan struct{})
	go func() {
		defer close(eventsDone)
		uc.logEvents(processor.Events())
	}()

	relByPath := make(map[string]string, len(entries))
	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.Path
		relByPath[e.Path] = e.RelPath
	}

	var bundle bytes.Buffer
	var failures []model.FileFailure

	for res := range processor.ProcessFiles(ctx, paths) {
		if res.Failed() {
			failures = append(failures, res.Err.Failure())
			continue
		}
		writeBundleSection(&bundle, relByPath[res.Path], res.Content)
	}
	<-eventsDone

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if req.OutputPath != "" {
		if err := processor.WriteOutputFile(ctx, bundle.Bytes(), req.OutputPath, true); err != nil {
			return nil, fmt.Errorf("write bundle: %w", err)
		}
	}

	return &model.CollectReport{
		RootPath:    absRoot,
		OutputPath:  req.OutputPath,
		GeneratedAt: uc.clock.Now().UTC(),
		Entries:     entries,
		Failures:    failures,
		Stats:       processor.Stats(),
	}, nil
}

// logEvents drains the processor's event channel into structured logs so a
// cancelled or slow consumer never stalls the pipeline.
func (uc *CollectFilesUseCase) logEvents(events <-chan model.Event) {
	for ev := range events {
		switch ev.Kind {
		case model.EventProgress:
			uc.logger.Debug("reading file",
				zap.String("path", ev.Path),
				zap.Int64("bytesRead", ev.Progress.BytesRead),
				zap.Float64("percent", ev.Progress.Percent))
		case model.EventError:
			uc.logger.Warn("file failed", zap.String("path", ev.Path), zap.Error(ev.Err))
		case model.EventSkip:
			uc.logger.Info("file skipped", zap.String("path", ev.Path), zap.String("reason", ev.Reason))
		default:
			uc.logger.Debug(string(ev.Kind), zap.String("path", ev.Path))
		}
	}
}

// writeBundleSection appends one file to the bundle under a source header.
func writeBundleSection(bundle *bytes.Buffer, relPath string, content []byte) {
	fmt.Fprintf(bundle, "# %s\n# Source: %s\n\n", strings.Repeat("-", 78), relPath)
	bundle.Write(content)
	if len(content) == 0 || content[len(content)-1] != '\n' {
		bundle.WriteByte('\n')
	}
	bundle.WriteByte('\n')
}

// ignoreFilePath resolves the primary ignore file, defaulting to the
// tool-specific file at the scan root.
func ignoreFilePath(absRoot, override string) string {
	if override != "" {
		return override
	}
	return filepath.Join(absRoot, model.DefaultIgnoreFileName)
}
