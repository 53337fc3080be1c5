// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package integration

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	ignoreadapter "github.com/rafaelvolkmer/docsmith/internal/adapter/ignore"
	"github.com/rafaelvolkmer/docsmith/internal/domain/model"
	"github.com/rafaelvolkmer/docsmith/internal/infrastructure"
	"github.com/rafaelvolkmer/docsmith/internal/usecase"
)

func newCollectUseCase() *usecase.CollectFilesUseCase {
	return usecase.NewCollectFilesUseCase(
		ignoreadapter.NewLoader(nil),
		infrastructure.NewFSScanner(nil),
		infrastructure.NewFileStorage(),
		infrastructure.NewSystemClock(),
		nil,
	)
}

func TestCollectSampleData(t *testing.T) {
	root := filepath.Join("..", "data")
	out := filepath.Join(t.TempDir(), "bundle.md")
	ctx := context.Background()

	report, err := newCollectUseCase().Execute(ctx, usecase.CollectFilesRequest{
		RootPath:   root,
		OutputPath: out,
		Extensions: []string{"go"},
		Options:    model.DefaultProcessingOptions(2),
	})
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}

	if len(report.Entries) == 0 {
		t.Fatalf("expected at least one collected file")
	}
	if report.Stats.Processed == 0 {
		t.Fatalf("expected at least one processed file in stats")
	}

	bundle, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("bundle was not written: %v", err)
	}
	if !strings.Contains(string(bundle), "# Source: sample.go") {
		t.Fatalf("bundle missing source header for sample.go:\n%s", bundle)
	}
	if !strings.Contains(string(bundle), "func Add(") {
		t.Fatalf("bundle missing collected content")
	}
}

func TestCollectHonorsIgnoreFile(t *testing.T) {
	root := t.TempDir()
	ctx := context.Background()

	writeFixture(t, root, "keepme.go", "package keepme\n")
	writeFixture(t, root, "build/generated.go", "package generated\n")
	writeFixture(t, root, "build/keep.go", "package keep\n")
	writeFixture(t, root, model.DefaultIgnoreFileName, "build/\n!build/keep.go\n")

	out := filepath.Join(t.TempDir(), "bundle.md")

	report, err := newCollectUseCase().Execute(ctx, usecase.CollectFilesRequest{
		RootPath:   root,
		OutputPath: out,
		Extensions: []string{"go"},
		Options:    model.DefaultProcessingOptions(2),
	})
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}

	if got := len(report.Entries); got != 2 {
		t.Fatalf("expected 2 selected files, got %d: %+v", got, report.Entries)
	}

	bundle, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("bundle was not written: %v", err)
	}
	text := string(bundle)
	if !strings.Contains(text, "# Source: keepme.go") {
		t.Fatalf("bundle missing keepme.go section")
	}
	if !strings.Contains(text, "# Source: build/keep.go") {
		t.Fatalf("bundle missing negated build/keep.go section")
	}
	if strings.Contains(text, "generated.go") {
		t.Fatalf("bundle contains ignored file:\n%s", text)
	}
}

func writeFixture(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir fixture: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
}
