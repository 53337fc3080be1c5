// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package infrastructure

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	ignoreadapter "github.com/rafaelvolkmer/docsmith/internal/adapter/ignore"
	"github.com/rafaelvolkmer/docsmith/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func relPaths(entries []model.ScanEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.RelPath)
	}
	return out
}

func TestScanAppliesIgnoreRules(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"main.go":        "package main",
		"build/out.go":   "package out",
		"build/keep.txt": "kept",
		"docs/note.md":   "# note",
	})

	matcher := ignoreadapter.New(model.MatcherOptions{}, nil)
	matcher.AddPatterns([]string{"build/", "!build/keep.txt"})

	scanner := NewFSScanner(nil)
	entries, err := scanner.Scan(context.Background(), root, matcher, model.ScanOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"build/keep.txt", "docs/note.md", "main.go"}, relPaths(entries))
}

func TestScanFiltersByExtension(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.go":     "package a",
		"b.md":     "# b",
		"c.txt":    "c",
		"Makefile": "all:",
	})

	scanner := NewFSScanner(nil)
	entries, err := scanner.Scan(context.Background(), root, nil, model.ScanOptions{
		Extensions: []string{".go", "MD"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"a.go", "b.md"}, relPaths(entries))
}

func TestScanReportsSizesAndExtensions(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/lib.go": "package lib\n",
	})

	scanner := NewFSScanner(nil)
	entries, err := scanner.Scan(context.Background(), root, nil, model.ScanOptions{})
	require.NoError(t, err)

	require.Len(t, entries, 1)
	assert.Equal(t, "src/lib.go", entries[0].RelPath)
	assert.Equal(t, filepath.Join(root, "src", "lib.go"), entries[0].Path)
	assert.Equal(t, int64(len("package lib\n")), entries[0].SizeBytes)
	assert.Equal(t, "go", entries[0].Extension)
}

func TestScanOrderIsDeterministic(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"zebra.go":    "z",
		"alpha.go":    "a",
		"mid/deep.go": "d",
	})

	scanner := NewFSScanner(nil)

	var previous []string
	for i := 0; i < 3; i++ {
		entries, err := scanner.Scan(context.Background(), root, nil, model.ScanOptions{Concurrency: 4})
		require.NoError(t, err)

		current := relPaths(entries)
		assert.Equal(t, []string{"alpha.go", "mid/deep.go", "zebra.go"}, current)
		if previous != nil {
			assert.Equal(t, previous, current)
		}
		previous = current
	}
}

func TestScanExcludesSymlinks(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"real.go": "package real",
	})
	link := filepath.Join(root, "link.go")
	if err := os.Symlink(filepath.Join(root, "real.go"), link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	scanner := NewFSScanner(nil)
	entries, err := scanner.Scan(context.Background(), root, nil, model.ScanOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"real.go"}, relPaths(entries))
}

func TestScanMissingRootFails(t *testing.T) {
	scanner := NewFSScanner(nil)
	_, err := scanner.Scan(context.Background(), filepath.Join(t.TempDir(), "gone"), nil, model.ScanOptions{})
	assert.Error(t, err)
}

func TestScanExcludesIgnoredDirectorySubtree(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"vendor/dep/dep.go": "package dep",
		"app.go":            "package app",
	})

	matcher := ignoreadapter.New(model.MatcherOptions{}, nil)
	matcher.AddPatterns([]string{"vendor/"})

	scanner := NewFSScanner(nil)
	entries, err := scanner.Scan(context.Background(), root, matcher, model.ScanOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"app.go"}, relPaths(entries))
}
