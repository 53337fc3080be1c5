// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package infrastructure

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rafaelvolkmer/docsmith/internal/domain/ports"
)

// FileStorage persists collected content to the local filesystem.
type FileStorage struct{}

func NewFileStorage() *FileStorage {
	return &FileStorage{}
}

var _ ports.OutputWriter = (*FileStorage)(nil)

// WriteFile writes content to path, overwriting any existing file. With
// createDirs set, every missing parent directory is created first.
func (s *FileStorage) WriteFile(ctx context.Context, path string, content []byte, createDirs bool) error {
	_ = ctx

	if createDirs {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}
