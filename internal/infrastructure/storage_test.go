// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package infrastructure

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileCreatesParentDirectories(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "nested", "deeper", "bundle.md")

	storage := NewFileStorage()
	require.NoError(t, storage.WriteFile(context.Background(), dest, []byte("bundle"), true))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "bundle", string(data))
}

func TestWriteFileOverwrites(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "bundle.md")

	storage := NewFileStorage()
	require.NoError(t, storage.WriteFile(context.Background(), dest, []byte("old"), false))
	require.NoError(t, storage.WriteFile(context.Background(), dest, []byte("new"), false))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestWriteFileMissingParentFails(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "absent", "bundle.md")

	storage := NewFileStorage()
	assert.Error(t, storage.WriteFile(context.Background(), dest, []byte("x"), false))
}
