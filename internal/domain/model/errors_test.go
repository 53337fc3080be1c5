// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package model

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileErrorMessageIncludesKindAndAttempts(t *testing.T) {
	fe := NewFileError(KindNotFound, "src/a.go", "stat failed", 3, fs.ErrNotExist)

	assert.Equal(t, "src/a.go: stat failed [not_found, 3 attempts]", fe.Error())
	assert.True(t, errors.Is(fe, fs.ErrNotExist))
}

func TestClassifyReadError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want FileErrorKind
	}{
		{"too large", fmt.Errorf("guard: %w", ErrFileTooLarge), KindTooLarge},
		{"not found", fmt.Errorf("stat: %w", fs.ErrNotExist), KindNotFound},
		{"not regular", fmt.Errorf("check: %w", ErrNotRegularFile), KindNotFound},
		{"timeout", fmt.Errorf("read: %w", context.DeadlineExceeded), KindTimeout},
		{"other", errors.New("disk on fire"), KindUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifyReadError(tc.err))
		})
	}
}

func TestKindPredicates(t *testing.T) {
	notFound := NewFileError(KindNotFound, "a", "m", 1, nil)
	tooLarge := NewFileError(KindTooLarge, "b", "m", 1, nil)
	timeout := NewFileError(KindTimeout, "c", "m", 1, nil)

	assert.True(t, IsNotFound(notFound))
	assert.False(t, IsNotFound(tooLarge))
	assert.True(t, IsTooLarge(tooLarge))
	assert.True(t, IsTimeout(fmt.Errorf("wrapped: %w", timeout)))
	assert.False(t, IsTimeout(errors.New("plain")))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "unknown", KindUnknown.String())
	assert.Equal(t, "not_found", KindNotFound.String())
	assert.Equal(t, "too_large", KindTooLarge.String())
	assert.Equal(t, "timeout", KindTimeout.String())
}
