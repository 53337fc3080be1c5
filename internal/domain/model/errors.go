// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package model

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
)

// FileErrorKind classifies the failure that exhausted a file's retries.
// The kind only affects the surfaced message; every kind is retryable.
type FileErrorKind int

const (
	// KindUnknown covers any I/O failure not classified below.
	KindUnknown FileErrorKind = iota
	// KindNotFound means the path does not exist or is not a regular file.
	KindNotFound
	// KindTooLarge means the file exceeds the size threshold while the
	// large-file guard is enabled.
	KindTooLarge
	// KindTimeout means a read attempt was aborted by its deadline.
	KindTimeout
)

// String returns the string representation of FileErrorKind.
func (k FileErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindTooLarge:
		return "too_large"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Sentinel causes wrapped into attempt errors so ClassifyReadError can
// recover the kind across fmt.Errorf boundaries.
var (
	ErrFileTooLarge   = errors.New("file exceeds maximum size")
	ErrNotRegularFile = errors.New("not a regular file")
)

// FileError is the terminal, immutable error for one input path after all
// retry attempts were spent.
type FileError struct {
	Kind     FileErrorKind
	Path     string
	Message  string
	Attempts int   // total attempts, i.e. maxRetries + 1 on full exhaustion
	Err      error // last underlying error
}

// NewFileError builds a FileError for the given path and attempt count.
func NewFileError(kind FileErrorKind, path, message string, attempts int, err error) *FileError {
	return &FileError{
		Kind:     kind,
		Path:     path,
		Message:  message,
		Attempts: attempts,
		Err:      err,
	}
}

// Error implements the error interface.
func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %s [%s, %d attempts]", e.Path, e.Message, e.Kind, e.Attempts)
}

// Unwrap returns the last underlying error for errors.Is / errors.As.
func (e *FileError) Unwrap() error {
	return e.Err
}

// Failure converts the error into its serializable report form.
func (e *FileError) Failure() FileFailure {
	return FileFailure{
		Path:     e.Path,
		Kind:     e.Kind.String(),
		Message:  e.Message,
		Attempts: e.Attempts,
	}
}

// ClassifyReadError maps an attempt error onto a FileErrorKind.
func ClassifyReadError(err error) FileErrorKind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrFileTooLarge):
		return KindTooLarge
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, ErrNotRegularFile):
		return KindNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	default:
		return KindUnknown
	}
}

// IsNotFound checks if the error is or wraps a not-found FileError.
func IsNotFound(err error) bool {
	return hasKind(err, KindNotFound)
}

// IsTooLarge checks if the error is or wraps a too-large FileError.
func IsTooLarge(err error) bool {
	return hasKind(err, KindTooLarge)
}

// IsTimeout checks if the error is or wraps a timeout FileError or
// context.DeadlineExceeded.
func IsTimeout(err error) bool {
	return hasKind(err, KindTimeout) || errors.Is(err, context.DeadlineExceeded)
}

func hasKind(err error, kind FileErrorKind) bool {
	if err == nil {
		return false
	}
	var fe *FileError
	return errors.As(err, &fe) && fe.Kind == kind
}
