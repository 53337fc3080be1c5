// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package model

import "time"

const (
	// DefaultChunkSize is the read buffer size for chunked file reads.
	DefaultChunkSize = 1 << 20 // 1 MiB
	// DefaultMaxRetries is the number of retries after the first attempt.
	DefaultMaxRetries = 3
	// DefaultRetryDelay is the linear backoff base delay.
	DefaultRetryDelay = 1000 * time.Millisecond
	// DefaultTimeout bounds a single read attempt.
	DefaultTimeout = 30 * time.Second
	// DefaultMaxFileSize is the large-file threshold when the skip guard is on.
	DefaultMaxFileSize = 10 << 20 // 10 MiB
	// DefaultProgressInterval is the minimum gap between progress events.
	DefaultProgressInterval = 1000 * time.Millisecond
)

// ProcessingOptions configures one FileProcessor instance. The struct is
// immutable for the processor's lifetime; it is normalized once at
// construction.
type ProcessingOptions struct {
	Concurrency      int           // in-flight file cap; required
	ChunkSize        int           // bytes per read
	MaxRetries       int           // retries after the first attempt
	RetryDelay       time.Duration // linear backoff base
	Timeout          time.Duration // per read attempt
	SkipLargeFiles   bool          // reject files above MaxFileSize
	MaxFileSize      int64         // bytes
	ProgressInterval time.Duration // 0 reports progress on every chunk
}

// DefaultProcessingOptions returns a fully populated ProcessingOptions with
// the documented defaults. Concurrency has no default and must be supplied.
func DefaultProcessingOptions(concurrency int) ProcessingOptions {
	return ProcessingOptions{
		Concurrency:      concurrency,
		ChunkSize:        DefaultChunkSize,
		MaxRetries:       DefaultMaxRetries,
		RetryDelay:       DefaultRetryDelay,
		Timeout:          DefaultTimeout,
		SkipLargeFiles:   true,
		MaxFileSize:      DefaultMaxFileSize,
		ProgressInterval: DefaultProgressInterval,
	}
}

// Normalized returns a copy with nonsensical values replaced by defaults.
// Explicit zero values with a meaning (MaxRetries, ProgressInterval) are kept.
func (o ProcessingOptions) Normalized() ProcessingOptions {
	if o.Concurrency <= 0 {
		o.Concurrency = 1
	}
	if o.ChunkSize <= 0 {
		o.ChunkSize = DefaultChunkSize
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	}
	if o.RetryDelay < 0 {
		o.RetryDelay = DefaultRetryDelay
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.MaxFileSize <= 0 {
		o.MaxFileSize = DefaultMaxFileSize
	}
	if o.ProgressInterval < 0 {
		o.ProgressInterval = DefaultProgressInterval
	}
	return o
}

// ProcessingStats aggregates counters for one processor run. Counters only
// ever increase; EndTime is stamped once, when the input queue has drained.
type ProcessingStats struct {
	Processed int64     `json:"processed"`
	Failed    int64     `json:"failed"`
	Skipped   int64     `json:"skipped"`
	TotalSize int64     `json:"totalSize"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

// Elapsed reports the wall time of the run, or the zero duration while the
// run has not finished.
func (s ProcessingStats) Elapsed() time.Duration {
	if s.EndTime.IsZero() {
		return 0
	}
	return s.EndTime.Sub(s.StartTime)
}

// FileResult is the terminal outcome for one input path: either the file's
// content or the error that exhausted its retries.
type FileResult struct {
	Path    string
	Content []byte
	Err     *FileError
}

// Failed reports whether the result carries a terminal error.
func (r FileResult) Failed() bool {
	return r.Err != nil
}

// FileFailure is the serializable view of a terminal FileError, kept on
// collect reports.
type FileFailure struct {
	Path     string `json:"path"`
	Kind     string `json:"kind"`
	Message  string `json:"message"`
	Attempts int    `json:"attempts"`
}
