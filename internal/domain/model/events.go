// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package model

// EventKind tags a lifecycle event on the processor's notification channel.
type EventKind string

const (
	EventStart    EventKind = "start"
	EventProgress EventKind = "progress"
	EventComplete EventKind = "complete"
	EventError    EventKind = "error"
	EventSkip     EventKind = "skip"
)

// Progress is the payload of a progress event. For a given path, successive
// snapshots carry non-decreasing BytesRead.
type Progress struct {
	BytesRead  int64   `json:"bytesRead"`
	TotalBytes int64   `json:"totalBytes"`
	Percent    float64 `json:"percent"`
}

// Event is a fire-and-forget lifecycle notification. It is observability
// only; terminal outcomes travel on the result sequence, never here.
type Event struct {
	Kind     EventKind
	Path     string
	Content  []byte    // complete
	Err      error     // error
	Progress *Progress // progress
	Reason   string    // skip
}
