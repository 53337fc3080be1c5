// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package model

// DefaultIgnoreFileName is the tool-specific ignore file consulted at the
// root of a scanned tree. A sibling .gitignore may be consulted as well.
const DefaultIgnoreFileName = ".docsignore"

// GitignoreFileName is the standard version-control ignore file whose rules
// are appended after the tool-specific ones when enabled.
const GitignoreFileName = ".gitignore"

// ScanEntry describes one file that survived ignore-rule and extension
// filtering. Entries are produced once per scan and never mutated.
type ScanEntry struct {
	Path      string `json:"path"`    // absolute path
	RelPath   string `json:"relPath"` // slash-separated, relative to the scan root
	SizeBytes int64  `json:"sizeBytes"`
	Extension string `json:"extension"` // lowercased, after the last dot, no dot
}

// ScanOptions controls a single directory scan.
//
// Concurrency only bounds the parallel stat phase; it has no effect on which
// files are selected or on the (deterministic) emission order.
type ScanOptions struct {
	Concurrency int
	Extensions  []string // allow-list; empty means every extension is accepted
}

// MatcherOptions configures ignore-rule compilation and sourcing.
type MatcherOptions struct {
	CaseSensitive   bool     // default: case-insensitive matching
	DisableNegation bool     // when set, a leading "!" is matched literally
	ExtraPatterns   []string // inline rules, added before any file-sourced ones
	UseGitignore    bool     // also consult .gitignore next to the primary file
}
