// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package model

import "time"

// CollectReport summarizes one collect (or dry-run scan) over a source tree.
type CollectReport struct {
	RootPath    string          `json:"rootPath"`
	OutputPath  string          `json:"outputPath,omitempty"`
	GeneratedAt time.Time       `json:"generatedAt"`
	Entries     []ScanEntry     `json:"entries"`
	Failures    []FileFailure   `json:"failures,omitempty"`
	Stats       ProcessingStats `json:"stats"`
}

// TotalSelectedBytes sums the sizes of every selected entry.
func (r *CollectReport) TotalSelectedBytes() int64 {
	var total int64
	for _, e := range r.Entries {
		total += e.SizeBytes
	}
	return total
}

// PatternsReport summarizes a loaded ignore rule set, optionally with the
// verdict for a single probe path.
type PatternsReport struct {
	IgnoreFile string   `json:"ignoreFile"`
	Rules      []string `json:"rules"`
	TestPath   string   `json:"testPath,omitempty"`
	Ignored    bool     `json:"ignored,omitempty"`
}
