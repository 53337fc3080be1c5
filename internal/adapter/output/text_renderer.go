// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rafaelvolkmer/docsmith/internal/domain/model"
	"github.com/rafaelvolkmer/docsmith/internal/domain/ports"
)

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"

	colMain   = "\033[38;5;223m"
	colMuted  = "\033[38;5;246m"
	colTitle  = "\033[38;5;142m"
	colAccent = "\033[38;5;208m"

	colGood   = "\033[38;5;108m"
	colWarn   = "\033[38;5;214m"
	colDanger = "\033[38;5;167m"

	colFile = "\033[38;5;67m"
)

type TextRenderer struct{}

func NewTextRenderer() *TextRenderer {
	return &TextRenderer{}
}

var _ ports.OutputRenderer = (*TextRenderer)(nil)

func (r *TextRenderer) Format() string {
	return "text"
}

func (r *TextRenderer) Render(report *model.CollectReport) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", accent("Docsmith Collection"))
	fmt.Fprintf(&b, "%s %s\n", label("Root:"), value(report.RootPath))
	if report.OutputPath != "" {
		fmt.Fprintf(&b, "%s %s\n", label("Bundle:"), value(report.OutputPath))
	}
	fmt.Fprintf(&b, "%s %s\n", label("Generated at:"), value(report.GeneratedAt.Format(time.RFC3339)))

	fmt.Fprintf(&b, "\n%s\n", title("== Selected files =="))
	for _, e := range report.Entries {
		fmt.Fprintf(&b, "%s %-60s %s\n",
			label("-"),
			colorFileField(trimPath(e.RelPath, 60)),
			value(humanize.Bytes(uint64(e.SizeBytes))),
		)
	}
	fmt.Fprintf(&b, "%s %s %s\n",
		label("Total:"),
		value(fmt.Sprintf("%d files,", len(report.Entries))),
		value(humanize.Bytes(uint64(report.TotalSelectedBytes()))),
	)

	if !report.Stats.StartTime.IsZero() {
		fmt.Fprintf(&b, "\n%s\n", title("== Processing summary =="))
		fmt.Fprintf(&b, "%s %s\n", label("Processed:"), colorCount(report.Stats.Processed, colGood))
		fmt.Fprintf(&b, "%s %s\n", label("Failed:"), colorCount(report.Stats.Failed, colDanger))
		fmt.Fprintf(&b, "%s %s\n", label("Skipped:"), colorCount(report.Stats.Skipped, colWarn))
		fmt.Fprintf(&b, "%s %s\n", label("Bytes read:"), value(humanize.Bytes(uint64(report.Stats.TotalSize))))
		fmt.Fprintf(&b, "%s %s\n", label("Elapsed:"), value(report.Stats.Elapsed().String()))
	}

	if len(report.Failures) > 0 {
		fmt.Fprintf(&b, "\n%s\n", title("== Failures =="))
		for _, f := range report.Failures {
			fmt.Fprintf(&b, "%s %s %s\n",
				warnBullet("-"),
				colorFileField(f.Path),
				warnText(fmt.Sprintf("[%s, %d attempts] %s", f.Kind, f.Attempts, f.Message)),
			)
		}
	}

	return b.String(), nil
}

func title(s string) string {
	return ansiBold + colTitle + s + ansiReset
}

func accent(s string) string {
	return ansiBold + colAccent + s + ansiReset
}

func label(s string) string {
	return colMuted + s + ansiReset
}

func value(s string) string {
	return colMain + s + ansiReset
}

func warnBullet(s string) string {
	return colWarn + s + ansiReset
}

func warnText(s string) string {
	return colWarn + s + ansiReset
}

func colorFileField(s string) string {
	return colFile + s + ansiReset
}

func colorCount(n int64, nonZeroColor string) string {
	if n == 0 {
		return colMuted + "0" + ansiReset
	}
	return nonZeroColor + fmt.Sprintf("%d", n) + ansiReset
}

func trimPath(path string, max int) string {
	if len(path) <= max {
		return path
	}
	if max <= 1 {
		return path[len(path)-max:]
	}
	return "…" + path[len(path)-max+1:]
}
