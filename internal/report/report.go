// internal/report/report.go
// Package report renders a completed benchmark run as an HTML page, a JSON
// document, or a terminal summary. It owns all presentation decisions,
// including how performance tiers are colored.
package report

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/mwiater/ollabench/internal/benchmark"
	"github.com/mwiater/ollabench/internal/metrics"
)

// TimestampLayout is used in report file names and headers.
const TimestampLayout = "2006-01-02_15-04"

// Document is everything a report needs about one run.
type Document struct {
	Metadata benchmark.Metadata  `json:"metadata"`
	Result   benchmark.RunResult `json:"result"`
}

// FileName returns "<prefix>_<timestamp><ext>", keeping any directory in prefix.
func FileName(prefix string, ts time.Time, ext string) string {
	if prefix == "" {
		prefix = "benchmark"
	}
	dir, base := filepath.Split(prefix)
	return filepath.Join(dir, fmt.Sprintf("%s_%s%s", base, ts.Format(TimestampLayout), ext))
}

// Background colors used for table cells.
const (
	colorGood    = "#d4edda"
	colorFair    = "#fff3cd"
	colorPoor    = "#f8d7da"
	colorUnknown = "#eeeeee"
)

// TierColor maps a tier to its HTML cell background.
func TierColor(t metrics.Tier) string {
	switch t {
	case metrics.TierGood:
		return colorGood
	case metrics.TierFair:
		return colorFair
	case metrics.TierPoor:
		return colorPoor
	default:
		return colorUnknown
	}
}

// GPUColor maps the GPU flag to its HTML cell background.
func GPUColor(inUse bool) string {
	if inUse {
		return colorGood
	}
	return colorPoor
}

// GPULabel maps the GPU flag to the symbol shown in reports.
func GPULabel(inUse bool) string {
	if inUse {
		return "✅"
	}
	return "❌"
}
