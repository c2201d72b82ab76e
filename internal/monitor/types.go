package monitor

import (
	"fmt"
	"strconv"
)

// ViewMode defines the current display mode of the dashboard.
type ViewMode int

const (
	ViewTree ViewMode = iota
	ViewDetail
)

// FormatBytes renders a byte count with a binary-unit suffix.
func FormatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return strconv.FormatUint(b, 10) + " B"
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}

// FormatPercent renders a percentage with one decimal, or a dash when the
// value is unknown.
func FormatPercent(p float64) string {
	if p < 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", p)
}

// FormatLimit renders current against an optional limit, where a zero
// limit means unlimited.
func FormatLimit(current, limit uint64) string {
	if limit == 0 {
		return FormatBytes(current) + " / max"
	}
	return FormatBytes(current) + " / " + FormatBytes(limit)
}

// FormatCount renders current against an optional numeric limit.
func FormatCount(current, limit uint64) string {
	if limit == 0 {
		return strconv.FormatUint(current, 10)
	}
	return fmt.Sprintf("%d/%d", current, limit)
}

// memPercent computes memory pressure against the limit; -1 when there is
// no limit to compare against.
func memPercent(current, limit uint64) float64 {
	if limit == 0 {
		return -1
	}
	return float64(current) / float64(limit) * 100
}
