package domain

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

// FormatDuration renders seconds as "h:mm:ss" or "m:ss".
// Unknown (non-positive) durations are "N/A".
func FormatDuration(seconds int) string {
	if seconds <= 0 {
		return UnknownDuration
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// FormatViews renders a view count as "1.5K views", "2.5M views" or the
// bare number below one thousand.
func FormatViews(views int64) string {
	return formatCount(views, "views")
}

// FormatDownloads is FormatViews for download counters.
func FormatDownloads(downloads int64) string {
	return formatCount(downloads, "downloads")
}

func formatCount(n int64, unit string) string {
	switch {
	case n <= 0:
		return "0"
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM %s", float64(n)/1_000_000, unit)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK %s", float64(n)/1_000, unit)
	default:
		return strconv.FormatInt(n, 10)
	}
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
