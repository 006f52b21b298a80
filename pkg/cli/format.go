package cli

import (
	"fmt"
	"math"
	"time"
)

// CellFunc renders one table cell from its JSON value.
type CellFunc func(v any) string

// FormatDuration renders d as 850ms, 12.3s or 2m5.5s.
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	mins := d / time.Minute
	return fmt.Sprintf("%dm%.1fs", int64(mins), (d - mins*time.Minute).Seconds())
}

var byteUnits = []string{"KB", "MB", "GB"}

// FormatBytes renders n in binary units with two decimals, or as plain
// bytes below 1 KB.
func FormatBytes(n int64) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	v := float64(n) / 1024
	unit := 0
	for v >= 1024 && unit < len(byteUnits)-1 {
		v /= 1024
		unit++
	}
	return fmt.Sprintf("%.2f %s", v, byteUnits[unit])
}

// BytesCell renders a byte count with FormatBytes.
func BytesCell(v any) string {
	n, ok := v.(float64)
	if !ok {
		return cell(v)
	}
	return FormatBytes(int64(n))
}

// SecondsCell renders a number of seconds with FormatDuration.
func SecondsCell(v any) string {
	n, ok := v.(float64)
	if !ok {
		return cell(v)
	}
	return FormatDuration(time.Duration(math.Round(n * float64(time.Second))))
}

// NanosecondsCell renders a time.Duration encoded as integer nanoseconds
// with FormatDuration.
func NanosecondsCell(v any) string {
	n, ok := v.(float64)
	if !ok {
		return cell(v)
	}
	return FormatDuration(time.Duration(n))
}
