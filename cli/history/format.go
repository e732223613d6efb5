package history

import (
	"fmt"
	"strings"
	"time"
)

const displayLayout = "01/02/2006 03:04:05 PM"

// Timestamps with an offset are converted; the rest are wall-clock
// times already in the display location.
var (
	offsetLayouts = []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05.999999999-0700",
		"2006-01-02 15:04:05.999999999Z07:00",
	}
	naiveLayouts = []string{
		"2006-01-02T15:04:05.999999999",
		"2006-01-02 15:04:05.999999999",
		"2006-01-02T15:04",
	}
)

// FormatStartTime renders an ISO-8601 timestamp as month/day/year with a
// 12-hour clock, e.g. "2019-12-25T12:30:01" -> "12/25/2019 12:30:01 PM".
// Empty input yields "", input that does not parse is returned as is.
func FormatStartTime(iso string, loc *time.Location) string {
	iso = strings.TrimSpace(iso)
	if iso == "" {
		return ""
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range offsetLayouts {
		if t, err := time.Parse(layout, iso); err == nil {
			return t.In(loc).Format(displayLayout)
		}
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, iso, loc); err == nil {
			return t.Format(displayLayout)
		}
	}
	return iso
}

// FormatStatus renders "Finished (-15)" style status lines.
func FormatStatus(status string, exitCode int) string {
	return fmt.Sprintf("%s (%d)", status, exitCode)
}
