package ui

import (
	"fmt"
	"time"
)

// FormatDuration renders a countdown as zero-padded "HHh MMm SSs". Negative
// durations clamp to zero so an entity mid-removal never shows garbage.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)
	h := int(d / time.Hour)
	m := int(d/time.Minute) % 60
	s := int(d/time.Second) % 60
	return fmt.Sprintf("%02dh %02dm %02ds", h, m, s)
}

// onOff renders a toggle state for the footer.
func onOff(enabled bool) string {
	if enabled {
		return "on"
	}
	return "off"
}
