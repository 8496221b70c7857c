package service

import (
	"fmt"
	"time"
)

const day = 24 * time.Hour

// FormatTimeText renders the age of created relative to now. Units are floored;
// timestamps in the future count as "just now".
func FormatTimeText(created, now time.Time) string {
	elapsed := now.Sub(created)

	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		return fmt.Sprintf("%d minutes ago", int64(elapsed/time.Minute))
	case elapsed < day:
		return fmt.Sprintf("%d hours ago", int64(elapsed/time.Hour))
	default:
		return fmt.Sprintf("%d days ago", int64(elapsed/day))
	}
}
