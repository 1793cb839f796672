package utils

import (
	"math"
	"strconv"
	"time"
)

// FormatDeadline returns the cutoff formatted for display in local time.
func FormatDeadline(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(time.Local).Format("02 Jan 2006 15:04")
}

// FormatRemaining returns a human-readable description of the time left
// until a deadline. Day counts are rounded to the nearest day, matching
// the urgency classification.
func FormatRemaining(remaining time.Duration) string {
	if remaining <= 0 {
		return "Deadline passed"
	}

	if remaining < time.Hour {
		minutes := int(remaining.Minutes())
		if minutes <= 1 {
			return "Less than a minute left"
		}
		return strconv.Itoa(minutes) + " minutes left"
	}

	if remaining < 24*time.Hour {
		hours := int(remaining.Hours())
		if hours == 1 {
			return "1 hour left"
		}
		return strconv.Itoa(hours) + " hours left"
	}

	days := int(math.Round(remaining.Hours() / 24))
	if days <= 1 {
		return "1 day left"
	}
	return strconv.Itoa(days) + " days left"
}
