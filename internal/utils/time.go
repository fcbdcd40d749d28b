package utils

import (
	"regexp"
	"time"
)

const (
	layoutDate = "2006-01-02"
	layoutHM   = "15:04"
)

var hhmmPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// IsHHMM reports whether s is a zero-padded 24h "HH:mm" value.
func IsHHMM(s string) bool {
	return hhmmPattern.MatchString(s)
}

// IsDate reports whether s is a real YYYY-MM-DD calendar date.
func IsDate(s string) bool {
	_, err := time.Parse(layoutDate, s)
	return err == nil && len(s) == len(layoutDate)
}

// FormatDate formats time to YYYY-MM-DD in loc.
func FormatDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(layoutDate)
}

// FormatHM formats time to "HH:mm" in loc.
func FormatHM(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(layoutHM)
}

// MinutesUntil returns whole minutes from now until hhmm on now's day.
// Negative values mean the time has passed. Invalid input yields 0, false.
func MinutesUntil(hhmm string, now time.Time) (int, bool) {
	if !IsHHMM(hhmm) {
		return 0, false
	}
	t, _ := time.Parse(layoutHM, hhmm)
	y, m, d := now.Date()
	target := time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, now.Location())
	return int(target.Sub(now).Truncate(time.Minute) / time.Minute), true
}
