package dashboard

import (
	"strings"
	"time"

	"logview/models"
)

// Cutoff returns the earliest instant inside the window r ends at now.
// The 24h and 7d windows step back whole calendar days in now's location.
// Unrecognized ranges leave the cutoff at now. TimeRangeAllTime returns the
// zero time, which Filter treats as "no time predicate".
func Cutoff(r models.TimeRange, now time.Time) time.Time {
	cutoff := now
	switch r {
	case models.TimeRangeHour:
		cutoff = now.Add(-time.Hour)
	case models.TimeRange6Hours:
		cutoff = now.Add(-6 * time.Hour)
	case models.TimeRangeDay:
		cutoff = now.AddDate(0, 0, -1)
	case models.TimeRangeWeek:
		cutoff = now.AddDate(0, 0, -7)
	case models.TimeRangeAllTime:
		cutoff = time.Time{}
	}
	return cutoff
}

// Filter returns the entries matching every predicate of c, in input order.
// It never mutates entries and always returns a non-nil slice.
func Filter(entries []models.LogEntry, c models.FilterCriteria, now time.Time) []models.LogEntry {
	term := strings.ToLower(c.SearchTerm)
	cutoff := Cutoff(c.TimeRange, now)

	filtered := make([]models.LogEntry, 0, len(entries))
	for _, entry := range entries {
		if !matchesText(entry, term) || !matchesLevel(entry, c.Level) || !withinWindow(entry, cutoff) {
			continue
		}
		filtered = append(filtered, entry)
	}
	return filtered
}

func matchesText(entry models.LogEntry, lowerTerm string) bool {
	if lowerTerm == "" {
		return true
	}
	return strings.Contains(strings.ToLower(entry.Message), lowerTerm)
}

// IsAllLevels reports whether level selects every severity.
func IsAllLevels(level string) bool {
	return level == "" || strings.EqualFold(level, models.LevelAll)
}

func matchesLevel(entry models.LogEntry, level string) bool {
	return IsAllLevels(level) || entry.Level == level
}

// An unparsable timestamp is never inside a window.
func withinWindow(entry models.LogEntry, cutoff time.Time) bool {
	if cutoff.IsZero() {
		return true
	}
	ts, err := entry.Time()
	if err != nil {
		return false
	}
	return !ts.Before(cutoff)
}
