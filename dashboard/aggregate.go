package dashboard

import (
	"strings"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"logview/models"
)

const (
	// DateLayout formats timeline buckets.
	DateLayout = "2006-01-02"
	// InvalidDate buckets entries whose timestamp does not parse.
	InvalidDate = "Invalid Date"
	// RecentLimit is the number of rows shown in the recent-entries table.
	RecentLimit = 10
)

// TimelinePoint is the number of entries on one calendar date.
type TimelinePoint struct {
	Date  string `json:"date"`
	Count int    `json:"logs"`
}

// Timeline counts entries per calendar date in loc. Points come out in the
// order their date was first seen, which is not necessarily chronological.
func Timeline(entries []models.LogEntry, loc *time.Location) []TimelinePoint {
	if loc == nil {
		loc = time.Local
	}

	counts := orderedmap.New[string, int]()
	for _, entry := range entries {
		date := InvalidDate
		if ts, err := entry.Time(); err == nil {
			date = ts.In(loc).Format(DateLayout)
		}
		n, _ := counts.Get(date)
		counts.Set(date, n+1)
	}

	points := make([]TimelinePoint, 0, counts.Len())
	for pair := counts.Oldest(); pair != nil; pair = pair.Next() {
		points = append(points, TimelinePoint{Date: pair.Key, Count: pair.Value})
	}
	return points
}

// LevelStats counts entries per severity. Error, Warning and Info match the
// entry level case-insensitively, so "ERROR" and "Error" land in the same
// counter. Every other level is counted under its literal value in Other.
type LevelStats struct {
	Error   int            `json:"error"`
	Warning int            `json:"warning"`
	Info    int            `json:"info"`
	Other   map[string]int `json:"other,omitempty"`
}

// CountLevels builds LevelStats over entries.
func CountLevels(entries []models.LogEntry) LevelStats {
	var stats LevelStats
	for _, entry := range entries {
		switch strings.ToLower(entry.Level) {
		case "error":
			stats.Error++
		case "warning":
			stats.Warning++
		case "info":
			stats.Info++
		default:
			if stats.Other == nil {
				stats.Other = make(map[string]int)
			}
			stats.Other[entry.Level]++
		}
	}
	return stats
}

// Recent returns at most n leading entries.
func Recent(entries []models.LogEntry, n int) []models.LogEntry {
	if n < 0 {
		n = 0
	}
	if len(entries) < n {
		n = len(entries)
	}
	return entries[:n:n]
}

// Summary is everything the dashboard renders for one set of criteria.
type Summary struct {
	Criteria models.FilterCriteria `json:"criteria"`
	Total    int                   `json:"total"`
	Matched  int                   `json:"matched"`
	Stats    LevelStats            `json:"stats"`
	Timeline []TimelinePoint       `json:"timeline"`
	Recent   []models.LogEntry     `json:"recent"`
}

// Summarize filters entries with c and derives every aggregate from the result.
func Summarize(entries []models.LogEntry, c models.FilterCriteria, now time.Time, loc *time.Location) Summary {
	filtered := Filter(entries, c, now)
	return Summary{
		Criteria: c,
		Total:    len(entries),
		Matched:  len(filtered),
		Stats:    CountLevels(filtered),
		Timeline: Timeline(filtered, loc),
		Recent:   Recent(filtered, RecentLimit),
	}
}
