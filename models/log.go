package models

import (
	"time"

	"github.com/araddon/dateparse"
)

// LogEntry is a record as returned by the log source. Fields other than
// timestamp, level and message are ignored.
type LogEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Message   string `json:"message"`
}

// Time parses the entry timestamp. Anything dateparse understands is accepted;
// zone-less values are read in the local zone.
func (e LogEntry) Time() (time.Time, error) {
	return dateparse.ParseAny(e.Timestamp)
}

// TimeRange is a lookback window relative to now.
type TimeRange string

const (
	TimeRangeHour    TimeRange = "1h"
	TimeRange6Hours  TimeRange = "6h"
	TimeRangeDay     TimeRange = "24h"
	TimeRangeWeek    TimeRange = "7d"
	TimeRangeAllTime TimeRange = "all"
)

// TimeRanges lists the accepted ranges in display order.
var TimeRanges = []TimeRange{TimeRangeHour, TimeRange6Hours, TimeRangeDay, TimeRangeWeek, TimeRangeAllTime}

// Valid reports whether r is one of the known ranges.
func (r TimeRange) Valid() bool {
	for _, known := range TimeRanges {
		if r == known {
			return true
		}
	}
	return false
}

// LevelAll disables the level predicate.
const LevelAll = "all"

type FilterCriteria struct {
	SearchTerm string    `form:"search" json:"search"`
	Level      string    `form:"level" json:"level"`
	TimeRange  TimeRange `form:"time_range" json:"time_range" binding:"omitempty,oneof=1h 6h 24h 7d all"`
}
