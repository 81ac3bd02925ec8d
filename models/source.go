package models

import (
	"time"

	"github.com/google/uuid"
)

// Levels accepted by the source. Anything else is stored as INFO.
const (
	LevelTrace    = "TRACE"
	LevelDebug    = "DEBUG"
	LevelInfo     = "INFO"
	LevelWarning  = "WARNING"
	LevelError    = "ERROR"
	LevelCritical = "CRITICAL"
)

// StoredLog is a log entry as kept by the source service.
// Timestamp marshals as RFC3339 so dashboards can read it back as a LogEntry.
type StoredLog struct {
	ID        uuid.UUID `json:"id"`
	Level     string    `json:"level" binding:"required"`
	Message   string    `json:"message" binding:"required"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Component string    `json:"component"`
}

// NormalizeLevel maps exact known levels to themselves and everything else to INFO.
func NormalizeLevel(level string) string {
	switch level {
	case LevelTrace, LevelDebug, LevelInfo, LevelWarning, LevelError, LevelCritical:
		return level
	default:
		return LevelInfo
	}
}

type QueryParams struct {
	Level     string `form:"level"`
	Service   string `form:"service"`
	Search    string `form:"search"`
	StartTime string `form:"start_time"`
	EndTime   string `form:"end_time"`
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
}

// LevelStatistics summarizes stored logs of one level. Oldest and Newest are
// unix seconds.
type LevelStatistics struct {
	Count  int64 `json:"count"`
	Oldest int64 `json:"oldest"`
	Newest int64 `json:"newest"`
}
