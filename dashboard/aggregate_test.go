package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logview/models"
)

func TestTimeline_TwoDates(t *testing.T) {
	day1 := time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)

	var entries []models.LogEntry
	for i := 0; i < 3; i++ {
		entries = append(entries, entryAt(day1.Add(time.Duration(i)*time.Minute), "INFO", "a"))
	}
	for i := 0; i < 5; i++ {
		entries = append(entries, entryAt(day2.Add(time.Duration(i)*time.Minute), "INFO", "b"))
	}

	points := Timeline(entries, time.UTC)

	require.Len(t, points, 2)
	assert.Equal(t, TimelinePoint{Date: "2024-03-14", Count: 3}, points[0])
	assert.Equal(t, TimelinePoint{Date: "2024-03-15", Count: 5}, points[1])
	assert.Equal(t, 8, points[0].Count+points[1].Count)
}

func TestTimeline_FirstSeenOrder(t *testing.T) {
	entries := []models.LogEntry{
		entryAt(time.Date(2024, 3, 15, 1, 0, 0, 0, time.UTC), "INFO", "newest first"),
		entryAt(time.Date(2024, 3, 13, 1, 0, 0, 0, time.UTC), "INFO", "oldest"),
		entryAt(time.Date(2024, 3, 15, 2, 0, 0, 0, time.UTC), "INFO", "newest again"),
		entryAt(time.Date(2024, 3, 14, 1, 0, 0, 0, time.UTC), "INFO", "middle"),
	}

	points := Timeline(entries, time.UTC)

	assert.Equal(t, []TimelinePoint{
		{Date: "2024-03-15", Count: 2},
		{Date: "2024-03-13", Count: 1},
		{Date: "2024-03-14", Count: 1},
	}, points)
}

func TestTimeline_UsesLocation(t *testing.T) {
	entries := []models.LogEntry{
		{Timestamp: "2024-03-15T02:00:00Z", Level: "INFO", Message: "late evening in the west"},
	}

	west := time.FixedZone("UTC-8", -8*60*60)

	assert.Equal(t, "2024-03-15", Timeline(entries, time.UTC)[0].Date)
	assert.Equal(t, "2024-03-14", Timeline(entries, west)[0].Date)
}

func TestTimeline_InvalidTimestamp(t *testing.T) {
	entries := []models.LogEntry{
		{Timestamp: "nope", Level: "INFO", Message: "x"},
		{Timestamp: "2024-03-15T02:00:00Z", Level: "INFO", Message: "y"},
		{Timestamp: "", Level: "INFO", Message: "z"},
	}

	points := Timeline(entries, time.UTC)

	assert.Equal(t, []TimelinePoint{
		{Date: InvalidDate, Count: 2},
		{Date: "2024-03-15", Count: 1},
	}, points)
}

func TestTimeline_Empty(t *testing.T) {
	points := Timeline(nil, time.UTC)
	assert.NotNil(t, points)
	assert.Empty(t, points)
}

func TestCountLevels(t *testing.T) {
	entries := []models.LogEntry{
		{Level: "ERROR"},
		{Level: "Error"},
		{Level: "WARNING"},
		{Level: "INFO"},
		{Level: "info"},
		{Level: "INFO"},
		{Level: "DEBUG"},
		{Level: "WARN"},
		{Level: "DEBUG"},
	}

	stats := CountLevels(entries)

	assert.Equal(t, 2, stats.Error)
	assert.Equal(t, 1, stats.Warning)
	assert.Equal(t, 3, stats.Info)
	assert.Equal(t, map[string]int{"DEBUG": 2, "WARN": 1}, stats.Other)
}

func TestCountLevels_KnownOnly(t *testing.T) {
	stats := CountLevels([]models.LogEntry{{Level: "INFO"}})
	assert.Nil(t, stats.Other)
	assert.Equal(t, LevelStats{Info: 1}, stats)
}

func TestRecent(t *testing.T) {
	entries := make([]models.LogEntry, 15)
	for i := range entries {
		entries[i] = models.LogEntry{Message: string(rune('a' + i))}
	}

	assert.Len(t, Recent(entries, RecentLimit), 10)
	assert.Equal(t, entries[:10], Recent(entries, RecentLimit))
	assert.Len(t, Recent(entries[:3], RecentLimit), 3)
	assert.Empty(t, Recent(entries, -1))
}

func TestRecent_AppendDoesNotClobberSource(t *testing.T) {
	entries := []models.LogEntry{{Message: "a"}, {Message: "b"}, {Message: "c"}}

	recent := Recent(entries, 2)
	recent = append(recent, models.LogEntry{Message: "x"})

	assert.Equal(t, "c", entries[2].Message)
	assert.Len(t, recent, 3)
}

func TestSummarize(t *testing.T) {
	entries := []models.LogEntry{
		entryAt(testNow.Add(-10*time.Minute), "ERROR", "payment failed"),
		entryAt(testNow.Add(-20*time.Minute), "INFO", "payment ok"),
		entryAt(testNow.Add(-26*time.Hour), "ERROR", "payment failed yesterday"),
		entryAt(testNow.Add(-30*time.Minute), "WARNING", "queue slow"),
	}
	criteria := models.FilterCriteria{SearchTerm: "payment", Level: models.LevelAll, TimeRange: models.TimeRangeDay}

	summary := Summarize(entries, criteria, testNow, time.UTC)

	assert.Equal(t, criteria, summary.Criteria)
	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 2, summary.Matched)
	assert.Equal(t, LevelStats{Error: 1, Info: 1}, summary.Stats)
	assert.Equal(t, []TimelinePoint{{Date: "2024-03-15", Count: 2}}, summary.Timeline)
	assert.Equal(t, entries[:2], summary.Recent)
}
