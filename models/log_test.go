package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogEntryTime(t *testing.T) {
	tests := []struct {
		name      string
		timestamp string
		want      time.Time
		wantErr   bool
	}{
		{
			name:      "RFC3339 UTC",
			timestamp: "2024-01-01T00:00:00Z",
			want:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "RFC3339 with offset",
			timestamp: "2024-11-22T10:30:00-08:00",
			want:      time.Date(2024, 11, 22, 18, 30, 0, 0, time.UTC),
		},
		{
			name:      "fractional seconds",
			timestamp: "2024-11-22T10:30:00.123Z",
			want:      time.Date(2024, 11, 22, 10, 30, 0, 123000000, time.UTC),
		},
		{
			name:      "garbage",
			timestamp: "not-a-date",
			wantErr:   true,
		},
		{
			name:      "empty",
			timestamp: "",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LogEntry{Timestamp: tt.timestamp}.Time()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestTimeRangeValid(t *testing.T) {
	for _, r := range TimeRanges {
		assert.True(t, r.Valid(), string(r))
	}
	assert.False(t, TimeRange("2h").Valid())
	assert.False(t, TimeRange("").Valid())
}

func TestNormalizeLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected string
	}{
		{"TRACE", LevelTrace},
		{"DEBUG", LevelDebug},
		{"INFO", LevelInfo},
		{"WARNING", LevelWarning},
		{"ERROR", LevelError},
		{"CRITICAL", LevelCritical},
		{"error", LevelInfo},
		{"WARN", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeLevel(tt.level))
		})
	}
}
