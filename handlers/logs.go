package handlers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"logview/database"
	"logview/models"
)

// LogStore is the storage the source handlers need. *database.DB implements it.
type LogStore interface {
	InsertLogsBatch(ctx context.Context, logs []models.StoredLog) error
	QueryLogs(ctx context.Context, params models.QueryParams) ([]models.StoredLog, int64, error)
	LogStatistics(ctx context.Context) (map[string]models.LevelStatistics, error)
}

func HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status": "ok",
	})
}

// IngestLogs stores one entry object or an array of entries.
func IngestLogs(store LogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		logs, err := decodeLogs(body)
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		now := time.Now()
		for i := range logs {
			if err := binding.Validator.ValidateStruct(&logs[i]); err != nil {
				c.JSON(400, gin.H{"error": err.Error(), "index": i})
				return
			}
			if logs[i].ID == uuid.Nil {
				logs[i].ID = uuid.New()
			}
			if logs[i].Timestamp.IsZero() {
				logs[i].Timestamp = now
			}
			logs[i].Level = models.NormalizeLevel(logs[i].Level)
		}

		if err := store.InsertLogsBatch(c.Request.Context(), logs); err != nil {
			log.Error().Err(err).Int("count", len(logs)).Msg("Failed to insert logs")
			c.JSON(500, gin.H{"error": "failed to insert logs"})
			return
		}

		c.JSON(201, gin.H{
			"message": "logs stored",
			"count":   len(logs),
		})
	}
}

func decodeLogs(body []byte) ([]models.StoredLog, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var logs []models.StoredLog
		if err := json.Unmarshal(trimmed, &logs); err != nil {
			return nil, err
		}
		return logs, nil
	}

	var entry models.StoredLog
	if err := json.Unmarshal(trimmed, &entry); err != nil {
		return nil, err
	}
	return []models.StoredLog{entry}, nil
}

// GetLogs lists stored logs newest first as a bare JSON array.
func GetLogs(store LogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var params models.QueryParams
		if err := c.ShouldBindQuery(&params); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		logs, total, err := store.QueryLogs(c.Request.Context(), params)
		if errors.Is(err, database.ErrInvalidTime) {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if err != nil {
			log.Error().Err(err).Msg("Failed to query logs")
			c.JSON(500, gin.H{"error": "failed to query logs"})
			return
		}

		c.Header("X-Total-Count", strconv.FormatInt(total, 10))
		c.JSON(200, logs)
	}
}

func GetStatistics(store LogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := store.LogStatistics(c.Request.Context())
		if err != nil {
			log.Error().Err(err).Msg("Failed to query statistics")
			c.JSON(500, gin.H{"error": "failed to query statistics"})
			return
		}

		c.JSON(200, stats)
	}
}
