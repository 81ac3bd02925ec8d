package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"logview/dashboard"
	"logview/models"
)

// bindCriteria reads search, level and time_range from the query string.
// Missing parameters take their value from defaults.
func bindCriteria(c *gin.Context, defaults models.FilterCriteria) (models.FilterCriteria, error) {
	criteria := defaults
	if err := c.ShouldBindQuery(&criteria); err != nil {
		return models.FilterCriteria{}, err
	}
	if criteria.TimeRange == "" {
		criteria.TimeRange = defaults.TimeRange
	}
	if criteria.Level == "" {
		criteria.Level = models.LevelAll
	}
	return criteria, nil
}

func GetDashboard(view *dashboard.View, defaults models.FilterCriteria) gin.HandlerFunc {
	return func(c *gin.Context) {
		criteria, err := bindCriteria(c, defaults)
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		c.JSON(200, view.Dashboard(criteria))
	}
}

func GetEntries(view *dashboard.View, defaults models.FilterCriteria) gin.HandlerFunc {
	return func(c *gin.Context) {
		criteria, err := bindCriteria(c, defaults)
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		entries := view.Filtered(criteria)
		c.JSON(200, gin.H{
			"entries":  entries,
			"count":    len(entries),
			"criteria": criteria,
		})
	}
}

// ExportLogs downloads the filtered set as CSV.
func ExportLogs(view *dashboard.View, defaults models.FilterCriteria) gin.HandlerFunc {
	return func(c *gin.Context) {
		criteria, err := bindCriteria(c, defaults)
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var buf bytes.Buffer
		if err := dashboard.ExportCSV(&buf, view.Filtered(criteria)); err != nil {
			log.Error().Err(err).Msg("Export failed")
			c.JSON(500, gin.H{"error": "failed to export logs"})
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", dashboard.ExportFilename))
		c.Data(200, dashboard.ExportContentType, buf.Bytes())
	}
}

// RefreshLogs triggers one fetch. Acquisition failures are not surfaced to
// the caller; the response only says whether the displayed data changed.
func RefreshLogs(view *dashboard.View) gin.HandlerFunc {
	return func(c *gin.Context) {
		applied, err := view.Refresh(c.Request.Context())
		if errors.Is(err, dashboard.ErrClosed) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}

		c.JSON(200, gin.H{
			"applied":    applied,
			"generation": view.Generation(),
		})
	}
}
