package handlers

import (
	"bytes"
	"html/template"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"logview/dashboard"
	"logview/models"
)

type option struct {
	Value string
	Label string
}

var levelOptions = []option{
	{models.LevelAll, "All Levels"},
	{models.LevelError, "Error"},
	{models.LevelWarning, "Warning"},
	{models.LevelInfo, "Info"},
}

var timeRangeOptions = []option{
	{string(models.TimeRangeHour), "Last 1 Hour"},
	{string(models.TimeRange6Hours), "Last 6 Hours"},
	{string(models.TimeRangeDay), "Last 24 Hours"},
	{string(models.TimeRangeWeek), "Last 7 Days"},
	{string(models.TimeRangeAllTime), "All Time"},
}

type pageData struct {
	dashboard.Dashboard
	Levels     []option
	TimeRanges []option
	MaxDaily   int
}

var pageFuncs = template.FuncMap{
	"fmtTime": func(t time.Time) string {
		if t.IsZero() {
			return "never"
		}
		return t.Local().Format("Jan 2 15:04:05")
	},
	"levelClass": func(level string) string {
		switch strings.ToUpper(level) {
		case models.LevelError, models.LevelCritical:
			return "err"
		case models.LevelWarning:
			return "warn"
		case models.LevelInfo:
			return "ok"
		default:
			return "dim"
		}
	},
	"pct": func(n, max int) int {
		if max == 0 {
			return 0
		}
		return n * 100 / max
	},
}

var pageTemplate = template.Must(template.New("page").Funcs(pageFuncs).Parse(tmplPage))

// Index renders the dashboard page for the criteria in the query string.
func Index(view *dashboard.View, defaults models.FilterCriteria) gin.HandlerFunc {
	return func(c *gin.Context) {
		criteria, err := bindCriteria(c, defaults)
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		data := pageData{
			Dashboard:  view.Dashboard(criteria),
			Levels:     levelOptions,
			TimeRanges: timeRangeOptions,
		}
		for _, p := range data.Timeline {
			data.MaxDaily = max(data.MaxDaily, p.Count)
		}

		var buf bytes.Buffer
		if err := pageTemplate.ExecuteTemplate(&buf, "page", data); err != nil {
			log.Error().Err(err).Msg("Template error")
			c.JSON(500, gin.H{"error": "failed to render dashboard"})
			return
		}

		c.Data(200, "text/html; charset=utf-8", buf.Bytes())
	}
}
