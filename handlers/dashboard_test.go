package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logview/dashboard"
	"logview/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

var defaultCriteria = models.FilterCriteria{Level: models.LevelAll, TimeRange: models.TimeRangeDay}

type stubSource struct {
	entries []models.LogEntry
	err     error
}

func (s *stubSource) FetchLogs(ctx context.Context) ([]models.LogEntry, error) {
	return s.entries, s.err
}

func sampleEntries() []models.LogEntry {
	return []models.LogEntry{
		{Timestamp: "2024-03-15T11:30:00Z", Level: "ERROR", Message: "Database timeout"},
		{Timestamp: "2024-03-15T10:00:00Z", Level: "INFO", Message: "User <b>login</b>"},
		{Timestamp: "2024-03-14T13:00:00Z", Level: "WARNING", Message: "Disk usage high"},
		{Timestamp: "2024-03-01T09:00:00Z", Level: "ERROR", Message: "Old failure"},
	}
}

func loadedView(t *testing.T, source dashboard.Source) *dashboard.View {
	t.Helper()
	view := dashboard.NewView(source,
		dashboard.WithClock(func() time.Time { return testNow }),
		dashboard.WithLocation(time.UTC),
	)
	_, err := view.Refresh(context.Background())
	require.NoError(t, err)
	return view
}

func dashboardEngine(view *dashboard.View) *gin.Engine {
	r := gin.New()
	r.GET("/", Index(view, defaultCriteria))
	r.GET("/api/dashboard", GetDashboard(view, defaultCriteria))
	r.GET("/api/entries", GetEntries(view, defaultCriteria))
	r.GET("/api/export", ExportLogs(view, defaultCriteria))
	r.POST("/api/refresh", RefreshLogs(view))
	return r
}

func serve(r *gin.Engine, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestGetDashboard_Defaults(t *testing.T) {
	r := dashboardEngine(loadedView(t, &stubSource{entries: sampleEntries()}))

	w := serve(r, http.MethodGet, "/api/dashboard")
	require.Equal(t, 200, w.Code)

	var d dashboard.Dashboard
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &d))
	assert.Equal(t, 4, d.Total)
	assert.Equal(t, 3, d.Matched)
	assert.Equal(t, dashboard.LevelStats{Error: 1, Warning: 1, Info: 1}, d.Stats)
	assert.Equal(t, []dashboard.TimelinePoint{
		{Date: "2024-03-15", Count: 2},
		{Date: "2024-03-14", Count: 1},
	}, d.Timeline)
	assert.Equal(t, uint64(1), d.Generation)
	assert.Equal(t, defaultCriteria, d.Criteria)
}

func TestGetDashboard_QueryCriteria(t *testing.T) {
	r := dashboardEngine(loadedView(t, &stubSource{entries: sampleEntries()}))

	w := serve(r, http.MethodGet, "/api/dashboard?search=FAIL&level=ERROR&time_range=7d")
	require.Equal(t, 200, w.Code)

	var d dashboard.Dashboard
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &d))
	assert.Equal(t, 0, d.Matched)

	w = serve(r, http.MethodGet, "/api/dashboard?search=FAIL&level=ERROR&time_range=all")
	require.Equal(t, 200, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &d))
	assert.Equal(t, 1, d.Matched)
	assert.Equal(t, "Old failure", d.Recent[0].Message)
}

func TestGetDashboard_InvalidTimeRange(t *testing.T) {
	r := dashboardEngine(loadedView(t, &stubSource{entries: sampleEntries()}))

	w := serve(r, http.MethodGet, "/api/dashboard?time_range=30d")

	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "error")
}

func TestGetEntries(t *testing.T) {
	r := dashboardEngine(loadedView(t, &stubSource{entries: sampleEntries()}))

	w := serve(r, http.MethodGet, "/api/entries?level=ERROR&time_range=all")
	require.Equal(t, 200, w.Code)

	var body struct {
		Entries []models.LogEntry `json:"entries"`
		Count   int               `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Count)
	assert.Equal(t, "Database timeout", body.Entries[0].Message)
	assert.Equal(t, "Old failure", body.Entries[1].Message)
}

func TestExportLogs(t *testing.T) {
	r := dashboardEngine(loadedView(t, &stubSource{entries: sampleEntries()}))

	w := serve(r, http.MethodGet, "/api/export?level=ERROR&time_range=all")
	require.Equal(t, 200, w.Code)

	assert.Equal(t, "text/csv;charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=logs_export.csv", w.Header().Get("Content-Disposition"))
	assert.Equal(t,
		"2024-03-15T11:30:00Z,ERROR,Database timeout\n2024-03-01T09:00:00Z,ERROR,Old failure",
		w.Body.String())
}

func TestExportLogs_Empty(t *testing.T) {
	r := dashboardEngine(loadedView(t, &stubSource{entries: sampleEntries()}))

	w := serve(r, http.MethodGet, "/api/export?search=nothing-matches")

	assert.Equal(t, 200, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestRefreshLogs(t *testing.T) {
	source := &stubSource{entries: sampleEntries()}
	r := dashboardEngine(loadedView(t, source))

	w := serve(r, http.MethodPost, "/api/refresh")
	require.Equal(t, 200, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["applied"])
	assert.Equal(t, float64(2), body["generation"])
}

func TestRefreshLogs_FailureKeepsData(t *testing.T) {
	source := &stubSource{entries: sampleEntries()}
	view := loadedView(t, source)
	r := dashboardEngine(view)

	source.err = errors.New("connection refused")
	w := serve(r, http.MethodPost, "/api/refresh")
	require.Equal(t, 200, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["applied"])
	assert.Equal(t, float64(1), body["generation"])
	assert.Len(t, view.Entries(), 4)
}

func TestRefreshLogs_Closed(t *testing.T) {
	view := loadedView(t, &stubSource{})
	view.Close()

	w := serve(dashboardEngine(view), http.MethodPost, "/api/refresh")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestIndex(t *testing.T) {
	r := dashboardEngine(loadedView(t, &stubSource{entries: sampleEntries()}))

	w := serve(r, http.MethodGet, "/?level=INFO")
	require.Equal(t, 200, w.Code)

	body := w.Body.String()
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, body, "User &lt;b&gt;login&lt;/b&gt;")
	assert.NotContains(t, body, "Database timeout")
	assert.Contains(t, body, `<option value="INFO" selected>`)
	assert.Contains(t, body, `<option value="24h" selected>`)
	assert.Contains(t, body, "2024-03-15")
}

func TestIndex_InvalidTimeRange(t *testing.T) {
	r := dashboardEngine(loadedView(t, &stubSource{}))

	w := serve(r, http.MethodGet, "/?time_range=forever")

	assert.Equal(t, 400, w.Code)
}
