package dashboard

import (
	"context"
	"fmt"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"github.com/pkg/errors"

	"logview/models"
)

// AcquisitionError reports a failed fetch of the full set: the request could
// not be made, the source answered with a non-2xx status, or the body was not
// a JSON array of entries.
type AcquisitionError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *AcquisitionError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch logs from %s: status %d: %v", e.Endpoint, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch logs from %s: %v", e.Endpoint, e.Err)
}

func (e *AcquisitionError) Unwrap() error {
	return e.Err
}

// Fetcher downloads the full log set from a source endpoint.
type Fetcher struct {
	endpoint string
	client   *http.Client
}

// NewFetcher returns a Fetcher for endpoint. A zero timeout means requests
// are bounded only by their context.
func NewFetcher(endpoint string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// Endpoint returns the URL the fetcher polls.
func (f *Fetcher) Endpoint() string {
	return f.endpoint
}

// FetchLogs performs one GET against the endpoint and decodes the response.
// A JSON null body decodes to an empty set.
func (f *Fetcher) FetchLogs(ctx context.Context) ([]models.LogEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.endpoint, nil)
	if err != nil {
		return nil, &AcquisitionError{Endpoint: f.endpoint, Err: errors.Wrap(err, "build request")}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &AcquisitionError{Endpoint: f.endpoint, Err: errors.Wrap(err, "send request")}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &AcquisitionError{
			Endpoint:   f.endpoint,
			StatusCode: resp.StatusCode,
			Err:        errors.Errorf("HTTP error! status: %d", resp.StatusCode),
		}
	}

	var entries []models.LogEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, &AcquisitionError{Endpoint: f.endpoint, Err: errors.Wrap(err, "decode body")}
	}
	if entries == nil {
		entries = []models.LogEntry{}
	}

	return entries, nil
}
