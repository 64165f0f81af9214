package calendarsync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/studyflowapp/studyflow-scheduling/internal/domain"
	"github.com/studyflowapp/studyflow-scheduling/internal/observability/logging"
	"github.com/studyflowapp/studyflow-scheduling/internal/observability/tracing"
)

//go:generate mockgen -source=client.go -destination=client_mock.go -package=calendarsync

// SyncResult is the calendar collaborator's acknowledgement.
type SyncResult struct {
	Synced int      `json:"synced"`
	IDs    []string `json:"ids"`
}

// Syncer pushes finalized events to the external calendar. The calendar
// is a black-box sink; this service never reads back from it.
type Syncer interface {
	UpsertEvents(ctx context.Context, events []domain.CalendarEvent) (*SyncResult, error)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ Syncer = (*Client)(nil)

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type eventPayload struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Start  string `json:"start"`
	End    string `json:"end"`
	Status string `json:"status"`
}

func (c *Client) UpsertEvents(ctx context.Context, events []domain.CalendarEvent) (*SyncResult, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	u.Path = "/api/v1/events"

	payload := make([]eventPayload, 0, len(events))
	for _, event := range events {
		payload = append(payload, eventPayload{
			ID:     event.ID,
			Title:  event.Title,
			Start:  event.Start.Format(time.RFC3339),
			End:    event.End.Format(time.RFC3339),
			Status: event.Status.String(),
		})
	}

	body, err := json.Marshal(map[string]any{"events": payload})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	requestID := logging.ValidateAndExtractRequestID(logging.RequestIDFromContext(ctx))
	req.Header.Set("x-request-id", requestID)
	tracing.InjectToHTTPRequest(ctx, req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Error("failed to send events to calendar sync",
			slog.String("url", u.String()),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Error("unexpected status code from calendar sync",
			slog.String("url", u.String()),
			slog.Int("status_code", resp.StatusCode),
		)
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var result SyncResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	slog.Debug("events synced to calendar",
		slog.Int("synced", result.Synced),
	)

	return &result, nil
}
