package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mkravets/cpi-worker/internal/config"
	"github.com/mkravets/cpi-worker/internal/domain"
)

// authTokenHeader carries the shared secret on every outbound call.
const authTokenHeader = "X-Auth-Token"

// Client talks to the upstream service. Both calls share the same base
// URL, shared-secret header, and per-request timeout.
type Client struct {
	httpClient *http.Client
	baseURL    string
	authToken  string
	logger     *slog.Logger
}

// NewClient creates a Client for the configured upstream service.
func NewClient(cfg config.UpstreamConfig, authToken string, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout()},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		authToken:  authToken,
		logger:     logger,
	}
}

// FetchRequestData issues the single GET for the request's categories
// payload. It never retries; failure policy belongs to the caller.
func (c *Client) FetchRequestData(ctx context.Context, requestID string) (*domain.RequestData, error) {
	url := fmt.Sprintf("%s/%s/async-data", c.baseURL, requestID)
	c.logger.Debug("fetching request data", "request_id", requestID, "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{RequestID: requestID, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(authTokenHeader, c.authToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{RequestID: requestID, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &FetchError{RequestID: requestID, StatusCode: resp.StatusCode}
	}

	var data domain.RequestData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, &FetchError{RequestID: requestID, Err: fmt.Errorf("decoding response body: %w", err)}
	}

	c.logger.Debug("fetched request data",
		"request_id", requestID,
		"categories", len(data.Categories),
		"comparison_date", data.ComparisonDate)

	return &data, nil
}

// resultPayload is the wire shape of the async-result callback body. A
// nil PersonalCPI serializes as JSON null.
type resultPayload struct {
	PersonalCPI *float64 `json:"personalCPI"`
	Success     bool     `json:"success"`
}

// ReportResult delivers the outcome with a single PUT to the result
// callback. Exactly one attempt is made per task.
func (c *Client) ReportResult(ctx context.Context, outcome domain.CalculationOutcome) error {
	url := fmt.Sprintf("%s/%s/async-result", c.baseURL, outcome.ID)

	body, err := json.Marshal(resultPayload{
		PersonalCPI: outcome.PersonalCPI,
		Success:     outcome.Success,
	})
	if err != nil {
		return &ReportError{RequestID: outcome.ID, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return &ReportError{RequestID: outcome.ID, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(authTokenHeader, c.authToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &ReportError{RequestID: outcome.ID, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &ReportError{RequestID: outcome.ID, StatusCode: resp.StatusCode}
	}

	c.logger.Info("reported calculation result",
		"request_id", outcome.ID,
		"success", outcome.Success)

	return nil
}
