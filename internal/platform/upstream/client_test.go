package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkravets/cpi-worker/internal/config"
	"github.com/mkravets/cpi-worker/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

func testClient(baseURL string) *Client {
	return NewClient(config.UpstreamConfig{
		BaseURL:        baseURL,
		TimeoutSeconds: 2,
	}, "shared-secret", testLogger())
}

func TestFetchRequestData_Success(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/42/async-data", r.URL.Path)
		assert.Equal(t, "shared-secret", r.Header.Get("X-Auth-Token"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		w.Header().Set("Content-Type", "application/json")
		_, err := w.Write([]byte(`{
			"categories": [
				{"id": 1, "userSpent": 150.0, "basePrice": 100.0},
				{"id": 2, "userSpent": null, "basePrice": null}
			],
			"comparisonDate": "2024-06-01"
		}`))
		assert.NoError(t, err)
	}))
	defer server.Close()

	data, err := testClient(server.URL).FetchRequestData(context.Background(), "42")

	require.NoError(t, err)
	require.NotNil(t, data)
	require.Len(t, data.Categories, 2)
	assert.Equal(t, "2024-06-01", data.ComparisonDate)
	assert.Equal(t, 150.0, data.Categories[0].Spent())
	assert.Equal(t, 0.0, data.Categories[1].Spent())
}

func TestFetchRequestData_TrimsTrailingSlash(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/42/async-data", r.URL.Path)
		_, _ = w.Write([]byte(`{"categories": []}`))
	}))
	defer server.Close()

	_, err := testClient(server.URL + "/").FetchRequestData(context.Background(), "42")

	require.NoError(t, err)
}

func TestFetchRequestData_BadStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	data, err := testClient(server.URL).FetchRequestData(context.Background(), "42")

	require.Error(t, err)
	assert.Nil(t, data)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, http.StatusInternalServerError, fetchErr.StatusCode)
	assert.Equal(t, "42", fetchErr.RequestID)
	assert.NoError(t, fetchErr.Unwrap())
}

func TestFetchRequestData_TransportError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	_, err := testClient(server.URL).FetchRequestData(context.Background(), "42")

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Zero(t, fetchErr.StatusCode)
	assert.Error(t, fetchErr.Unwrap())
}

func TestFetchRequestData_MalformedBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"categories": [`))
	}))
	defer server.Close()

	_, err := testClient(server.URL).FetchRequestData(context.Background(), "42")

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Error(t, fetchErr.Unwrap())
}

func TestReportResult_Success(t *testing.T) {
	t.Parallel()

	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/42/async-result", r.URL.Path)
		assert.Equal(t, "shared-secret", r.Header.Get("X-Auth-Token"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cpi := 50.0
	err := testClient(server.URL).ReportResult(context.Background(), domain.CalculationOutcome{
		ID:          "42",
		PersonalCPI: &cpi,
		Success:     true,
	})

	require.NoError(t, err)
	assert.Equal(t, 50.0, gotBody["personalCPI"])
	assert.Equal(t, true, gotBody["success"])
}

func TestReportResult_FailureOutcomeSerializesNull(t *testing.T) {
	t.Parallel()

	var rawBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		rawBody, err = io.ReadAll(r.Body)
		assert.NoError(t, err)
	}))
	defer server.Close()

	err := testClient(server.URL).ReportResult(context.Background(), domain.FailedOutcome("42"))

	require.NoError(t, err)
	assert.JSONEq(t, `{"personalCPI": null, "success": false}`, string(rawBody))
}

func TestReportResult_BadStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer server.Close()

	err := testClient(server.URL).ReportResult(context.Background(), domain.FailedOutcome("42"))

	var reportErr *ReportError
	require.True(t, errors.As(err, &reportErr))
	assert.Equal(t, http.StatusBadGateway, reportErr.StatusCode)
	assert.Equal(t, "42", reportErr.RequestID)
}

func TestReportResult_TransportError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	err := testClient(server.URL).ReportResult(context.Background(), domain.FailedOutcome("42"))

	var reportErr *ReportError
	require.True(t, errors.As(err, &reportErr))
	assert.Error(t, reportErr.Unwrap())
}
