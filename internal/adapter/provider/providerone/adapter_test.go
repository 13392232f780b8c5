package providerone

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/route-search/route-search-and-aggregation-system/internal/domain"
	"github.com/route-search/route-search-and-aggregation-system/internal/infrastructure/retry"
)

// fastRetry keeps test failures from sleeping through real backoff delays.
var fastRetry = retry.Config{
	MaxAttempts:  3,
	InitialDelay: time.Millisecond,
	MaxDelay:     5 * time.Millisecond,
	Multiplier:   2.0,
	JitterFactor: 0,
	RetryIf:      retry.SkipPermanent,
}

func newTestAdapter(url string) *Adapter {
	a := NewAdapterWithClient(url, &http.Client{Timeout: time.Second}, zerolog.Nop())
	a.retryCfg = fastRetry
	return a
}

func testSearchRequest() domain.SearchRequest {
	return domain.SearchRequest{
		Origin:         "Moscow",
		Destination:    "Sochi",
		OriginDateTime: time.Date(2025, 12, 15, 10, 0, 0, 0, time.UTC),
	}
}

func TestAdapter_Name(t *testing.T) {
	adapter := NewAdapter("")
	assert.Equal(t, "provider_one", adapter.Name())
}

func TestAdapter_ImplementsInterface(t *testing.T) {
	var _ domain.RouteProvider = (*Adapter)(nil)
}

func TestAdapter_Search_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/search", r.URL.Path)

		var req searchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Moscow", req.From)
		assert.Equal(t, "Sochi", req.To)
		assert.Equal(t, "2025-12-15T10:00:00Z", req.DateFrom)
		assert.Empty(t, req.DateTo)
		assert.Nil(t, req.MaxPrice)

		json.NewEncoder(w).Encode(searchResponse{
			Routes: []providerRoute{
				{
					From:      "Moscow",
					To:        "Sochi",
					DateFrom:  "2025-12-15T10:00:00Z",
					DateTo:    "2025-12-15T12:30:00Z",
					Price:     250,
					TimeLimit: "2025-12-15T14:00:00Z",
				},
				{
					From:      "Moscow",
					To:        "Sochi",
					DateFrom:  "2025-12-15T16:00:00Z",
					DateTo:    "2025-12-15T18:30:00Z",
					Price:     310,
					TimeLimit: "2025-12-15T20:00:00Z",
				},
			},
		})
	}))
	defer server.Close()

	routes, err := newTestAdapter(server.URL).Search(context.Background(), testSearchRequest())

	require.NoError(t, err)
	require.Len(t, routes, 2)
	assert.NotEmpty(t, routes[0].ID)
	assert.NotEqual(t, routes[0].ID, routes[1].ID, "each offer gets a unique identity")
	assert.Equal(t, "Moscow", routes[0].Origin)
	assert.Equal(t, "Sochi", routes[0].Destination)
	assert.Equal(t, float64(250), routes[0].Price)
	assert.True(t, routes[0].TimeLimit.Equal(time.Date(2025, 12, 15, 14, 0, 0, 0, time.UTC)))
	assert.Equal(t, 150, routes[0].DurationMinutes())
}

func TestAdapter_Search_ForwardsFilters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req searchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "2025-12-15T12:30:00Z", req.DateTo)
		require.NotNil(t, req.MaxPrice)
		assert.Equal(t, float64(300), *req.MaxPrice)

		json.NewEncoder(w).Encode(searchResponse{Routes: []providerRoute{}})
	}))
	defer server.Close()

	arrival := time.Date(2025, 12, 15, 12, 30, 0, 0, time.UTC)
	maxPrice := 300.0
	minLimit := time.Date(2025, 12, 15, 11, 0, 0, 0, time.UTC)
	req := testSearchRequest()
	req.Filters = &domain.SearchFilters{
		DestinationDateTime: &arrival,
		MaxPrice:            &maxPrice,
		// this provider's contract has no field for a time-limit floor
		MinTimeLimit: &minLimit,
	}

	routes, err := newTestAdapter(server.URL).Search(context.Background(), req)

	require.NoError(t, err)
	assert.Empty(t, routes)
}

func TestAdapter_Search_SkipsMalformedOffers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(searchResponse{
			Routes: []providerRoute{
				{From: "Moscow", To: "Sochi", DateFrom: "not-a-date", DateTo: "2025-12-15T12:30:00Z", Price: 100, TimeLimit: "2025-12-15T14:00:00Z"},
				{From: "Moscow", To: "Sochi", DateFrom: "2025-12-15T10:00:00", DateTo: "2025-12-15T12:30:00", Price: 200, TimeLimit: "2025-12-15T14:00:00"},
			},
		})
	}))
	defer server.Close()

	routes, err := newTestAdapter(server.URL).Search(context.Background(), testSearchRequest())

	require.NoError(t, err)
	require.Len(t, routes, 1, "unparseable offer is dropped, timezone-less offer survives")
	assert.Equal(t, float64(200), routes[0].Price)
}

func TestAdapter_Search_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(searchResponse{
			Routes: []providerRoute{
				{From: "Moscow", To: "Sochi", DateFrom: "2025-12-15T10:00:00Z", DateTo: "2025-12-15T12:30:00Z", Price: 250, TimeLimit: "2025-12-15T14:00:00Z"},
			},
		})
	}))
	defer server.Close()

	routes, err := newTestAdapter(server.URL).Search(context.Background(), testSearchRequest())

	require.NoError(t, err)
	assert.Len(t, routes, 1)
	assert.Equal(t, int32(3), calls.Load())
}

func TestAdapter_Search_ClientErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	_, err := newTestAdapter(server.URL).Search(context.Background(), testSearchRequest())

	require.Error(t, err)
	var provErr *domain.ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, "provider_one", provErr.Provider)
	assert.Equal(t, int32(1), calls.Load(), "4xx must not be retried")
}

func TestAdapter_Search_ExhaustsRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newTestAdapter(server.URL).Search(context.Background(), testSearchRequest())

	require.Error(t, err)
	var provErr *domain.ProviderError
	assert.ErrorAs(t, err, &provErr)
	assert.Equal(t, int32(3), calls.Load())
}

func TestAdapter_Search_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	_, err := newTestAdapter(server.URL).Search(context.Background(), testSearchRequest())

	require.Error(t, err)
	var provErr *domain.ProviderError
	assert.ErrorAs(t, err, &provErr)
}

func TestAdapter_IsAvailable(t *testing.T) {
	tests := []struct {
		name   string
		status int
		wantUp bool
	}{
		{"200 means available", http.StatusOK, true},
		{"503 means unavailable", http.StatusServiceUnavailable, false},
		{"500 means unavailable", http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/v1/ping", r.URL.Path)
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			up, err := newTestAdapter(server.URL).IsAvailable(context.Background())

			require.NoError(t, err)
			assert.Equal(t, tt.wantUp, up)
		})
	}
}

func TestAdapter_IsAvailable_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	up, err := newTestAdapter(server.URL).IsAvailable(context.Background())

	assert.False(t, up)
	require.Error(t, err)
	var provErr *domain.ProviderError
	assert.ErrorAs(t, err, &provErr)
}
