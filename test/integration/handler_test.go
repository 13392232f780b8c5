package integration

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/route-search/route-search-and-aggregation-system/test/mock"
)

// TestHandler_SearchEndToEnd drives a full search through the HTTP layer,
// use case, providers, and cache.
func TestHandler_SearchEndToEnd(t *testing.T) {
	provider := mock.NewProvider("one").WithRoutes(mock.SampleRoutes("one", 2))
	env := CreateEnv(provider)
	server := NewTestServer(env.UseCase)

	resp := server.SearchRequest(DefaultSearchRequest())

	assert.Equal(t, http.StatusOK, resp.Code)

	result, err := resp.ParseSearchResponse()
	require.NoError(t, err)
	require.Len(t, result.Routes, 2)
	assert.Equal(t, "one-1", result.Routes[0].ID)
	assert.Equal(t, "2025-12-15T08:00:00Z", result.Routes[0].OriginDateTime)
	assert.Equal(t, float64(200), result.MinPrice)
	assert.Equal(t, float64(250), result.MaxPrice)
}

// TestHandler_EmptyResultIs200 returns an empty payload, not an error, when
// no provider has offers.
func TestHandler_EmptyResultIs200(t *testing.T) {
	env := CreateEnv(mock.NewProvider("one"))
	server := NewTestServer(env.UseCase)

	resp := server.SearchRequest(DefaultSearchRequest())

	assert.Equal(t, http.StatusOK, resp.Code)

	result, err := resp.ParseSearchResponse()
	require.NoError(t, err)
	assert.Empty(t, result.Routes)
	assert.Zero(t, result.MinPrice)
	assert.Zero(t, result.MaxMinutesRoute)
}

// TestHandler_ValidationError rejects bad input before any provider runs.
func TestHandler_ValidationError(t *testing.T) {
	provider := mock.NewProvider("one")
	env := CreateEnv(provider)
	server := NewTestServer(env.UseCase)

	body := DefaultSearchRequest()
	body.Destination = body.Origin

	resp := server.SearchRequest(body)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, 0, provider.CallCount())

	errResp, err := resp.ParseError()
	require.NoError(t, err)
	assert.Equal(t, "validation_error", errResp["code"])
}

// TestHandler_AllProvidersFailIs503 maps total provider failure to 503.
func TestHandler_AllProvidersFailIs503(t *testing.T) {
	provider := mock.NewProvider("one").WithError(errors.New("down"))
	env := CreateEnv(provider)
	server := NewTestServer(env.UseCase)

	resp := server.SearchRequest(DefaultSearchRequest())

	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)

	errResp, err := resp.ParseError()
	require.NoError(t, err)
	assert.Equal(t, "service_unavailable", errResp["code"])
}

// TestHandler_CachedSearchServedWithoutProviders runs the live-then-cached
// flow over HTTP.
func TestHandler_CachedSearchServedWithoutProviders(t *testing.T) {
	provider := mock.NewProvider("one").WithRoutes(mock.SampleRoutes("one", 2))
	env := CreateEnv(provider)
	server := NewTestServer(env.UseCase)

	live := server.SearchRequest(DefaultSearchRequest())
	require.Equal(t, http.StatusOK, live.Code)
	require.Equal(t, 1, provider.CallCount())

	body := DefaultSearchRequest()
	body.Filters = map[string]interface{}{"onlyCached": true}

	cached := server.SearchRequest(body)

	assert.Equal(t, http.StatusOK, cached.Code)
	assert.Equal(t, 1, provider.CallCount())

	result, err := cached.ParseSearchResponse()
	require.NoError(t, err)
	assert.Len(t, result.Routes, 2)
}

// TestHandler_Ping reflects provider availability in the status code.
func TestHandler_Ping(t *testing.T) {
	tests := []struct {
		name      string
		available bool
		wantCode  int
	}{
		{"available", true, http.StatusOK},
		{"unavailable", false, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := mock.NewProvider("one").WithAvailability(tt.available)
			env := CreateEnv(provider)
			server := NewTestServer(env.UseCase)

			resp := server.PingRequest()

			assert.Equal(t, tt.wantCode, resp.Code)

			body, err := resp.ParseError()
			require.NoError(t, err)
			assert.Equal(t, tt.available, body["available"])
		})
	}
}

// TestHandler_Health answers regardless of provider state.
func TestHandler_Health(t *testing.T) {
	provider := mock.NewProvider("one").WithAvailability(false)
	env := CreateEnv(provider)
	server := NewTestServer(env.UseCase)

	resp := server.HealthRequest()

	assert.Equal(t, http.StatusOK, resp.Code)
}
