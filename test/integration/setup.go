// Package integration provides helpers and integration tests for the route
// search system. Integration tests verify that components work together,
// including HTTP handlers, the search use case, cache store, and mock
// providers.
package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	httpAdapter "github.com/route-search/route-search-and-aggregation-system/internal/adapter/http"
	"github.com/route-search/route-search-and-aggregation-system/internal/cache"
	"github.com/route-search/route-search-and-aggregation-system/internal/domain"
	"github.com/route-search/route-search-and-aggregation-system/internal/infrastructure/timeutil"
	"github.com/route-search/route-search-and-aggregation-system/internal/usecase"
)

// TestNow is the frozen wall-clock time integration tests run at.
// Sample routes from the mock package depart after this instant, so their
// offers are never expired at write-back time.
var TestNow = time.Date(2025, 12, 15, 7, 0, 0, 0, time.UTC)

// TestServer wraps an Echo instance and provides helper methods for integration testing.
type TestServer struct {
	Echo    *echo.Echo
	Handler *httpAdapter.RouteHandler
}

// NewTestServer creates a new test server with the given use case.
func NewTestServer(uc usecase.RouteSearchUseCase) *TestServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	handler := httpAdapter.NewRouteHandler(uc)
	httpAdapter.RegisterRoutes(e, handler)

	return &TestServer{
		Echo:    e,
		Handler: handler,
	}
}

// Request represents a test HTTP request configuration.
type Request struct {
	Method      string
	Path        string
	Body        interface{}
	ContentType string
}

// Response represents a test HTTP response.
type Response struct {
	Code    int
	Body    []byte
	Headers http.Header
}

// Do executes a test request and returns the response.
func (ts *TestServer) Do(req Request) Response {
	var bodyReader *bytes.Reader
	if req.Body != nil {
		bodyBytes, _ := json.Marshal(req.Body)
		bodyReader = bytes.NewReader(bodyBytes)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	httpReq := httptest.NewRequest(req.Method, req.Path, bodyReader)

	if req.ContentType != "" {
		httpReq.Header.Set(echo.HeaderContentType, req.ContentType)
	} else if req.Body != nil {
		httpReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	ts.Echo.ServeHTTP(rec, httpReq)

	return Response{
		Code:    rec.Code,
		Body:    rec.Body.Bytes(),
		Headers: rec.Header(),
	}
}

// SearchRequest posts a search request body.
func (ts *TestServer) SearchRequest(body interface{}) Response {
	return ts.Do(Request{
		Method: http.MethodPost,
		Path:   "/api/v1/search",
		Body:   body,
	})
}

// PingRequest makes an availability probe request.
func (ts *TestServer) PingRequest() Response {
	return ts.Do(Request{
		Method: http.MethodGet,
		Path:   "/api/v1/ping",
	})
}

// HealthRequest makes a health check request.
func (ts *TestServer) HealthRequest() Response {
	return ts.Do(Request{
		Method: http.MethodGet,
		Path:   "/health",
	})
}

// ParseSearchResponse parses the response body as a SearchResponseDTO.
func (r *Response) ParseSearchResponse() (*httpAdapter.SearchResponseDTO, error) {
	var resp httpAdapter.SearchResponseDTO
	if err := json.Unmarshal(r.Body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ParseError parses the response body to extract error information.
func (r *Response) ParseError() (map[string]interface{}, error) {
	var errResp map[string]interface{}
	if err := json.Unmarshal(r.Body, &errResp); err != nil {
		return nil, err
	}
	return errResp, nil
}

// SearchRequestBody is a helper struct for building search request bodies.
type SearchRequestBody struct {
	Origin         string                 `json:"origin"`
	Destination    string                 `json:"destination"`
	OriginDateTime string                 `json:"originDateTime"`
	Filters        map[string]interface{} `json:"filters,omitempty"`
}

// DefaultSearchRequest returns a valid search request body for testing.
func DefaultSearchRequest() SearchRequestBody {
	return SearchRequestBody{
		Origin:         "Moscow",
		Destination:    "Sochi",
		OriginDateTime: "2025-12-15T08:00:00Z",
	}
}

// DefaultDomainRequest returns a valid domain request for driving the use
// case directly.
func DefaultDomainRequest() domain.SearchRequest {
	return domain.SearchRequest{
		Origin:         "Moscow",
		Destination:    "Sochi",
		OriginDateTime: time.Date(2025, 12, 15, 8, 0, 0, 0, time.UTC),
	}
}

// Env bundles the use case with its backing store and clock so tests can
// drive cache behavior and time directly.
type Env struct {
	UseCase usecase.RouteSearchUseCase
	Store   *cache.MemoryStore
	Clock   *timeutil.MockClock
}

// CreateEnv builds a use case over a fresh in-memory store and frozen clock
// with the default policies (any-available, partial failures).
func CreateEnv(providers ...domain.RouteProvider) *Env {
	return CreateEnvWithConfig(usecase.Config{
		AvailabilityStrategy: usecase.StrategyAny,
		FailureMode:          usecase.FailurePartial,
	}, providers...)
}

// CreateEnvWithConfig builds a use case with custom policies.
func CreateEnvWithConfig(cfg usecase.Config, providers ...domain.RouteProvider) *Env {
	clock := timeutil.NewMockClock(TestNow)
	store := cache.NewMemoryStore(clock)

	uc, err := usecase.NewRouteSearchUseCase(providers, store, clock, cfg, zerolog.Nop())
	if err != nil {
		panic(err)
	}

	return &Env{
		UseCase: uc,
		Store:   store,
		Clock:   clock,
	}
}
