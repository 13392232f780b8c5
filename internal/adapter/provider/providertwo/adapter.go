// Package providertwo adapts the Provider Two route API to the domain
// RouteProvider interface.
package providertwo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/route-search/route-search-and-aggregation-system/internal/domain"
	"github.com/route-search/route-search-and-aggregation-system/internal/infrastructure/retry"
)

const (
	searchPath = "/api/v1/search"
	pingPath   = "/api/v1/ping"

	defaultTimeout = 5 * time.Second
)

// Adapter implements domain.RouteProvider against Provider Two's HTTP API.
type Adapter struct {
	baseURL  string
	client   *http.Client
	log      zerolog.Logger
	retryCfg retry.Config
}

// NewAdapter creates a Provider Two adapter with a default HTTP client.
func NewAdapter(baseURL string) *Adapter {
	return NewAdapterWithClient(baseURL, &http.Client{Timeout: defaultTimeout}, zerolog.Nop())
}

// NewAdapterWithClient creates a Provider Two adapter with a custom HTTP
// client and logger.
func NewAdapterWithClient(baseURL string, client *http.Client, log zerolog.Logger) *Adapter {
	return &Adapter{
		baseURL:  baseURL,
		client:   client,
		log:      log.With().Str("provider", ProviderName).Logger(),
		retryCfg: retry.ProviderConfig,
	}
}

// Name returns the unique provider identifier.
func (a *Adapter) Name() string {
	return ProviderName
}

// Search queries Provider Two and normalizes the offers into domain routes.
func (a *Adapter) Search(ctx context.Context, req domain.SearchRequest) ([]domain.Route, error) {
	body, err := json.Marshal(toWireRequest(req))
	if err != nil {
		return nil, domain.NewProviderError(ProviderName, fmt.Errorf("encode request: %w", err))
	}

	offers, err := retry.DoWithResult(ctx, func() ([]providerRoute, error) {
		return a.doSearch(ctx, body)
	}, a.retryCfg)
	if err != nil {
		return nil, domain.NewProviderError(ProviderName, err)
	}

	routes := normalize(offers)
	a.log.Debug().
		Int("offers", len(offers)).
		Int("routes", len(routes)).
		Msg("Provider search completed")

	return routes, nil
}

// IsAvailable probes Provider Two's ping endpoint. A reachable upstream
// answering anything but 200 is reported as unavailable, not as an error.
func (a *Adapter) IsAvailable(ctx context.Context) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+pingPath, nil)
	if err != nil {
		return false, domain.NewProviderError(ProviderName, err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return false, domain.NewProviderError(ProviderName, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode == http.StatusOK, nil
}

func (a *Adapter) doSearch(ctx context.Context, body []byte) ([]providerRoute, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+searchPath, bytes.NewReader(body))
	if err != nil {
		return nil, retry.NewPermanent(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		err := fmt.Errorf("search returned status %d", resp.StatusCode)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return nil, retry.NewPermanent(err)
		}
		return nil, err
	}

	var wireResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&wireResp); err != nil {
		return nil, retry.NewPermanent(fmt.Errorf("decode response: %w", err))
	}

	return wireResp.Routes, nil
}

// toWireRequest maps the domain request onto Provider Two's contract.
// Only the filters this provider understands are forwarded.
func toWireRequest(req domain.SearchRequest) searchRequest {
	wireReq := searchRequest{
		Departure:     req.Origin,
		Arrival:       req.Destination,
		DepartureDate: req.OriginDateTime.Format(time.RFC3339),
	}

	if req.Filters != nil && req.Filters.MinTimeLimit != nil {
		wireReq.MinTimeLimit = req.Filters.MinTimeLimit.Format(time.RFC3339)
	}

	return wireReq
}
