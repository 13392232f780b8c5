package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/route-search/route-search-and-aggregation-system/internal/cache"
	"github.com/route-search/route-search-and-aggregation-system/internal/domain"
	"github.com/route-search/route-search-and-aggregation-system/internal/infrastructure/timeutil"
)

// FailureMode is the policy for provider failures during a live search fan-out.
type FailureMode string

// Available failure modes.
const (
	// FailurePartial aggregates the surviving providers' results and logs
	// the failures (default).
	FailurePartial FailureMode = "partial"

	// FailureStrict fails the whole search on any single provider error.
	FailureStrict FailureMode = "strict"
)

// IsValid checks if the failure mode is a valid value.
func (m FailureMode) IsValid() bool {
	switch m {
	case FailurePartial, FailureStrict:
		return true
	default:
		return false
	}
}

// ParseFailureMode converts a configuration string to a FailureMode.
func ParseFailureMode(s string) (FailureMode, error) {
	mode := FailureMode(strings.ToLower(strings.TrimSpace(s)))
	if !mode.IsValid() {
		return "", fmt.Errorf("invalid failure mode %q (want %q or %q)", s, FailurePartial, FailureStrict)
	}
	return mode, nil
}

// RouteSearchUseCase defines the interface for route search operations.
type RouteSearchUseCase interface {
	// Search answers the request from cache when OnlyCached is set, and from
	// a concurrent provider fan-out otherwise, writing live results back to
	// the cache. An empty result set is a valid response, not an error.
	Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error)

	// IsAvailable checks every provider's health concurrently and folds the
	// flags into one boolean under the configured availability strategy.
	IsAvailable(ctx context.Context) (bool, error)
}

// Config contains the orchestration policies.
type Config struct {
	// AvailabilityStrategy folds provider health flags into one boolean.
	// Required; validated by the constructor.
	AvailabilityStrategy AvailabilityStrategy

	// FailureMode decides whether a single provider failure fails the whole
	// search. Defaults to FailurePartial when empty.
	FailureMode FailureMode
}

// routeSearchUseCase implements RouteSearchUseCase using request-scoped
// fan-out: one goroutine per provider, joined before proceeding. The cache
// store is the only shared mutable resource; identity-key write races are
// idempotent, so no extra locking happens here.
type routeSearchUseCase struct {
	providers   []domain.RouteProvider
	store       cache.Store
	clock       timeutil.Clock
	strategy    AvailabilityStrategy
	failureMode FailureMode
	log         zerolog.Logger
}

// NewRouteSearchUseCase creates a RouteSearchUseCase over the statically
// registered providers and cache store. The availability strategy must be
// valid: a missing or unknown strategy is a fatal configuration error and is
// rejected here, at startup, never at request time.
func NewRouteSearchUseCase(
	providers []domain.RouteProvider,
	store cache.Store,
	clock timeutil.Clock,
	cfg Config,
	log zerolog.Logger,
) (RouteSearchUseCase, error) {
	if !cfg.AvailabilityStrategy.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrStrategyNotConfigured, cfg.AvailabilityStrategy)
	}

	mode := cfg.FailureMode
	if mode == "" {
		mode = FailurePartial
	}
	if !mode.IsValid() {
		return nil, fmt.Errorf("invalid failure mode %q", mode)
	}

	if clock == nil {
		clock = timeutil.NewRealClock()
	}

	return &routeSearchUseCase{
		providers:   providers,
		store:       store,
		clock:       clock,
		strategy:    cfg.AvailabilityStrategy,
		failureMode: mode,
		log:         log,
	}, nil
}

// searchResult holds one provider's search outcome, indexed by registry
// position so concatenation order never depends on response arrival.
type searchResult struct {
	routes []domain.Route
	err    error
}

// Search implements RouteSearchUseCase.Search.
func (uc *routeSearchUseCase) Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error) {
	if req.OnlyCached() {
		uc.log.Info().
			Str("origin", req.Origin).
			Str("destination", req.Destination).
			Msg("Getting routes from cache")
		routes := uc.routesFromCache(ctx, req)
		resp := domain.NewSearchResponse(routes)
		return &resp, nil
	}

	uc.log.Info().
		Str("origin", req.Origin).
		Str("destination", req.Destination).
		Int("providers", len(uc.providers)).
		Msg("Getting routes from providers")

	if len(uc.providers) == 0 {
		return nil, domain.ErrAllProvidersFailed
	}

	results := uc.fanOutSearch(ctx, req)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	failed := 0
	var firstErr error
	for i, result := range results {
		if result.err == nil {
			continue
		}
		failed++
		if firstErr == nil {
			firstErr = result.err
		}
		uc.log.Warn().
			Err(result.err).
			Str("provider", uc.providers[i].Name()).
			Msg("Provider search failed")
	}

	if failed == len(uc.providers) {
		return nil, domain.ErrAllProvidersFailed
	}
	if failed > 0 && uc.failureMode == FailureStrict {
		return nil, firstErr
	}

	batches := make([][]domain.Route, len(results))
	for i, result := range results {
		batches[i] = result.routes
	}
	routes := AggregateRoutes(batches, req.Filters)

	if len(routes) > 0 {
		uc.writeBack(ctx, req, routes)
	}

	resp := domain.NewSearchResponse(routes)
	return &resp, nil
}

// fanOutSearch queries every provider concurrently and joins before
// returning. Results are slotted by registry position; a panicking provider
// is recorded as a failed one instead of crashing the search.
func (uc *routeSearchUseCase) fanOutSearch(ctx context.Context, req domain.SearchRequest) []searchResult {
	results := make([]searchResult, len(uc.providers))

	var wg sync.WaitGroup
	for i, provider := range uc.providers {
		wg.Add(1)
		go func(i int, p domain.RouteProvider) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					results[i] = searchResult{
						err: domain.NewProviderError(p.Name(), fmt.Errorf("provider panic: %v", r)),
					}
				}
			}()

			routes, err := p.Search(ctx, req)
			results[i] = searchResult{routes: routes, err: err}
		}(i, provider)
	}
	wg.Wait()

	return results
}

// writeBack persists a non-empty result set: every route under its own
// identity key plus the request's search key holding the ordered identities,
// all sharing TTL = min(time limits) - now. Routes whose time limit already
// elapsed are excluded so the TTL can never be zero or negative; the store
// additionally treats TTL <= 0 as do-not-store. Persistence is best effort:
// a failed write is logged and swallowed, never failing the response.
func (uc *routeSearchUseCase) writeBack(ctx context.Context, req domain.SearchRequest, routes []domain.Route) {
	now := uc.clock.Now()

	var minTimeLimit time.Time
	fresh := make([]domain.Route, 0, len(routes))
	for _, r := range routes {
		if r.Expired(now) {
			uc.log.Debug().Str("route_id", r.ID).Msg("Skipping cache write for expired offer")
			continue
		}
		if minTimeLimit.IsZero() || r.TimeLimit.Before(minTimeLimit) {
			minTimeLimit = r.TimeLimit
		}
		fresh = append(fresh, r)
	}
	if len(fresh) == 0 {
		return
	}
	ttl := minTimeLimit.Sub(now)

	entries := make(map[string][]byte, len(fresh))
	ids := make([]string, 0, len(fresh))
	for _, r := range fresh {
		data, err := json.Marshal(r)
		if err != nil {
			uc.log.Error().Err(err).Str("route_id", r.ID).Msg("Failed to encode route for cache")
			continue
		}
		entries[RouteKey(r)] = data
		ids = append(ids, r.ID)
	}
	if len(entries) == 0 {
		return
	}

	if err := uc.store.SetBatch(ctx, entries, ttl); err != nil {
		uc.log.Warn().Err(err).Msg("Failed to cache routes")
		return
	}

	idsData, err := json.Marshal(ids)
	if err != nil {
		uc.log.Error().Err(err).Msg("Failed to encode route ids for cache")
		return
	}
	if err := uc.store.Set(ctx, SearchKey(req), idsData, ttl); err != nil {
		uc.log.Warn().Err(err).Msg("Failed to cache search key")
	}
}

// routesFromCache serves the cache-only path: prefix-scan every cached filter
// variant of the itinerary, flatten and dedupe the identity lists, batch-
// fetch the routes, then re-filter with the *current* request's filters so a
// differently-shaped cache-only query can reuse entries cached under a
// related filter set. Cache failures degrade to "no cached data".
func (uc *routeSearchUseCase) routesFromCache(ctx context.Context, req domain.SearchRequest) []domain.Route {
	hits, err := uc.store.ScanPrefix(ctx, SearchKeyPrefix(req))
	if err != nil {
		uc.log.Warn().Err(err).Msg("Cache prefix scan failed, serving empty result")
		return nil
	}

	// Sort variant keys so the flattened identity order is stable across runs.
	variantKeys := make([]string, 0, len(hits))
	for key := range hits {
		variantKeys = append(variantKeys, key)
	}
	sort.Strings(variantKeys)

	seen := make(map[string]struct{})
	var ids []string
	for _, key := range variantKeys {
		var variantIDs []string
		if err := json.Unmarshal(hits[key], &variantIDs); err != nil {
			uc.log.Debug().Err(err).Str("key", key).Msg("Skipping undecodable cache entry")
			continue
		}
		for _, id := range variantIDs {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	values, err := uc.store.GetBatch(ctx, ids)
	if err != nil {
		uc.log.Warn().Err(err).Msg("Cache batch read failed, serving empty result")
		return nil
	}

	routes := make([]domain.Route, 0, len(values))
	for _, id := range ids {
		raw, ok := values[id]
		if !ok {
			// Route entry expired after the id list was written; a cache
			// miss is not an error.
			continue
		}
		var route domain.Route
		if err := json.Unmarshal(raw, &route); err != nil {
			uc.log.Debug().Err(err).Str("route_id", id).Msg("Skipping undecodable cached route")
			continue
		}
		routes = append(routes, route)
	}

	return domain.FilterRoutes(routes, req.Filters)
}

// IsAvailable implements RouteSearchUseCase.IsAvailable.
func (uc *routeSearchUseCase) IsAvailable(ctx context.Context) (bool, error) {
	uc.log.Info().Msg("Checking providers availability")

	available := make([]bool, len(uc.providers))

	var wg sync.WaitGroup
	for i, provider := range uc.providers {
		wg.Add(1)
		go func(i int, p domain.RouteProvider) {
			defer wg.Done()

			up, err := p.IsAvailable(ctx)
			if err != nil {
				// An invocation failure counts as unavailable.
				uc.log.Warn().Err(err).Str("provider", p.Name()).Msg("Availability check failed")
				up = false
			}
			available[i] = up
		}(i, provider)
	}
	wg.Wait()

	var down []string
	for i, up := range available {
		if !up {
			down = append(down, uc.providers[i].Name())
		}
	}

	// An empty registry counts as all-down; there is nothing to search.
	if len(down) == len(uc.providers) {
		uc.log.Warn().Msg("All providers are not available")
		return false, nil
	}
	if len(down) > 0 {
		uc.log.Warn().Strs("providers", down).Msg("Some providers are not available")
	}

	return EvaluateAvailability(uc.strategy, len(down), len(uc.providers))
}

// Ensure routeSearchUseCase implements RouteSearchUseCase at compile time.
var _ RouteSearchUseCase = (*routeSearchUseCase)(nil)
