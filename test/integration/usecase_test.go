package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/route-search/route-search-and-aggregation-system/internal/domain"
	"github.com/route-search/route-search-and-aggregation-system/internal/usecase"
	"github.com/route-search/route-search-and-aggregation-system/test/mock"
	"github.com/route-search/route-search-and-aggregation-system/test/testutil"
)

// TestRouteSearch_MultipleProviders aggregates results from multiple
// providers in registry order.
func TestRouteSearch_MultipleProviders(t *testing.T) {
	// Shift the second provider's prices so its offers are distinct
	// itineraries rather than cross-provider duplicates.
	routes2 := mock.SampleRoutes("two", 3)
	for i := range routes2 {
		routes2[i].Price += 500
	}

	provider1 := mock.NewProvider("one").WithRoutes(mock.SampleRoutes("one", 2))
	provider2 := mock.NewProvider("two").WithRoutes(routes2)

	env := CreateEnv(provider1, provider2)

	result, err := env.UseCase.Search(context.Background(), DefaultDomainRequest())

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Len(t, result.Routes, 5)
	assert.Equal(t, "one-1", result.Routes[0].ID, "registry order, not arrival order")
	assert.Equal(t, "two-1", result.Routes[2].ID)

	assert.Equal(t, 1, provider1.CallCount())
	assert.Equal(t, 1, provider2.CallCount())

	// aggregates over the full merged set
	assert.Equal(t, float64(200), result.MinPrice)
	assert.Equal(t, float64(800), result.MaxPrice)
	assert.Equal(t, 150, result.MinMinutesRoute)
	assert.Equal(t, 150, result.MaxMinutesRoute)
}

// TestRouteSearch_DeduplicatesAcrossProviders drops the later copy when two
// providers return the same itinerary at the same price.
func TestRouteSearch_DeduplicatesAcrossProviders(t *testing.T) {
	shared := mock.SampleRoutes("one", 1)[0]
	duplicate := shared
	duplicate.ID = "two-duplicate"

	provider1 := mock.NewProvider("one").WithRoutes([]domain.Route{shared})
	provider2 := mock.NewProvider("two").WithRoutes([]domain.Route{duplicate})

	env := CreateEnv(provider1, provider2)

	result, err := env.UseCase.Search(context.Background(), DefaultDomainRequest())

	require.NoError(t, err)
	require.Len(t, result.Routes, 1)
	assert.Equal(t, "one-1", result.Routes[0].ID, "first provider in registry order wins")
}

// TestRouteSearch_PartialFailure returns surviving providers' results under
// the default partial failure mode.
func TestRouteSearch_PartialFailure(t *testing.T) {
	provider1 := mock.NewProvider("one").WithRoutes(mock.SampleRoutes("one", 2))
	provider2 := mock.NewProvider("two").WithError(errors.New("connection refused"))

	env := CreateEnv(provider1, provider2)

	result, err := env.UseCase.Search(context.Background(), DefaultDomainRequest())

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Len(t, result.Routes, 2)
}

// TestRouteSearch_StrictMode fails the whole search on a single provider
// error.
func TestRouteSearch_StrictMode(t *testing.T) {
	provider1 := mock.NewProvider("one").WithRoutes(mock.SampleRoutes("one", 2))
	provider2 := mock.NewProvider("two").WithError(errors.New("connection refused"))

	env := CreateEnvWithConfig(usecase.Config{
		AvailabilityStrategy: usecase.StrategyAny,
		FailureMode:          usecase.FailureStrict,
	}, provider1, provider2)

	result, err := env.UseCase.Search(context.Background(), DefaultDomainRequest())

	require.Error(t, err)
	assert.Nil(t, result)
}

// TestRouteSearch_AllProvidersFail surfaces ErrAllProvidersFailed.
func TestRouteSearch_AllProvidersFail(t *testing.T) {
	provider1 := mock.NewProvider("one").WithError(errors.New("network error"))
	provider2 := mock.NewProvider("two").WithError(errors.New("timeout"))

	env := CreateEnv(provider1, provider2)

	result, err := env.UseCase.Search(context.Background(), DefaultDomainRequest())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrAllProvidersFailed))
	assert.Nil(t, result)
}

// TestRouteSearch_SlowProviderTimesOut cancels the fan-out when the request
// context deadline passes.
func TestRouteSearch_SlowProviderTimesOut(t *testing.T) {
	slow := mock.NewProvider("slow").
		WithDelay(500 * time.Millisecond).
		WithRoutes(mock.SampleRoutes("slow", 1))

	env := CreateEnv(slow)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := env.UseCase.Search(ctx, DefaultDomainRequest())

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// TestRouteSearch_CacheRoundTrip verifies that a live search writes its
// results back under the itinerary key, and a later cache-only search for
// the same itinerary is served without touching the providers.
func TestRouteSearch_CacheRoundTrip(t *testing.T) {
	provider := mock.NewProvider("one").WithRoutes(mock.SampleRoutes("one", 3))
	env := CreateEnv(provider)

	live, err := env.UseCase.Search(context.Background(), DefaultDomainRequest())
	require.NoError(t, err)
	require.Len(t, live.Routes, 3)
	require.Equal(t, 1, provider.CallCount())

	cachedReq := DefaultDomainRequest()
	cachedReq.Filters = &domain.SearchFilters{OnlyCached: true}

	cached, err := env.UseCase.Search(context.Background(), cachedReq)
	require.NoError(t, err)
	assert.Equal(t, 1, provider.CallCount(), "cache-only search must not call providers")
	assert.ElementsMatch(t, live.Routes, cached.Routes)
}

// TestRouteSearch_CachedResultsRefiltered applies the current request's
// filters to cached routes, even when the original search was broader.
func TestRouteSearch_CachedResultsRefiltered(t *testing.T) {
	provider := mock.NewProvider("one").WithRoutes(mock.SampleRoutes("one", 3))
	env := CreateEnv(provider)

	_, err := env.UseCase.Search(context.Background(), DefaultDomainRequest())
	require.NoError(t, err)

	cachedReq := DefaultDomainRequest()
	cachedReq.Filters = &domain.SearchFilters{
		OnlyCached: true,
		MaxPrice:   testutil.FloatPtr(250), // sample prices are 200, 250, 300
	}

	cached, err := env.UseCase.Search(context.Background(), cachedReq)
	require.NoError(t, err)
	require.Len(t, cached.Routes, 2)
	assert.Equal(t, float64(200), cached.MinPrice)
	assert.Equal(t, float64(250), cached.MaxPrice)
}

// TestRouteSearch_CacheExpiresAtEarliestTimeLimit verifies the cache entry
// lives no longer than the soonest offer expiry in the stored set.
func TestRouteSearch_CacheExpiresAtEarliestTimeLimit(t *testing.T) {
	// Sample routes depart at 08:00, 10:00, 12:00 with four hour offers,
	// so the earliest time limit is 12:00.
	provider := mock.NewProvider("one").WithRoutes(mock.SampleRoutes("one", 3))
	env := CreateEnv(provider)

	_, err := env.UseCase.Search(context.Background(), DefaultDomainRequest())
	require.NoError(t, err)

	cachedReq := DefaultDomainRequest()
	cachedReq.Filters = &domain.SearchFilters{OnlyCached: true}

	// Just before the earliest expiry the cached set is still served.
	env.Clock.Set(time.Date(2025, 12, 15, 11, 59, 0, 0, time.UTC))
	cached, err := env.UseCase.Search(context.Background(), cachedReq)
	require.NoError(t, err)
	assert.Len(t, cached.Routes, 3)

	// Past it the entry is gone; an empty result is a valid response.
	env.Clock.Set(time.Date(2025, 12, 15, 12, 1, 0, 0, time.UTC))
	cached, err = env.UseCase.Search(context.Background(), cachedReq)
	require.NoError(t, err)
	assert.Empty(t, cached.Routes)
}

// TestRouteSearch_CacheMissIsEmptyNotError answers an unknown itinerary in
// cache-only mode with an empty set.
func TestRouteSearch_CacheMissIsEmptyNotError(t *testing.T) {
	env := CreateEnv(mock.NewProvider("one"))

	req := DefaultDomainRequest()
	req.Origin = "Kazan"
	req.Filters = &domain.SearchFilters{OnlyCached: true}

	result, err := env.UseCase.Search(context.Background(), req)

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Empty(t, result.Routes)
}

// TestIsAvailable_Strategies folds provider health under both strategies.
func TestIsAvailable_Strategies(t *testing.T) {
	tests := []struct {
		name     string
		strategy usecase.AvailabilityStrategy
		up       []bool
		want     bool
	}{
		{"any with one up", usecase.StrategyAny, []bool{true, false}, true},
		{"any with all down", usecase.StrategyAny, []bool{false, false}, false},
		{"all with one down", usecase.StrategyAll, []bool{true, false}, false},
		{"all with all up", usecase.StrategyAll, []bool{true, true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			providers := make([]domain.RouteProvider, len(tt.up))
			for i, up := range tt.up {
				providers[i] = mock.NewProvider("p").WithAvailability(up)
			}

			env := CreateEnvWithConfig(usecase.Config{
				AvailabilityStrategy: tt.strategy,
			}, providers...)

			available, err := env.UseCase.IsAvailable(context.Background())

			require.NoError(t, err)
			assert.Equal(t, tt.want, available)
		})
	}
}

// TestIsAvailable_PingErrorCountsAsDown treats a failing health probe the
// same as an explicit unavailable signal.
func TestIsAvailable_PingErrorCountsAsDown(t *testing.T) {
	healthy := mock.NewProvider("one").WithAvailability(true)
	broken := mock.NewProvider("two").WithPingError(errors.New("probe failed"))

	env := CreateEnvWithConfig(usecase.Config{
		AvailabilityStrategy: usecase.StrategyAll,
	}, healthy, broken)

	available, err := env.UseCase.IsAvailable(context.Background())

	require.NoError(t, err)
	assert.False(t, available)
}
