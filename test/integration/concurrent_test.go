package integration

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/route-search/route-search-and-aggregation-system/internal/domain"
	"github.com/route-search/route-search-and-aggregation-system/test/mock"
)

// TestConcurrentSearches_SharedCache hammers the same itinerary from many
// goroutines. The cache store is the only shared state; every response must
// carry the full result set regardless of interleaving.
func TestConcurrentSearches_SharedCache(t *testing.T) {
	provider := mock.NewProvider("one").WithRoutes(mock.SampleRoutes("one", 3))
	env := CreateEnv(provider)

	const goroutines = 20

	var wg sync.WaitGroup
	results := make([]*domain.SearchResponse, goroutines)
	errs := make([]error, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = env.UseCase.Search(context.Background(), DefaultDomainRequest())
		}(i)
	}
	wg.Wait()

	for i := 0; i < goroutines; i++ {
		require.NoError(t, errs[i])
		require.NotNil(t, results[i])
		assert.Len(t, results[i].Routes, 3)
	}
}

// TestConcurrentSearches_DistinctItineraries verifies that searches for
// different itineraries never bleed into each other's cache entries.
func TestConcurrentSearches_DistinctItineraries(t *testing.T) {
	routesFor := func(origin string) []domain.Route {
		routes := mock.SampleRoutes(origin, 2)
		for i := range routes {
			routes[i].Origin = origin
		}
		return routes
	}

	origins := []string{"Moscow", "Kazan", "Perm", "Omsk"}

	// One provider per run; each search sees only its own origin's routes.
	var wg sync.WaitGroup
	envs := make(map[string]*Env, len(origins))
	for _, origin := range origins {
		envs[origin] = CreateEnv(mock.NewProvider(origin).WithRoutes(routesFor(origin)))
	}

	for _, origin := range origins {
		wg.Add(1)
		go func(origin string) {
			defer wg.Done()

			req := DefaultDomainRequest()
			req.Origin = origin

			live, err := envs[origin].UseCase.Search(context.Background(), req)
			assert.NoError(t, err)
			assert.Len(t, live.Routes, 2)

			req.Filters = &domain.SearchFilters{OnlyCached: true}
			cached, err := envs[origin].UseCase.Search(context.Background(), req)
			assert.NoError(t, err)
			for _, route := range cached.Routes {
				assert.Equal(t, origin, route.Origin)
			}
		}(origin)
	}
	wg.Wait()
}

// TestConcurrentWriteBack_Idempotent runs live searches in parallel so their
// cache write-backs race. Identity-keyed writes are idempotent, so the
// cache-only view afterwards is exactly one copy of each route.
func TestConcurrentWriteBack_Idempotent(t *testing.T) {
	provider := mock.NewProvider("one").WithRoutes(mock.SampleRoutes("one", 2))
	env := CreateEnv(provider)

	const writers = 10

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.UseCase.Search(context.Background(), DefaultDomainRequest())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	req := DefaultDomainRequest()
	req.Filters = &domain.SearchFilters{OnlyCached: true}

	cached, err := env.UseCase.Search(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, cached.Routes, 2)
}

// TestConcurrentHTTPRequests exercises the full stack under parallel load.
func TestConcurrentHTTPRequests(t *testing.T) {
	provider := mock.NewProvider("one").
		WithDelay(5 * time.Millisecond).
		WithRoutes(mock.SampleRoutes("one", 2))
	env := CreateEnv(provider)
	server := NewTestServer(env.UseCase)

	const requests = 15

	var wg sync.WaitGroup
	codes := make([]int, requests)

	for i := 0; i < requests; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp := server.SearchRequest(DefaultSearchRequest())
			codes[i] = resp.Code
		}(i)
	}
	wg.Wait()

	for i, code := range codes {
		assert.Equal(t, http.StatusOK, code, fmt.Sprintf("request %d", i))
	}
	assert.Equal(t, requests, provider.CallCount())
}
