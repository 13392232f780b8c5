// Package mock provides test doubles for the route search system.
// These mocks are designed for integration testing where we need
// configurable behavior (delays, errors, specific responses).
package mock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/route-search/route-search-and-aggregation-system/internal/domain"
)

// Provider is a configurable mock implementation of domain.RouteProvider.
// It supports configurable delays, errors, and responses for testing
// various scenarios including timeouts and partial failures.
type Provider struct {
	name      string
	routes    []domain.Route
	err       error
	available bool
	pingErr   error
	delay     time.Duration
	callCount int
	pingCount int
	mu        sync.Mutex
}

// NewProvider creates a new mock provider with the given name.
// The provider is available by default and configured further with the
// builder pattern methods.
func NewProvider(name string) *Provider {
	return &Provider{
		name:      name,
		available: true,
	}
}

// WithRoutes configures the provider to return the given routes.
func (p *Provider) WithRoutes(routes []domain.Route) *Provider {
	p.routes = routes
	return p
}

// WithError configures the provider to return the given error from Search.
func (p *Provider) WithError(err error) *Provider {
	p.err = err
	return p
}

// WithAvailability configures the health flag returned by IsAvailable.
func (p *Provider) WithAvailability(available bool) *Provider {
	p.available = available
	return p
}

// WithPingError configures IsAvailable to fail with the given error.
func (p *Provider) WithPingError(err error) *Provider {
	p.pingErr = err
	return p
}

// WithDelay configures the provider to wait the given duration before responding.
// This is useful for testing timeout behavior.
func (p *Provider) WithDelay(d time.Duration) *Provider {
	p.delay = d
	return p
}

// Name returns the provider's unique identifier.
func (p *Provider) Name() string {
	return p.name
}

// Search implements domain.RouteProvider.Search.
// It respects context cancellation, applies configured delay,
// and returns configured routes or error.
func (p *Provider) Search(ctx context.Context, req domain.SearchRequest) ([]domain.Route, error) {
	p.mu.Lock()
	p.callCount++
	p.mu.Unlock()

	if p.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(p.delay):
		}
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if p.err != nil {
		return nil, p.err
	}

	return p.routes, nil
}

// IsAvailable implements domain.RouteProvider.IsAvailable.
func (p *Provider) IsAvailable(ctx context.Context) (bool, error) {
	p.mu.Lock()
	p.pingCount++
	p.mu.Unlock()

	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if p.pingErr != nil {
		return false, p.pingErr
	}

	return p.available, nil
}

// CallCount returns the number of times Search was called.
func (p *Provider) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.callCount
}

// PingCount returns the number of times IsAvailable was called.
func (p *Provider) PingCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pingCount
}

// Reset resets the call counters to zero.
func (p *Provider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.callCount = 0
	p.pingCount = 0
}

// Ensure Provider implements domain.RouteProvider at compile time.
var _ domain.RouteProvider = (*Provider)(nil)

// SampleRoutes returns a slice of sample routes for testing.
// Routes depart two hours apart starting at the base time, priced in
// ascending 50-unit steps, each offer valid for four hours past departure.
func SampleRoutes(provider string, count int) []domain.Route {
	routes := make([]domain.Route, count)

	baseTime := time.Date(2025, 12, 15, 8, 0, 0, 0, time.UTC)

	for i := 0; i < count; i++ {
		departure := baseTime.Add(time.Duration(i*2) * time.Hour)

		routes[i] = domain.Route{
			ID:                  fmt.Sprintf("%s-%d", provider, i+1),
			Origin:              "Moscow",
			Destination:         "Sochi",
			OriginDateTime:      departure,
			DestinationDateTime: departure.Add(2*time.Hour + 30*time.Minute),
			Price:               200 + float64(i*50),
			TimeLimit:           departure.Add(4 * time.Hour),
		}
	}

	return routes
}
