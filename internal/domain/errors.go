package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the route search domain.
var (
	// ErrInvalidRequest indicates the search request failed validation.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrAllProvidersFailed indicates every registered provider failed to
	// return results for a live search.
	ErrAllProvidersFailed = errors.New("all providers failed")

	// ErrCacheUnavailable indicates the cache backend could not be reached.
	// Search paths treat it as degraded mode, not as a request failure.
	ErrCacheUnavailable = errors.New("cache unavailable")

	// ErrStrategyNotConfigured indicates the availability strategy is missing
	// or invalid. This is a configuration error and must be surfaced at
	// startup validation, never at request time.
	ErrStrategyNotConfigured = errors.New("availability strategy not configured")
)

// ProviderError wraps an error from a single provider with its name,
// so failures stay attributable after aggregation.
type ProviderError struct {
	Provider string
	Err      error
}

// NewProviderError creates a ProviderError for the given provider.
func NewProviderError(provider string, err error) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Err:      err,
	}
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *ProviderError) Unwrap() error {
	return e.Err
}
