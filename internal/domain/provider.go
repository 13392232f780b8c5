package domain

import "context"

//go:generate mockgen -source=provider.go -destination=mock_provider.go -package=domain

// RouteProvider is the contract every upstream provider client implements.
// Implementations live outside the core (one per upstream) and are
// responsible for normalizing provider-specific payloads into Route values
// before returning them.
type RouteProvider interface {
	// Name returns the provider's stable identifier, used in logs and diagnostics.
	Name() string

	// Search queries the provider for routes matching the request.
	// It returns a provider-scoped error on transport or protocol failure;
	// the core never retries — transport resiliency belongs to the adapter.
	Search(ctx context.Context, req SearchRequest) ([]Route, error)

	// IsAvailable reports whether the provider is currently healthy.
	// A plain "unavailable" signal is a false return, not an error; errors
	// are reserved for true invocation failures.
	IsAvailable(ctx context.Context) (bool, error)
}
