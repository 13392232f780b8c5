// Package domain contains the core business entities and rules for the route search system.
// These entities are provider-agnostic and form the foundation upon which all other components are built.
package domain

import "time"

// Route represents a single priced travel offer normalized from a provider's response.
// Routes are immutable values: once built by a provider adapter they are only
// read, cached, and returned.
type Route struct {
	// ID is a unique identifier for this route, assigned by the aggregator
	// side (never by a provider). It doubles as the route's cache key.
	ID string `json:"id"`

	// Origin is the departure point (e.g., "NYC")
	Origin string `json:"origin"`

	// Destination is the arrival point (e.g., "LAX")
	Destination string `json:"destination"`

	// OriginDateTime is the scheduled departure time
	OriginDateTime time.Time `json:"originDateTime"`

	// DestinationDateTime is the scheduled arrival time.
	// Invariant: never before OriginDateTime.
	DestinationDateTime time.Time `json:"destinationDateTime"`

	// Price is the offer price. Currency is assumed uniform across providers.
	Price float64 `json:"price"`

	// TimeLimit is the timestamp after which the offer is no longer bookable.
	// It also drives the cache TTL for this route.
	TimeLimit time.Time `json:"timeLimit"`
}

// DurationMinutes returns the trip duration in whole minutes, truncated.
func (r Route) DurationMinutes() int {
	return int(r.DestinationDateTime.Sub(r.OriginDateTime).Minutes())
}

// Expired reports whether the offer's time limit has already elapsed at the
// given moment. Expired routes must never be written to the cache.
func (r Route) Expired(now time.Time) bool {
	return !r.TimeLimit.After(now)
}

// dedupKey is the identity used for duplicate detection. Two routes are
// duplicates if and only if they agree on all five fields; the generated ID
// is deliberately excluded. Timestamps are compared as instants, so routes
// from providers reporting different zones still collide when they describe
// the same moment.
type dedupKey struct {
	Origin              string
	Destination         string
	OriginDateTime      int64
	DestinationDateTime int64
	Price               float64
}

// DedupeRoutes removes duplicate routes, keeping the first occurrence and
// preserving order. The input slice is not mutated.
func DedupeRoutes(routes []Route) []Route {
	if len(routes) <= 1 {
		return routes
	}

	seen := make(map[dedupKey]struct{}, len(routes))
	result := make([]Route, 0, len(routes))

	for _, r := range routes {
		key := dedupKey{
			Origin:              r.Origin,
			Destination:         r.Destination,
			OriginDateTime:      r.OriginDateTime.UnixNano(),
			DestinationDateTime: r.DestinationDateTime.UnixNano(),
			Price:               r.Price,
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, r)
	}

	return result
}
