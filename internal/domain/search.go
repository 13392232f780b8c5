package domain

import (
	"fmt"
	"time"
)

// SearchRequest defines the parameters for a route search.
type SearchRequest struct {
	// Origin is the departure point
	Origin string `json:"origin"`

	// Destination is the arrival point
	Destination string `json:"destination"`

	// OriginDateTime is the desired departure time
	OriginDateTime time.Time `json:"originDateTime"`

	// Filters contains optional constraints on the result set
	Filters *SearchFilters `json:"filters,omitempty"`
}

// SearchFilters defines optional constraints for a route search.
// A nil filters value, or any individual unset field, imposes no constraint.
type SearchFilters struct {
	// OnlyCached forces the request to be answered exclusively from
	// previously cached results; providers are never called.
	OnlyCached bool `json:"onlyCached,omitempty"`

	// DestinationDateTime requires an exact match on the route's arrival time
	DestinationDateTime *time.Time `json:"destinationDateTime,omitempty"`

	// MaxPrice is an upper bound on the route price (inclusive)
	MaxPrice *float64 `json:"maxPrice,omitempty"`

	// MinTimeLimit is a lower bound on the offer expiry (inclusive)
	MinTimeLimit *time.Time `json:"minTimeLimit,omitempty"`
}

// OnlyCached reports whether the request must be served from cache only.
func (r *SearchRequest) OnlyCached() bool {
	return r.Filters != nil && r.Filters.OnlyCached
}

// Validate checks if the search request is valid.
// Returns a wrapped ErrInvalidRequest error if validation fails.
func (r *SearchRequest) Validate() error {
	if r.Origin == "" {
		return fmt.Errorf("%w: origin is required", ErrInvalidRequest)
	}

	if r.Destination == "" {
		return fmt.Errorf("%w: destination is required", ErrInvalidRequest)
	}

	if r.Origin == r.Destination {
		return fmt.Errorf("%w: origin and destination must be different", ErrInvalidRequest)
	}

	if r.OriginDateTime.IsZero() {
		return fmt.Errorf("%w: originDateTime is required", ErrInvalidRequest)
	}

	if r.Filters != nil && r.Filters.MaxPrice != nil && *r.Filters.MaxPrice < 0 {
		return fmt.Errorf("%w: maxPrice must not be negative", ErrInvalidRequest)
	}

	return nil
}
