// Package http provides the HTTP handler layer for the route search API.
// It handles request parsing, validation, and response formatting.
package http

import (
	"strings"
	"time"

	"github.com/route-search/route-search-and-aggregation-system/internal/domain"
)

// SearchRoutesRequest represents the request body for route search.
type SearchRoutesRequest struct {
	// Origin is the departure point (e.g., "Moscow")
	Origin string `json:"origin"`

	// Destination is the arrival point (e.g., "Sochi")
	Destination string `json:"destination"`

	// OriginDateTime is the desired departure time in RFC 3339 format
	OriginDateTime string `json:"originDateTime"`

	// Filters contains optional filtering criteria
	Filters *FilterDTO `json:"filters,omitempty"`
}

// FilterDTO represents optional filters for route search.
// Example: {"onlyCached": false, "maxPrice": 300, "minTimeLimit": "2025-12-15T12:00:00Z"}
type FilterDTO struct {
	// OnlyCached answers the search from previously cached results only
	OnlyCached bool `json:"onlyCached,omitempty" example:"false"`

	// DestinationDateTime keeps only routes arriving at exactly this time (RFC 3339)
	DestinationDateTime *string `json:"destinationDateTime,omitempty"`

	// MaxPrice keeps only routes priced at or below this amount
	MaxPrice *float64 `json:"maxPrice,omitempty" example:"300"`

	// MinTimeLimit keeps only routes whose offer is valid at least until this time (RFC 3339)
	MinTimeLimit *string `json:"minTimeLimit,omitempty"`
}

// ValidationError represents a field-level validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors holds multiple validation errors.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return "validation failed"
	}
	return v.Errors[0].Message
}

// Add adds a validation error.
func (v *ValidationErrors) Add(field, message string) {
	v.Errors = append(v.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors.
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// ToMap converts validation errors to a map for API response.
func (v *ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v.Errors))
	for _, e := range v.Errors {
		result[e.Field] = e.Message
	}
	return result
}

// Validate validates the search request and returns any validation errors.
func (r *SearchRoutesRequest) Validate() error {
	errs := &ValidationErrors{}

	r.validateOrigin(errs)
	r.validateDestination(errs)
	r.validateOriginDestinationDifferent(errs)
	r.validateOriginDateTime(errs)
	r.validateFilters(errs)

	if errs.HasErrors() {
		return errs
	}
	return nil
}

func (r *SearchRoutesRequest) validateOrigin(errs *ValidationErrors) {
	r.Origin = strings.TrimSpace(r.Origin)
	if r.Origin == "" {
		errs.Add("origin", "origin is required")
	}
}

func (r *SearchRoutesRequest) validateDestination(errs *ValidationErrors) {
	r.Destination = strings.TrimSpace(r.Destination)
	if r.Destination == "" {
		errs.Add("destination", "destination is required")
	}
}

func (r *SearchRoutesRequest) validateOriginDestinationDifferent(errs *ValidationErrors) {
	if r.Origin != "" && r.Destination != "" && r.Origin == r.Destination {
		errs.Add("destination", "origin and destination must be different")
	}
}

func (r *SearchRoutesRequest) validateOriginDateTime(errs *ValidationErrors) {
	if r.OriginDateTime == "" {
		errs.Add("originDateTime", "originDateTime is required")
		return
	}

	if _, err := time.Parse(time.RFC3339, r.OriginDateTime); err != nil {
		errs.Add("originDateTime", "originDateTime must be a valid RFC 3339 timestamp")
	}
}

func (r *SearchRoutesRequest) validateFilters(errs *ValidationErrors) {
	if r.Filters == nil {
		return
	}

	if r.Filters.MaxPrice != nil && *r.Filters.MaxPrice < 0 {
		errs.Add("filters.maxPrice", "maxPrice must not be negative")
	}

	if r.Filters.DestinationDateTime != nil {
		if _, err := time.Parse(time.RFC3339, *r.Filters.DestinationDateTime); err != nil {
			errs.Add("filters.destinationDateTime", "destinationDateTime must be a valid RFC 3339 timestamp")
		}
	}

	if r.Filters.MinTimeLimit != nil {
		if _, err := time.Parse(time.RFC3339, *r.Filters.MinTimeLimit); err != nil {
			errs.Add("filters.minTimeLimit", "minTimeLimit must be a valid RFC 3339 timestamp")
		}
	}
}

// ToDomainRequest converts a validated request to a domain SearchRequest.
// Call only after Validate has succeeded; timestamps are assumed parseable.
func ToDomainRequest(r *SearchRoutesRequest) domain.SearchRequest {
	req := domain.SearchRequest{
		Origin:      r.Origin,
		Destination: r.Destination,
	}
	req.OriginDateTime, _ = time.Parse(time.RFC3339, r.OriginDateTime)

	if r.Filters == nil {
		return req
	}

	filters := &domain.SearchFilters{
		OnlyCached: r.Filters.OnlyCached,
		MaxPrice:   r.Filters.MaxPrice,
	}
	if r.Filters.DestinationDateTime != nil {
		t, _ := time.Parse(time.RFC3339, *r.Filters.DestinationDateTime)
		filters.DestinationDateTime = &t
	}
	if r.Filters.MinTimeLimit != nil {
		t, _ := time.Parse(time.RFC3339, *r.Filters.MinTimeLimit)
		filters.MinTimeLimit = &t
	}
	req.Filters = filters

	return req
}
