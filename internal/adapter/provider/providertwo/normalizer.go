package providertwo

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/route-search/route-search-and-aggregation-system/internal/domain"
)

// ProviderName is the unique identifier for Provider Two.
const ProviderName = "provider_two"

// normalize converts Provider Two offers to domain Route entities.
// Offers that cannot be parsed are skipped.
func normalize(offers []providerRoute) []domain.Route {
	result := make([]domain.Route, 0, len(offers))

	for _, offer := range offers {
		route, err := normalizeRoute(offer)
		if err != nil {
			continue
		}
		result = append(result, route)
	}

	return result
}

// normalizeRoute converts a single Provider Two offer to a domain Route.
func normalizeRoute(offer providerRoute) (domain.Route, error) {
	departure, err := parseDateTime(offer.Departure.Date)
	if err != nil {
		return domain.Route{}, fmt.Errorf("parse departure date: %w", err)
	}

	arrival, err := parseDateTime(offer.Arrival.Date)
	if err != nil {
		return domain.Route{}, fmt.Errorf("parse arrival date: %w", err)
	}

	timeLimit, err := parseDateTime(offer.TimeLimit)
	if err != nil {
		return domain.Route{}, fmt.Errorf("parse timeLimit: %w", err)
	}

	return domain.Route{
		ID:                  uuid.New().String(),
		Origin:              offer.Departure.Point,
		Destination:         offer.Arrival.Point,
		OriginDateTime:      departure,
		DestinationDateTime: arrival,
		Price:               offer.Price,
		TimeLimit:           timeLimit,
	}, nil
}

// parseDateTime parses an ISO 8601 datetime string to time.Time.
func parseDateTime(dateTime string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, dateTime)
	if err == nil {
		return t, nil
	}

	t, err = time.Parse("2006-01-02T15:04:05", dateTime)
	if err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("unable to parse datetime %q", dateTime)
}
