package providerone

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/route-search/route-search-and-aggregation-system/internal/domain"
)

// ProviderName is the unique identifier for Provider One.
const ProviderName = "provider_one"

// normalize converts Provider One offers to domain Route entities.
// Offers that cannot be parsed are skipped; a partial result beats none.
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

// normalizeRoute converts a single Provider One offer to a domain Route.
// The identity key is assigned here; providers do not carry stable IDs.
func normalizeRoute(offer providerRoute) (domain.Route, error) {
	dateFrom, err := parseDateTime(offer.DateFrom)
	if err != nil {
		return domain.Route{}, fmt.Errorf("parse dateFrom: %w", err)
	}

	dateTo, err := parseDateTime(offer.DateTo)
	if err != nil {
		return domain.Route{}, fmt.Errorf("parse dateTo: %w", err)
	}

	timeLimit, err := parseDateTime(offer.TimeLimit)
	if err != nil {
		return domain.Route{}, fmt.Errorf("parse timeLimit: %w", err)
	}

	return domain.Route{
		ID:                  uuid.New().String(),
		Origin:              offer.From,
		Destination:         offer.To,
		OriginDateTime:      dateFrom,
		DestinationDateTime: dateTo,
		Price:               offer.Price,
		TimeLimit:           timeLimit,
	}, nil
}

// parseDateTime parses an ISO 8601 datetime string to time.Time.
// Supports "2006-01-02T15:04:05Z07:00" and "2006-01-02T15:04:05".
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
