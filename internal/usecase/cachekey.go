// Package usecase contains the business logic for route search operations:
// the cache-only versus live-fetch decision, the cache-key/TTL scheme,
// result aggregation, and the provider availability policy.
package usecase

import (
	"fmt"

	"github.com/route-search/route-search-and-aggregation-system/internal/domain"
)

// keyFiller is the sentinel token standing in for an absent filter field in
// the cache-key suffix, so distinct filter combinations always produce
// distinct keys of the same shape.
const keyFiller = "+"

// SearchKey derives the full cache key for a request: the itinerary prefix
// plus a suffix encoding the exact filter combination. The entry stored under
// this key holds the ordered route identities the request produced.
func SearchKey(req domain.SearchRequest) string {
	return SearchKeyPrefix(req) + searchKeySuffix(req.Filters)
}

// SearchKeyPrefix derives the filter-independent key component shared by all
// filter variants of one itinerary. Cache-only lookups prefix-scan on it to
// collect every previously cached variant. The trailing separator keeps a
// timestamp that is a decimal prefix of another's from matching the other
// itinerary's variants.
func SearchKeyPrefix(req domain.SearchRequest) string {
	return fmt.Sprintf("%s-%s-%d-", req.Origin, req.Destination, req.OriginDateTime.UnixNano())
}

// searchKeySuffix encodes the optional filter values, substituting keyFiller
// for absent fields. OnlyCached is excluded: it routes the request, it does
// not shape the result set.
func searchKeySuffix(filters *domain.SearchFilters) string {
	destination := keyFiller
	maxPrice := keyFiller
	minTimeLimit := keyFiller

	if filters != nil {
		if filters.DestinationDateTime != nil {
			destination = fmt.Sprintf("%d", filters.DestinationDateTime.UnixNano())
		}
		if filters.MaxPrice != nil {
			maxPrice = fmt.Sprintf("%g", *filters.MaxPrice)
		}
		if filters.MinTimeLimit != nil {
			minTimeLimit = fmt.Sprintf("%d", filters.MinTimeLimit.UnixNano())
		}
	}

	return destination + "-" + maxPrice + "-" + minTimeLimit
}

// RouteKey derives the cache key a single route is stored under.
// Routes are keyed by their aggregator-assigned identity.
func RouteKey(route domain.Route) string {
	return route.ID
}
