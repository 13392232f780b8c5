package domain

// Matches checks if a route satisfies every present filter field.
// Absent fields impose no constraint: each comparison falls back to the
// route's own value, which is always true.
//
// Behavior:
//   - DestinationDateTime requires exact equality with the route's arrival time
//   - MaxPrice requires route price <= the bound
//   - MinTimeLimit requires the offer expiry >= the bound
//   - OnlyCached is a routing flag, not a per-route constraint, and is ignored here
func (f *SearchFilters) Matches(route Route) bool {
	if f == nil {
		return true
	}

	if f.DestinationDateTime != nil && !route.DestinationDateTime.Equal(*f.DestinationDateTime) {
		return false
	}

	if f.MaxPrice != nil && route.Price > *f.MaxPrice {
		return false
	}

	if f.MinTimeLimit != nil && route.TimeLimit.Before(*f.MinTimeLimit) {
		return false
	}

	return true
}

// FilterRoutes returns the routes that satisfy the filters, preserving order.
// The input slice is not mutated; a nil filters value returns the input as is.
func FilterRoutes(routes []Route, filters *SearchFilters) []Route {
	if filters == nil {
		return routes
	}

	result := make([]Route, 0, len(routes))
	for _, r := range routes {
		if filters.Matches(r) {
			result = append(result, r)
		}
	}
	return result
}
