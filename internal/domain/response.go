package domain

// SearchResponse represents the aggregated response from a route search.
// Route order is the order in which routes were collected, never re-sorted.
type SearchResponse struct {
	// Routes contains the final merged, deduplicated, and filtered routes
	Routes []Route `json:"routes"`

	// MinPrice is the lowest price in the result set (0 when empty)
	MinPrice float64 `json:"minPrice"`

	// MaxPrice is the highest price in the result set (0 when empty)
	MaxPrice float64 `json:"maxPrice"`

	// MinMinutesRoute is the shortest trip duration in whole minutes (0 when empty)
	MinMinutesRoute int `json:"minMinutesRoute"`

	// MaxMinutesRoute is the longest trip duration in whole minutes (0 when empty)
	MaxMinutesRoute int `json:"maxMinutesRoute"`
}

// NewSearchResponse builds a SearchResponse with summary aggregates computed
// over the given routes. An empty or nil set yields a valid response with all
// four aggregates at zero; emptiness is never an error.
func NewSearchResponse(routes []Route) SearchResponse {
	if len(routes) == 0 {
		return SearchResponse{Routes: []Route{}}
	}

	resp := SearchResponse{
		Routes:          routes,
		MinPrice:        routes[0].Price,
		MaxPrice:        routes[0].Price,
		MinMinutesRoute: routes[0].DurationMinutes(),
		MaxMinutesRoute: routes[0].DurationMinutes(),
	}

	for _, r := range routes[1:] {
		if r.Price < resp.MinPrice {
			resp.MinPrice = r.Price
		}
		if r.Price > resp.MaxPrice {
			resp.MaxPrice = r.Price
		}
		minutes := r.DurationMinutes()
		if minutes < resp.MinMinutesRoute {
			resp.MinMinutesRoute = minutes
		}
		if minutes > resp.MaxMinutesRoute {
			resp.MaxMinutesRoute = minutes
		}
	}

	return resp
}
