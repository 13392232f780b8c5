package providerone

// searchRequest is the wire format Provider One accepts on POST api/v1/search.
type searchRequest struct {
	// From is the departure point
	From string `json:"from"`

	// To is the arrival point
	To string `json:"to"`

	// DateFrom is the departure time in RFC 3339 format
	DateFrom string `json:"dateFrom"`

	// DateTo is an optional exact arrival time constraint
	DateTo string `json:"dateTo,omitempty"`

	// MaxPrice is an optional price ceiling
	MaxPrice *float64 `json:"maxPrice,omitempty"`
}

// searchResponse is the wire format Provider One answers with.
type searchResponse struct {
	Routes []providerRoute `json:"routes"`
}

// providerRoute is a single offer in Provider One's response.
type providerRoute struct {
	From      string  `json:"from"`
	To        string  `json:"to"`
	DateFrom  string  `json:"dateFrom"`
	DateTo    string  `json:"dateTo"`
	Price     float64 `json:"price"`
	TimeLimit string  `json:"timeLimit"`
}
