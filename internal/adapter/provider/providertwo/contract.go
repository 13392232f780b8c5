package providertwo

// searchRequest is the wire format Provider Two accepts on POST api/v1/search.
type searchRequest struct {
	// Departure is the departure point
	Departure string `json:"departure"`

	// Arrival is the arrival point
	Arrival string `json:"arrival"`

	// DepartureDate is the departure time in RFC 3339 format
	DepartureDate string `json:"departureDate"`

	// MinTimeLimit is an optional floor on the offer expiry
	MinTimeLimit string `json:"minTimeLimit,omitempty"`
}

// searchResponse is the wire format Provider Two answers with.
type searchResponse struct {
	Routes []providerRoute `json:"routes"`
}

// providerRoute is a single offer in Provider Two's response.
type providerRoute struct {
	Departure routePoint `json:"departure"`
	Arrival   routePoint `json:"arrival"`
	Price     float64    `json:"price"`
	TimeLimit string     `json:"timeLimit"`
}

// routePoint is one end of an offer.
type routePoint struct {
	Point string `json:"point"`
	Date  string `json:"date"`
}
