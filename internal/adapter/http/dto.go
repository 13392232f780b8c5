package http

import (
	"time"

	"github.com/route-search/route-search-and-aggregation-system/internal/domain"
)

// SearchResponseDTO is the data transfer object for search responses.
type SearchResponseDTO struct {
	Routes          []RouteDTO `json:"routes"`
	MinPrice        float64    `json:"minPrice"`
	MaxPrice        float64    `json:"maxPrice"`
	MinMinutesRoute int        `json:"minMinutesRoute"`
	MaxMinutesRoute int        `json:"maxMinutesRoute"`
}

// RouteDTO is the data transfer object for a single route offer.
type RouteDTO struct {
	ID                  string  `json:"id"`
	Origin              string  `json:"origin"`
	Destination         string  `json:"destination"`
	OriginDateTime      string  `json:"originDateTime"`
	DestinationDateTime string  `json:"destinationDateTime"`
	Price               float64 `json:"price"`
	TimeLimit           string  `json:"timeLimit"`
}

// PingResponseDTO is the data transfer object for the availability probe.
type PingResponseDTO struct {
	Available bool `json:"available"`
}

// ToSearchResponseDTO converts a domain SearchResponse to a SearchResponseDTO.
func ToSearchResponseDTO(resp *domain.SearchResponse) *SearchResponseDTO {
	if resp == nil {
		return nil
	}

	dto := &SearchResponseDTO{
		Routes:          make([]RouteDTO, len(resp.Routes)),
		MinPrice:        resp.MinPrice,
		MaxPrice:        resp.MaxPrice,
		MinMinutesRoute: resp.MinMinutesRoute,
		MaxMinutesRoute: resp.MaxMinutesRoute,
	}

	for i, route := range resp.Routes {
		dto.Routes[i] = ToRouteDTO(&route)
	}

	return dto
}

// ToRouteDTO converts a domain Route to a RouteDTO.
func ToRouteDTO(route *domain.Route) RouteDTO {
	return RouteDTO{
		ID:                  route.ID,
		Origin:              route.Origin,
		Destination:         route.Destination,
		OriginDateTime:      route.OriginDateTime.Format(time.RFC3339),
		DestinationDateTime: route.DestinationDateTime.Format(time.RFC3339),
		Price:               route.Price,
		TimeLimit:           route.TimeLimit.Format(time.RFC3339),
	}
}
