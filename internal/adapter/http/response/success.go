// Package response provides standardized HTTP response builders for the route search API.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status"`
}

// PingResponse represents the availability probe response.
type PingResponse struct {
	Available bool `json:"available"`
}

// Health writes a health check response.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, &HealthResponse{
		Status: "ok",
	})
}

// Ping writes the availability probe response.
// An unavailable system answers 503 so load balancers can act on the status
// code alone.
func Ping(c echo.Context, available bool) error {
	status := http.StatusOK
	if !available {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, &PingResponse{
		Available: available,
	})
}

// SearchResults writes a 200 OK response with search results.
func SearchResults(c echo.Context, results interface{}) error {
	return c.JSON(http.StatusOK, results)
}
