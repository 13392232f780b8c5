package http

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/route-search/route-search-and-aggregation-system/internal/adapter/http/response"
	"github.com/route-search/route-search-and-aggregation-system/internal/domain"
	"github.com/route-search/route-search-and-aggregation-system/internal/usecase"
)

// RouteHandler handles HTTP requests for route search endpoints.
type RouteHandler struct {
	useCase usecase.RouteSearchUseCase
}

// NewRouteHandler creates a new RouteHandler with the given use case.
func NewRouteHandler(uc usecase.RouteSearchUseCase) *RouteHandler {
	return &RouteHandler{
		useCase: uc,
	}
}

// SearchRoutes handles POST /api/v1/search
//
// @Summary Search for routes
// @Description Search for available routes across multiple providers, with an optional cache-only mode
// @Tags routes
// @Accept json
// @Produce json
// @Param request body SearchRoutesRequest true "Search criteria"
// @Success 200 {object} SearchResponseDTO
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 503 {object} response.ErrorDetail "Service unavailable"
// @Failure 504 {object} response.ErrorDetail "Gateway timeout"
// @Router /api/v1/search [post]
func (h *RouteHandler) SearchRoutes(c echo.Context) error {
	var req SearchRoutesRequest

	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}

	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	result, err := h.useCase.Search(c.Request().Context(), ToDomainRequest(&req))
	if err != nil {
		return h.handleError(c, err)
	}

	return response.SearchResults(c, ToSearchResponseDTO(result))
}

// Ping handles GET /api/v1/ping
//
// @Summary Probe provider availability
// @Description Reports whether the service can currently serve live searches, folded from per-provider health under the configured strategy
// @Tags routes
// @Produce json
// @Success 200 {object} PingResponseDTO
// @Failure 503 {object} PingResponseDTO "No provider can serve searches"
// @Router /api/v1/ping [get]
func (h *RouteHandler) Ping(c echo.Context) error {
	available, err := h.useCase.IsAvailable(c.Request().Context())
	if err != nil {
		return h.handleError(c, err)
	}

	return response.Ping(c, available)
}

// handleValidationError handles validation errors and returns a 400 response.
func (h *RouteHandler) handleValidationError(c echo.Context, err error) error {
	var validationErrs *ValidationErrors
	if errors.As(err, &validationErrs) {
		return response.ValidationError(c, validationErrs.ToMap())
	}

	return response.ValidationErrorWithMessage(c, err.Error())
}

// handleError maps domain errors to appropriate HTTP responses.
func (h *RouteHandler) handleError(c echo.Context, err error) error {
	if errors.Is(err, domain.ErrAllProvidersFailed) {
		return response.ServiceUnavailable(c)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return response.GatewayTimeout(c)
	}

	if errors.Is(err, context.Canceled) {
		return response.RequestCancelled(c)
	}

	if errors.Is(err, domain.ErrInvalidRequest) {
		return response.ValidationErrorWithMessage(c, err.Error())
	}

	return response.InternalServerError(c)
}

// Health handles GET /health
// Simple health check endpoint.
func (h *RouteHandler) Health(c echo.Context) error {
	return response.Health(c)
}
