package middleware

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
)

// Timeout returns middleware that bounds each request with a deadline.
// The deadline is carried on the request context, so downstream provider
// and cache calls observe it; the handler maps the resulting
// context.DeadlineExceeded to a 504.
func Timeout(d time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if d <= 0 {
				return next(c)
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), d)
			defer cancel()

			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
