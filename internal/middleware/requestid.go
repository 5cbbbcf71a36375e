package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// requestIDKey is the echo.Context key holding the request ID.
const requestIDKey = "request_id"

// HeaderRequestID is the response header carrying the request ID so a
// failing call can be correlated with the server log.
const HeaderRequestID = "X-Request-Id"

// WithRequestID returns middleware that assigns each request a UUID and
// echoes it back in the response headers. An incoming X-Request-Id from a
// client is trusted as-is; this is a single-user local service.
func WithRequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(HeaderRequestID)
			if id == "" {
				id = uuid.NewString()
			}
			c.Set(requestIDKey, id)
			c.Response().Header().Set(HeaderRequestID, id)
			return next(c)
		}
	}
}

// RequestID returns the request ID assigned by WithRequestID, or "" when
// the middleware is not installed.
func RequestID(c echo.Context) string {
	if id, ok := c.Get(requestIDKey).(string); ok {
		return id
	}
	return ""
}
