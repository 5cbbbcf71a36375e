package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// CORSConfig holds configuration for the CORS middleware.
type CORSConfig struct {
	// AllowedOrigins is the list of origins permitted to make cross-origin
	// requests to the JSON API. The bundled UI is same-origin and does not
	// need CORS; this exists for external tooling (scripts, importers)
	// pointed at a running instance.
	AllowedOrigins []string
}

// CORS returns middleware that handles Cross-Origin Resource Sharing
// headers for the listed origins. Unlisted origins get no CORS headers and
// the browser blocks the response client-side.
func CORS(cfg CORSConfig) echo.MiddlewareFunc {
	originSet := make(map[string]bool)
	for _, o := range cfg.AllowedOrigins {
		originSet[o] = true
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			res := c.Response()
			origin := req.Header.Get("Origin")

			// No Origin header means same-origin request -- skip CORS.
			if origin == "" || !originSet[origin] {
				return next(c)
			}

			res.Header().Set("Access-Control-Allow-Origin", origin)
			res.Header().Set("Vary", "Origin")

			// Handle preflight OPTIONS requests.
			if req.Method == http.MethodOptions {
				res.Header().Set("Access-Control-Allow-Methods",
					strings.Join([]string{
						http.MethodGet,
						http.MethodPost,
						http.MethodPut,
						http.MethodDelete,
						http.MethodOptions,
					}, ", "))
				res.Header().Set("Access-Control-Allow-Headers", "Content-Type")
				return c.NoContent(http.StatusNoContent)
			}

			return next(c)
		}
	}
}
