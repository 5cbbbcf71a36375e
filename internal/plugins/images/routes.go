package images

import "github.com/labstack/echo/v4"

// RegisterRoutes mounts the image endpoints on the API group. Ids travel
// as query parameters so embedded URLs survive copy and paste intact.
func RegisterRoutes(g *echo.Group, h *Handler) {
	g.POST("/images", h.Upload)
	g.GET("/images", h.Get)
	g.DELETE("/images", h.Delete)
}
