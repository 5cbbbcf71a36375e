package folders

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all folder routes on the given API group.
func RegisterRoutes(g *echo.Group, h *Handler) {
	g.GET("/folders", h.List)
	g.POST("/folders", h.Create)
	g.GET("/folders/:id", h.Get)
	g.PUT("/folders/:id", h.Update)
	g.DELETE("/folders/:id", h.Delete)
}
