package tags

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all tag routes on the given API group.
func RegisterRoutes(g *echo.Group, h *Handler) {
	g.GET("/tags", h.List)
	g.POST("/tags", h.Create)
	g.GET("/tags/:id", h.Get)
	g.DELETE("/tags/:id", h.Delete)

	// Mounted here, not in the notes plugin, because the payload is tags.
	g.GET("/notes/:id/tags", h.ListForNote)
}
