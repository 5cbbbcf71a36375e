package notes

import "github.com/labstack/echo/v4"

// RegisterRoutes mounts the note endpoints on the API group.
func RegisterRoutes(g *echo.Group, h *Handler) {
	g.GET("/notes", h.List)
	g.POST("/notes", h.Create)
	g.GET("/notes/:id", h.Get)
	g.PUT("/notes/:id", h.Update)
	g.DELETE("/notes/:id", h.Delete)
	g.POST("/notes/:id/archive", h.Archive)
	g.POST("/notes/:id/unarchive", h.Unarchive)
	g.GET("/notes/:id/render", h.Render)

	// Mounted here, not in the tags plugin, because the payload is notes.
	g.GET("/tags/:name/notes", h.ListByTag)
}
