package app

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"notewell/internal/plugins/folders"
	"notewell/internal/plugins/images"
	"notewell/internal/plugins/notes"
	"notewell/internal/plugins/tags"
)

// RegisterRoutes sets up all application routes. Each plugin is built
// bottom-up (repository, service, handler) and registers itself on the
// shared /api group.
//
// This is the single place where all routes are aggregated. When a new
// plugin is added, its routes are registered here.
func (a *App) RegisterRoutes() {
	e := a.Echo

	// Health check endpoint. Pings the database so a wedged store shows
	// up in monitoring instead of surfacing as request failures.
	e.GET("/healthz", func(c echo.Context) error {
		if err := a.DB.PingContext(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"error":  err.Error(),
			})
		}
		return c.JSON(http.StatusOK, map[string]string{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})

	api := e.Group("/api")

	// tags plugin -- also feeds the notes plugin's tag synchronization.
	tagRepo := tags.NewTagRepository(a.DB)
	tagService := tags.NewTagService(tagRepo)
	tags.RegisterRoutes(api, tags.NewHandler(tagService))

	// folders plugin
	folderRepo := folders.NewFolderRepository(a.DB)
	folders.RegisterRoutes(api, folders.NewHandler(folders.NewFolderService(folderRepo)))

	// notes plugin
	noteRepo := notes.NewNoteRepository(a.DB)
	noteService := notes.NewNoteService(noteRepo, tagService, a.Redis)
	notes.RegisterRoutes(api, notes.NewHandler(noteService))

	// images plugin
	imageRepo := images.NewImageRepository(a.DB)
	imageService := images.NewImageService(imageRepo, a.Config.Upload.MaxSize)
	images.RegisterRoutes(api, images.NewHandler(imageService))
}
