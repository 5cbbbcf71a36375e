package tags

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"notewell/internal/apperror"
)

// Handler handles HTTP requests for tag operations. Handlers are thin:
// bind request, call service, render response. No business logic lives here.
type Handler struct {
	service TagService
}

// NewHandler creates a new tag handler backed by the given service.
func NewHandler(service TagService) *Handler {
	return &Handler{service: service}
}

// List returns the merged tag listing with note counts (GET /api/tags).
func (h *Handler) List(c echo.Context) error {
	listed, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	if listed == nil {
		listed = []ListedTag{}
	}
	return c.JSON(http.StatusOK, listed)
}

// Create adds a tag (POST /api/tags). Duplicate names return the existing
// row with 200 instead of creating a second one.
func (h *Handler) Create(c echo.Context) error {
	var req CreateTagRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return apperror.NewBadRequest("invalid JSON body")
	}

	tag, created, err := h.service.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.JSON(status, tag)
}

// Get returns a single tag (GET /api/tags/:id).
func (h *Handler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	tag, err := h.service.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tag)
}

// Delete removes a tag by ID (DELETE /api/tags/:id).
func (h *Handler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// ListForNote returns the tag rows joined to a note (GET /api/notes/:id/tags).
func (h *Handler) ListForNote(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	noteTags, err := h.service.ListForNote(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if noteTags == nil {
		noteTags = []Tag{}
	}
	return c.JSON(http.StatusOK, noteTags)
}

// parseID extracts the numeric :id path parameter.
func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperror.NewBadRequest("invalid tag id")
	}
	return id, nil
}
