package notes

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"notewell/internal/apperror"
)

// Handler handles HTTP requests for note operations. Handlers are thin:
// bind request, call service, render response.
type Handler struct {
	service NoteService
}

// NewHandler creates a new note handler backed by the given service.
func NewHandler(service NoteService) *Handler {
	return &Handler{service: service}
}

// List returns non-archived notes, newest first (GET /api/notes).
// Supports ?folder_id=F, ?no_folder=true, ?tag=<name>, ?q=<substring>,
// and ?archived=true; the first filter present (in that order) wins.
func (h *Handler) List(c echo.Context) error {
	var filter ListFilter

	if raw := c.QueryParam("folder_id"); raw != "" {
		folderID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return apperror.NewBadRequest("invalid folder_id filter")
		}
		filter.FolderID = &folderID
	}
	filter.Unfiled = c.QueryParam("no_folder") == "true"
	filter.Tag = c.QueryParam("tag")
	filter.Query = c.QueryParam("q")
	filter.Archived = c.QueryParam("archived") == "true"

	notes, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	if notes == nil {
		notes = []Note{}
	}
	return c.JSON(http.StatusOK, notes)
}

// ListByTag returns notes carrying a tag (GET /api/tags/:name/notes).
func (h *Handler) ListByTag(c echo.Context) error {
	name := c.Param("name")
	notes, err := h.service.List(c.Request().Context(), ListFilter{Tag: name})
	if err != nil {
		return err
	}
	if notes == nil {
		notes = []Note{}
	}
	return c.JSON(http.StatusOK, notes)
}

// Get returns a single note (GET /api/notes/:id).
func (h *Handler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	note, err := h.service.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, note)
}

// Create adds a new note (POST /api/notes).
func (h *Handler) Create(c echo.Context) error {
	var req NoteRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return apperror.NewBadRequest("invalid JSON body")
	}

	note, err := h.service.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, note)
}

// Update modifies an existing note (PUT /api/notes/:id).
func (h *Handler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req NoteRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return apperror.NewBadRequest("invalid JSON body")
	}

	note, err := h.service.Update(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, note)
}

// Delete removes a note (DELETE /api/notes/:id).
func (h *Handler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "note deleted"})
}

// Archive hides a note from listings (POST /api/notes/:id/archive).
func (h *Handler) Archive(c echo.Context) error {
	return h.setArchived(c, true)
}

// Unarchive restores an archived note (POST /api/notes/:id/unarchive).
func (h *Handler) Unarchive(c echo.Context) error {
	return h.setArchived(c, false)
}

func (h *Handler) setArchived(c echo.Context, archived bool) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.service.SetArchived(c.Request().Context(), id, archived); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"is_archived": archived})
}

// Render returns the note body as display-ready HTML (GET /api/notes/:id/render).
func (h *Handler) Render(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	html, err := h.service.Render(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.HTML(http.StatusOK, html)
}

// parseID extracts the numeric :id path parameter.
func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperror.NewBadRequest("invalid note id")
	}
	return id, nil
}
