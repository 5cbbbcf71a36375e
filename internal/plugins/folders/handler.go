package folders

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"notewell/internal/apperror"
)

// Handler handles HTTP requests for folder operations. Handlers are thin:
// bind request, call service, render response.
type Handler struct {
	service FolderService
}

// NewHandler creates a new folder handler backed by the given service.
func NewHandler(service FolderService) *Handler {
	return &Handler{service: service}
}

// List returns all folders sorted by name (GET /api/folders).
func (h *Handler) List(c echo.Context) error {
	folders, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	if folders == nil {
		folders = []Folder{}
	}
	return c.JSON(http.StatusOK, folders)
}

// Get returns a single folder (GET /api/folders/:id).
func (h *Handler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	folder, err := h.service.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, folder)
}

// Create adds a new folder (POST /api/folders).
func (h *Handler) Create(c echo.Context) error {
	var req FolderRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return apperror.NewBadRequest("invalid JSON body")
	}

	folder, err := h.service.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, folder)
}

// Update modifies an existing folder (PUT /api/folders/:id).
func (h *Handler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req FolderRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return apperror.NewBadRequest("invalid JSON body")
	}

	folder, err := h.service.Update(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, folder)
}

// Delete removes a folder and its subtree (DELETE /api/folders/:id).
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

// parseID extracts the numeric :id path parameter.
func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperror.NewBadRequest("invalid folder id")
	}
	return id, nil
}
