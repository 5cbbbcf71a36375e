package images

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"notewell/internal/apperror"
)

// Handler handles HTTP requests for image operations.
type Handler struct {
	service ImageService
}

// NewHandler creates a new image handler.
func NewHandler(service ImageService) *Handler {
	return &Handler{service: service}
}

// Upload accepts either a JSON body with base64 data or a multipart
// form with a "file" part (POST /api/images).
func (h *Handler) Upload(c echo.Context) error {
	contentType := c.Request().Header.Get("Content-Type")

	var (
		resp *UploadResponse
		err  error
	)
	switch {
	case strings.HasPrefix(contentType, "application/json"):
		var req UploadRequest
		if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
			return apperror.NewBadRequest("invalid JSON body")
		}
		resp, err = h.service.UploadJSON(c.Request().Context(), req)
	case strings.HasPrefix(contentType, "multipart/form-data"):
		header, ferr := c.FormFile("file")
		if ferr != nil {
			return apperror.NewBadRequest("file part is required")
		}
		resp, err = h.service.UploadMultipart(c.Request().Context(), header)
	default:
		return apperror.NewUnsupportedMedia("expected application/json or multipart/form-data")
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, resp)
}

// Get streams an image body (GET /api/images?id=N). With &thumb=1 a
// downscaled copy is served instead. Bodies are immutable once stored,
// so caches may hold them indefinitely.
func (h *Handler) Get(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var img *Image
	if c.QueryParam("thumb") == "1" {
		img, err = h.service.Thumbnail(c.Request().Context(), id)
	} else {
		img, err = h.service.GetByID(c.Request().Context(), id)
	}
	if err != nil {
		return err
	}

	name := fmt.Sprintf("image-%d", img.ID)
	if img.Filename != nil && *img.Filename != "" {
		name = *img.Filename
	}
	c.Response().Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", name))
	c.Response().Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	return c.Blob(http.StatusOK, img.Mime, img.Data)
}

// Delete removes an image (DELETE /api/images?id=N). Succeeds even when
// the id no longer exists.
func (h *Handler) Delete(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

func parseIDParam(c echo.Context) (int64, error) {
	raw := c.QueryParam("id")
	if raw == "" {
		return 0, apperror.NewBadRequest("id query parameter is required")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperror.NewBadRequest("invalid image id")
	}
	return id, nil
}
