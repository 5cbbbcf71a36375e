package images

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"mime/multipart"
	"strings"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"notewell/internal/apperror"
)

// thumbMaxDim is the bounding box for generated thumbnails.
const thumbMaxDim = 300

const defaultMime = "application/octet-stream"

// ImageService contains business logic for image upload and retrieval.
type ImageService interface {
	UploadJSON(ctx context.Context, req UploadRequest) (*UploadResponse, error)
	UploadMultipart(ctx context.Context, header *multipart.FileHeader) (*UploadResponse, error)
	GetByID(ctx context.Context, id int64) (*Image, error)
	Thumbnail(ctx context.Context, id int64) (*Image, error)
	Delete(ctx context.Context, id int64) error
}

type imageService struct {
	repo    ImageRepository
	maxSize int64
}

// NewImageService creates a new image service. maxSize caps the decoded
// body in bytes.
func NewImageService(repo ImageRepository, maxSize int64) ImageService {
	return &imageService{repo: repo, maxSize: maxSize}
}

// UploadJSON stores an image sent as base64 in a JSON body.
func (s *imageService) UploadJSON(ctx context.Context, req UploadRequest) (*UploadResponse, error) {
	if strings.TrimSpace(req.Mime) == "" {
		return nil, apperror.NewBadRequest("mime is required")
	}
	if req.Data == "" {
		return nil, apperror.NewBadRequest("data is required")
	}

	data, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		return nil, apperror.NewBadRequest("data is not valid base64")
	}

	return s.store(ctx, filenamePtr(req.Filename), req.Mime, data)
}

// UploadMultipart stores an image sent as a multipart form file. The
// part's declared content type is trusted; absent one, a generic binary
// type is recorded.
func (s *imageService) UploadMultipart(ctx context.Context, header *multipart.FileHeader) (*UploadResponse, error) {
	if header == nil {
		return nil, apperror.NewBadRequest("file is required")
	}

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("opening upload: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, s.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}

	mime := header.Header.Get("Content-Type")
	if mime == "" {
		mime = defaultMime
	}

	return s.store(ctx, filenamePtr(header.Filename), mime, data)
}

func (s *imageService) store(ctx context.Context, filename *string, mime string, data []byte) (*UploadResponse, error) {
	if len(data) == 0 {
		return nil, apperror.NewBadRequest("image body is empty")
	}
	if int64(len(data)) > s.maxSize {
		return nil, apperror.NewBadRequest(fmt.Sprintf("image exceeds %d byte limit", s.maxSize))
	}

	id, err := s.repo.Create(ctx, filename, mime, data)
	if err != nil {
		return nil, err
	}

	resp := &UploadResponse{ID: id, URL: fmt.Sprintf("/api/images?id=%d", id)}

	// Dimensions are best effort. Non-raster uploads still store fine.
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		resp.Width = cfg.Width
		resp.Height = cfg.Height
	}

	slog.Info("image uploaded", "id", id, "mime", mime, "bytes", len(data))
	return resp, nil
}

func (s *imageService) GetByID(ctx context.Context, id int64) (*Image, error) {
	return s.repo.FindByID(ctx, id)
}

// Thumbnail returns a downscaled copy fitting within thumbMaxDim on the
// longer edge. Images that cannot be decoded, or are already small
// enough, come back unchanged.
func (s *imageService) Thumbnail(ctx context.Context, id int64) (*Image, error) {
	img, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	src, format, err := image.Decode(bytes.NewReader(img.Data))
	if err != nil {
		return img, nil
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= thumbMaxDim && h <= thumbMaxDim {
		return img, nil
	}

	if w >= h {
		h = h * thumbMaxDim / w
		w = thumbMaxDim
	} else {
		w = w * thumbMaxDim / h
		h = thumbMaxDim
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var buf bytes.Buffer
	switch format {
	case "jpeg":
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 85})
		img.Mime = "image/jpeg"
	default:
		// PNG keeps transparency for everything else, webp included.
		err = png.Encode(&buf, dst)
		img.Mime = "image/png"
	}
	if err != nil {
		return nil, fmt.Errorf("encoding thumbnail for image %d: %w", id, err)
	}

	img.Data = buf.Bytes()
	return img, nil
}

func (s *imageService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func filenamePtr(name string) *string {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	return &name
}
