package images

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"notewell/internal/apperror"
)

// ImageRepository handles database operations for stored images.
type ImageRepository interface {
	Create(ctx context.Context, filename *string, mime string, data []byte) (int64, error)
	FindByID(ctx context.Context, id int64) (*Image, error)
	Delete(ctx context.Context, id int64) error
}

type imageRepository struct {
	db *sql.DB
}

// NewImageRepository creates a new image repository.
func NewImageRepository(db *sql.DB) ImageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) Create(ctx context.Context, filename *string, mime string, data []byte) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO images (filename, mime, data) VALUES (?, ?, ?)",
		filename, mime, data,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting image: %w", err)
	}
	return result.LastInsertId()
}

func (r *imageRepository) FindByID(ctx context.Context, id int64) (*Image, error) {
	var img Image
	err := r.db.QueryRowContext(ctx,
		"SELECT id, filename, mime, data, created_at FROM images WHERE id = ?", id,
	).Scan(&img.ID, &img.Filename, &img.Mime, &img.Data, &img.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("image not found")
	}
	if err != nil {
		return nil, fmt.Errorf("finding image %d: %w", id, err)
	}
	return &img, nil
}

// Delete removes an image row. Deleting an absent id is not an error;
// the editor fires deletes on a grace period and may race a retry.
func (r *imageRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM images WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting image %d: %w", id, err)
	}
	return nil
}
