package folders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"notewell/internal/apperror"
)

// FolderRepository defines the data access contract for folder operations.
type FolderRepository interface {
	// Create inserts a new folder. The folder's ID is set after insert.
	Create(ctx context.Context, folder *Folder) error

	// FindByID retrieves a single folder by its primary key.
	FindByID(ctx context.Context, id int64) (*Folder, error)

	// ListAll returns every folder ordered alphabetically by name.
	ListAll(ctx context.Context) ([]Folder, error)

	// ListByParent returns the direct children of a folder, ordered by name.
	ListByParent(ctx context.Context, parentID int64) ([]Folder, error)

	// Update modifies a folder's name, parent, and icon.
	Update(ctx context.Context, folder *Folder) error

	// Delete removes a folder. The database cascades the delete to child
	// folders and sets folder_id to NULL on member notes.
	Delete(ctx context.Context, id int64) error
}

// folderRepository implements FolderRepository with hand-written SQLite queries.
type folderRepository struct {
	db *sql.DB
}

// NewFolderRepository creates a new folder repository backed by the given database.
func NewFolderRepository(db *sql.DB) FolderRepository {
	return &folderRepository{db: db}
}

// folderColumns is the SELECT column list for folder queries.
const folderColumns = `id, name, parent_id, icon, created_at, updated_at`

// Create inserts a new folder and sets the auto-generated ID on the struct.
func (r *folderRepository) Create(ctx context.Context, folder *Folder) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO folders (name, parent_id, icon) VALUES (?, ?, ?)`,
		folder.Name, folder.ParentID, folder.Icon)
	if err != nil {
		return fmt.Errorf("inserting folder: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}
	folder.ID = id
	return nil
}

// FindByID retrieves a folder by its primary key.
func (r *folderRepository) FindByID(ctx context.Context, id int64) (*Folder, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+folderColumns+` FROM folders WHERE id = ?`, id)

	f := &Folder{}
	err := row.Scan(&f.ID, &f.Name, &f.ParentID, &f.Icon, &f.CreatedAt, &f.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("folder not found")
	}
	if err != nil {
		return nil, fmt.Errorf("scanning folder: %w", err)
	}
	return f, nil
}

// ListAll returns all folders ordered by name.
func (r *folderRepository) ListAll(ctx context.Context) ([]Folder, error) {
	return r.scanFolders(ctx,
		`SELECT `+folderColumns+` FROM folders ORDER BY name`)
}

// ListByParent returns a folder's direct children ordered by name.
func (r *folderRepository) ListByParent(ctx context.Context, parentID int64) ([]Folder, error) {
	return r.scanFolders(ctx,
		`SELECT `+folderColumns+` FROM folders WHERE parent_id = ? ORDER BY name`, parentID)
}

// Update saves changes to an existing folder.
func (r *folderRepository) Update(ctx context.Context, folder *Folder) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE folders SET name = ?, parent_id = ?, icon = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		folder.Name, folder.ParentID, folder.Icon, folder.ID)
	if err != nil {
		return fmt.Errorf("updating folder: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return apperror.NewNotFound("folder not found")
	}
	return nil
}

// Delete removes a folder. Child folders and note filings are handled by
// the schema's foreign key actions.
func (r *folderRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM folders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting folder: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return apperror.NewNotFound("folder not found")
	}
	return nil
}

// scanFolders runs a query and scans multiple folder rows.
func (r *folderRepository) scanFolders(ctx context.Context, query string, args ...any) ([]Folder, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying folders: %w", err)
	}
	defer rows.Close()

	var folders []Folder
	for rows.Next() {
		var f Folder
		if err := rows.Scan(&f.ID, &f.Name, &f.ParentID, &f.Icon, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning folder row: %w", err)
		}
		folders = append(folders, f)
	}
	return folders, rows.Err()
}
