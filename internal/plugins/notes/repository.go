package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"notewell/internal/apperror"
)

// NoteRepository defines the data access contract for note operations.
// Every listing excludes archived notes and orders by updated_at descending.
type NoteRepository interface {
	// Create inserts a new note. The note's ID is set after insert.
	Create(ctx context.Context, note *Note) error

	// FindByID retrieves a single note by its primary key, archived or not.
	FindByID(ctx context.Context, id int64) (*Note, error)

	// ListActive returns all non-archived notes.
	ListActive(ctx context.Context) ([]Note, error)

	// ListArchived returns all archived notes.
	ListArchived(ctx context.Context) ([]Note, error)

	// ListByFolder returns the non-archived notes filed in a folder.
	ListByFolder(ctx context.Context, folderID int64) ([]Note, error)

	// ListUnfiled returns the non-archived notes with no folder.
	ListUnfiled(ctx context.Context) ([]Note, error)

	// ListByTag returns the non-archived notes carrying the named tag,
	// resolved through the note_tags join.
	ListByTag(ctx context.Context, tagName string) ([]Note, error)

	// Search returns the non-archived notes whose title or content
	// contains the given substring.
	Search(ctx context.Context, query string) ([]Note, error)

	// Update saves a note's title, content, tags string, and folder.
	Update(ctx context.Context, note *Note) error

	// SetArchived flips a note's archive flag.
	SetArchived(ctx context.Context, id int64, archived bool) error

	// Delete removes a note. note_tags rows go with it via cascade.
	Delete(ctx context.Context, id int64) error
}

// noteRepository implements NoteRepository with hand-written SQLite queries.
type noteRepository struct {
	db *sql.DB
}

// NewNoteRepository creates a new note repository backed by the given database.
func NewNoteRepository(db *sql.DB) NoteRepository {
	return &noteRepository{db: db}
}

// noteColumns is the SELECT column list for note queries.
const noteColumns = `id, title, content, folder_id, tags, is_archived, created_at, updated_at`

// Create inserts a new note and sets the auto-generated ID on the struct.
func (r *noteRepository) Create(ctx context.Context, note *Note) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO notes (title, content, tags, folder_id) VALUES (?, ?, ?, ?)`,
		note.Title, note.Content, note.Tags, note.FolderID)
	if err != nil {
		return fmt.Errorf("inserting note: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}
	note.ID = id
	return nil
}

// FindByID retrieves a note by its primary key.
func (r *noteRepository) FindByID(ctx context.Context, id int64) (*Note, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE id = ?`, id)

	n := &Note{}
	err := row.Scan(&n.ID, &n.Title, &n.Content, &n.FolderID, &n.Tags,
		&n.IsArchived, &n.CreatedAt, &n.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("note not found")
	}
	if err != nil {
		return nil, fmt.Errorf("scanning note: %w", err)
	}
	return n, nil
}

// ListActive returns all non-archived notes, most recently updated first.
func (r *noteRepository) ListActive(ctx context.Context) ([]Note, error) {
	return r.scanNotes(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE is_archived = 0
		 ORDER BY updated_at DESC`)
}

// ListArchived returns all archived notes, most recently updated first.
func (r *noteRepository) ListArchived(ctx context.Context) ([]Note, error) {
	return r.scanNotes(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE is_archived = 1
		 ORDER BY updated_at DESC`)
}

// ListByFolder returns the non-archived notes in a folder.
func (r *noteRepository) ListByFolder(ctx context.Context, folderID int64) ([]Note, error) {
	return r.scanNotes(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE folder_id = ? AND is_archived = 0
		 ORDER BY updated_at DESC`, folderID)
}

// ListUnfiled returns the non-archived notes with no folder.
func (r *noteRepository) ListUnfiled(ctx context.Context) ([]Note, error) {
	return r.scanNotes(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE folder_id IS NULL AND is_archived = 0
		 ORDER BY updated_at DESC`)
}

// ListByTag returns the non-archived notes carrying the named tag.
func (r *noteRepository) ListByTag(ctx context.Context, tagName string) ([]Note, error) {
	query := `SELECT DISTINCT n.id, n.title, n.content, n.folder_id, n.tags,
		       n.is_archived, n.created_at, n.updated_at
		FROM notes n
		JOIN note_tags nt ON n.id = nt.note_id
		JOIN tags t ON nt.tag_id = t.id
		WHERE t.name = ? AND n.is_archived = 0
		ORDER BY n.updated_at DESC`
	return r.scanNotes(ctx, query, tagName)
}

// Search substring-matches title and content of non-archived notes.
func (r *noteRepository) Search(ctx context.Context, query string) ([]Note, error) {
	pattern := "%" + query + "%"
	return r.scanNotes(ctx,
		`SELECT `+noteColumns+` FROM notes
		 WHERE (title LIKE ? OR content LIKE ?) AND is_archived = 0
		 ORDER BY updated_at DESC`, pattern, pattern)
}

// Update saves changes to an existing note and bumps updated_at.
func (r *noteRepository) Update(ctx context.Context, note *Note) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE notes SET title = ?, content = ?, tags = ?, folder_id = ?,
		        updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		note.Title, note.Content, note.Tags, note.FolderID, note.ID)
	if err != nil {
		return fmt.Errorf("updating note: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return apperror.NewNotFound("note not found")
	}
	return nil
}

// SetArchived flips the archive flag.
func (r *noteRepository) SetArchived(ctx context.Context, id int64, archived bool) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE notes SET is_archived = ? WHERE id = ?`, archived, id)
	if err != nil {
		return fmt.Errorf("setting note archive flag: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return apperror.NewNotFound("note not found")
	}
	return nil
}

// Delete removes a note.
func (r *noteRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting note: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return apperror.NewNotFound("note not found")
	}
	return nil
}

// scanNotes runs a query and scans multiple note rows.
func (r *noteRepository) scanNotes(ctx context.Context, query string, args ...any) ([]Note, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying notes: %w", err)
	}
	defer rows.Close()

	var notes []Note
	for rows.Next() {
		var n Note
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.FolderID, &n.Tags,
			&n.IsArchived, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning note row: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}
