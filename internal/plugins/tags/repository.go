package tags

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"notewell/internal/apperror"
)

// TagRepository defines the data access contract for tags and the
// note_tags join table. All tag SQL lives here.
type TagRepository interface {
	// Upsert inserts a tag, ignoring the insert if the name already exists,
	// and returns the resulting row. The second result reports whether a
	// new row was created.
	Upsert(ctx context.Context, name, color string) (*Tag, bool, error)

	// FindByID retrieves a single tag by its primary key.
	FindByID(ctx context.Context, id int64) (*Tag, error)

	// FindByName retrieves a single tag by its unique name.
	FindByName(ctx context.Context, name string) (*Tag, error)

	// ListAll returns every tag ordered alphabetically by name.
	ListAll(ctx context.Context) ([]Tag, error)

	// ListForNote returns the tags associated with a note via note_tags.
	ListForNote(ctx context.Context, noteID int64) ([]Tag, error)

	// Delete removes a tag by ID. Cascade deletes remove note_tags rows.
	Delete(ctx context.Context, id int64) error

	// ReplaceNoteTags rebuilds the note_tags rows for a note to exactly the
	// given tag IDs, atomically.
	ReplaceNoteTags(ctx context.Context, noteID int64, tagIDs []int64) error

	// ListNoteTagStrings returns the raw denormalized tag string of every
	// non-archived note. Used to merge string-only tags into listings.
	ListNoteTagStrings(ctx context.Context) ([]string, error)
}

// tagRepository implements TagRepository with hand-written SQLite queries.
type tagRepository struct {
	db *sql.DB
}

// NewTagRepository creates a new tag repository backed by the given database.
func NewTagRepository(db *sql.DB) TagRepository {
	return &tagRepository{db: db}
}

// Upsert inserts the tag if its name is unused, then returns the row either
// way. INSERT OR IGNORE makes the operation idempotent on the unique name.
func (r *tagRepository) Upsert(ctx context.Context, name, color string) (*Tag, bool, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO tags (name, color) VALUES (?, ?)`, name, color)
	if err != nil {
		return nil, false, fmt.Errorf("upserting tag: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("checking rows affected: %w", err)
	}

	tag, err := r.FindByName(ctx, name)
	if err != nil {
		return nil, false, err
	}
	return tag, rows > 0, nil
}

// FindByID retrieves a tag by its primary key.
func (r *tagRepository) FindByID(ctx context.Context, id int64) (*Tag, error) {
	return r.scanTag(r.db.QueryRowContext(ctx,
		`SELECT id, name, color FROM tags WHERE id = ?`, id))
}

// FindByName retrieves a tag by its unique name.
func (r *tagRepository) FindByName(ctx context.Context, name string) (*Tag, error) {
	return r.scanTag(r.db.QueryRowContext(ctx,
		`SELECT id, name, color FROM tags WHERE name = ?`, name))
}

// ListAll returns all tags ordered by name.
func (r *tagRepository) ListAll(ctx context.Context) ([]Tag, error) {
	return r.scanTags(ctx, `SELECT id, name, color FROM tags ORDER BY name`)
}

// ListForNote returns the tags joined to a note.
func (r *tagRepository) ListForNote(ctx context.Context, noteID int64) ([]Tag, error) {
	query := `SELECT t.id, t.name, t.color FROM tags t
	          JOIN note_tags nt ON t.id = nt.tag_id
	          WHERE nt.note_id = ?
	          ORDER BY t.name`
	return r.scanTags(ctx, query, noteID)
}

// Delete removes a tag row. note_tags rows go with it via cascade.
func (r *tagRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting tag: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return apperror.NewNotFound("tag not found")
	}
	return nil
}

// ReplaceNoteTags deletes and re-inserts the join rows for a note inside a
// single transaction so a note never transiently appears untagged.
func (r *tagRepository) ReplaceNoteTags(ctx context.Context, noteID int64, tagIDs []int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning tag sync transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM note_tags WHERE note_id = ?`, noteID); err != nil {
		return fmt.Errorf("clearing note tags: %w", err)
	}

	for _, tagID := range tagIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO note_tags (note_id, tag_id) VALUES (?, ?)`,
			noteID, tagID); err != nil {
			return fmt.Errorf("inserting note tag: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing tag sync: %w", err)
	}
	return nil
}

// ListNoteTagStrings returns the denormalized tag string of every active note.
func (r *tagRepository) ListNoteTagStrings(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT tags FROM notes WHERE is_archived = 0`)
	if err != nil {
		return nil, fmt.Errorf("querying note tag strings: %w", err)
	}
	defer rows.Close()

	var strs []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scanning note tag string: %w", err)
		}
		strs = append(strs, s)
	}
	return strs, rows.Err()
}

// scanTag scans a single tag row.
func (r *tagRepository) scanTag(row *sql.Row) (*Tag, error) {
	t := &Tag{}
	err := row.Scan(&t.ID, &t.Name, &t.Color)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("tag not found")
	}
	if err != nil {
		return nil, fmt.Errorf("scanning tag: %w", err)
	}
	return t, nil
}

// scanTags runs a query and scans multiple tag rows.
func (r *tagRepository) scanTags(ctx context.Context, query string, args ...any) ([]Tag, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying tags: %w", err)
	}
	defer rows.Close()

	var tags []Tag
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color); err != nil {
			return nil, fmt.Errorf("scanning tag row: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}
