// Package notes implements the core note entity: a title plus a body that
// is either rich-text HTML from the editor widget or legacy Markdown, filed
// in at most one folder and labeled with a free-text comma-separated tag
// list. Editor HTML is sanitized before storage; the tag list is mirrored
// into the tags table and note_tags join on every save so tag queries can
// use a proper join.
package notes

import "time"

// Note is the primary content entity.
type Note struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	FolderID   *int64    `json:"folder_id"`
	Tags       string    `json:"tags"`
	IsArchived bool      `json:"is_archived"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NoteRequest holds the data submitted when creating or updating a note.
// Content and Tags default to the empty string when absent.
type NoteRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Tags     string `json:"tags"`
	FolderID *int64 `json:"folder_id,omitempty"`
}

// ListFilter selects which notes a listing returns. At most one of the
// filter fields is honored, checked in field order. Archived notes are
// excluded from every listing except the explicit archived view.
type ListFilter struct {
	// FolderID filters to notes filed in a specific folder.
	FolderID *int64

	// Unfiled filters to notes with no folder.
	Unfiled bool

	// Tag filters to notes carrying the named tag (note_tags join).
	Tag string

	// Query substring-matches against title and content.
	Query string

	// Archived lists archived notes instead of active ones.
	Archived bool
}
