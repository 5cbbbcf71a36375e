package notes

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"notewell/internal/apperror"
	"notewell/internal/markdown"
	"notewell/internal/plugins/tags"
	"notewell/internal/sanitize"
)

// renderCacheTTL bounds how long a rendered body stays cached. Cache keys
// include the note's updated_at, so entries for stale revisions simply age
// out instead of needing explicit invalidation.
const renderCacheTTL = 24 * time.Hour

// TagSyncer reconciles the tags table and note_tags join with a note's
// parsed tag names. Implemented by the tags plugin's service; declared here
// so the notes service depends on the capability, not the package wiring.
type TagSyncer interface {
	SyncNoteTags(ctx context.Context, noteID int64, names []string) error
}

// NoteService defines the business logic contract for notes.
type NoteService interface {
	Create(ctx context.Context, req NoteRequest) (*Note, error)
	GetByID(ctx context.Context, id int64) (*Note, error)
	List(ctx context.Context, filter ListFilter) ([]Note, error)
	Update(ctx context.Context, id int64, req NoteRequest) (*Note, error)
	Delete(ctx context.Context, id int64) error
	SetArchived(ctx context.Context, id int64, archived bool) error

	// Render returns the note body as display-ready HTML: editor HTML is
	// passed through (already sanitized at write time), legacy Markdown is
	// converted with highlighted code fences.
	Render(ctx context.Context, id int64) (string, error)
}

// noteService implements NoteService.
type noteService struct {
	repo   NoteRepository
	syncer TagSyncer
	cache  *redis.Client // nil when no cache is configured
}

// NewNoteService creates a new note service. cache may be nil, in which
// case rendered bodies are recomputed on every request.
func NewNoteService(repo NoteRepository, syncer TagSyncer, cache *redis.Client) NoteService {
	return &noteService{repo: repo, syncer: syncer, cache: cache}
}

// Create validates and persists a new note, then mirrors its tag list into
// the tags table.
func (s *noteService) Create(ctx context.Context, req NoteRequest) (*Note, error) {
	title, content, tagsStr, err := s.validate(req)
	if err != nil {
		return nil, err
	}

	note := &Note{
		Title:    title,
		Content:  content,
		Tags:     tagsStr,
		FolderID: req.FolderID,
	}
	if err := s.repo.Create(ctx, note); err != nil {
		return nil, err
	}

	if err := s.syncer.SyncNoteTags(ctx, note.ID, tags.ParseList(tagsStr)); err != nil {
		return nil, err
	}

	slog.Info("note created", slog.Int64("id", note.ID), slog.String("title", title))

	// Re-fetch so the response carries the server-set timestamps.
	return s.repo.FindByID(ctx, note.ID)
}

// GetByID retrieves a note by ID.
func (s *noteService) GetByID(ctx context.Context, id int64) (*Note, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns notes matching the filter, most recently updated first.
func (s *noteService) List(ctx context.Context, filter ListFilter) ([]Note, error) {
	switch {
	case filter.FolderID != nil:
		return s.repo.ListByFolder(ctx, *filter.FolderID)
	case filter.Unfiled:
		return s.repo.ListUnfiled(ctx)
	case filter.Tag != "":
		return s.repo.ListByTag(ctx, filter.Tag)
	case filter.Query != "":
		return s.repo.Search(ctx, filter.Query)
	case filter.Archived:
		return s.repo.ListArchived(ctx)
	default:
		return s.repo.ListActive(ctx)
	}
}

// Update validates and saves changes to a note, re-syncing its tag list.
func (s *noteService) Update(ctx context.Context, id int64, req NoteRequest) (*Note, error) {
	note, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	title, content, tagsStr, err := s.validate(req)
	if err != nil {
		return nil, err
	}

	note.Title = title
	note.Content = content
	note.Tags = tagsStr
	note.FolderID = req.FolderID

	if err := s.repo.Update(ctx, note); err != nil {
		return nil, err
	}
	if err := s.syncer.SyncNoteTags(ctx, id, tags.ParseList(tagsStr)); err != nil {
		return nil, err
	}

	return s.repo.FindByID(ctx, id)
}

// Delete removes a note. note_tags rows cascade away with it.
func (s *noteService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("note deleted", slog.Int64("id", id))
	return nil
}

// SetArchived flips a note's archive flag.
func (s *noteService) SetArchived(ctx context.Context, id int64, archived bool) error {
	return s.repo.SetArchived(ctx, id, archived)
}

// Render returns display-ready HTML for the note body, consulting the
// cache first when one is configured. Cache failures are logged and
// ignored; rendering must work without Redis.
func (s *noteService) Render(ctx context.Context, id int64) (string, error) {
	note, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("render:note:%d:%d", note.ID, note.UpdatedAt.Unix())
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key).Result(); err == nil {
			return cached, nil
		} else if err != redis.Nil {
			slog.Warn("render cache read failed", slog.Int64("note_id", id), slog.Any("error", err))
		}
	}

	var html string
	if sanitize.LooksLikeHTML(note.Content) {
		// Editor HTML was sanitized on write; sanitize again anyway so rows
		// predating the policy can't smuggle markup to the browser.
		html = sanitize.HTML(note.Content)
	} else {
		html, err = markdown.Render(note.Content)
		if err != nil {
			return "", apperror.NewInternal(err)
		}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, html, renderCacheTTL).Err(); err != nil {
			slog.Warn("render cache write failed", slog.Int64("note_id", id), slog.Any("error", err))
		}
	}
	return html, nil
}

// validate normalizes a note request: title required, content sanitized
// when it is editor HTML, tags passed through as the raw string clients
// expect to read back.
func (s *noteService) validate(req NoteRequest) (title, content, tagsStr string, err error) {
	title = strings.TrimSpace(req.Title)
	if title == "" {
		return "", "", "", apperror.NewBadRequest("note title is required")
	}

	content = req.Content
	if sanitize.LooksLikeHTML(content) {
		content = sanitize.HTML(content)
	}

	return title, content, req.Tags, nil
}
