package tags

import (
	"context"
	"regexp"
	"strings"

	"notewell/internal/apperror"
)

// TagService defines the business logic contract for tags.
type TagService interface {
	// List returns the merged tag listing: table rows plus names found only
	// in note tag strings, each with its note count.
	List(ctx context.Context) ([]ListedTag, error)

	// Create upserts a tag by name. The second result reports whether a new
	// row was created (drives 201 vs 200 at the endpoint).
	Create(ctx context.Context, req CreateTagRequest) (*Tag, bool, error)

	// GetByID returns a single tag row.
	GetByID(ctx context.Context, id int64) (*Tag, error)

	// Delete removes a tag row by ID.
	Delete(ctx context.Context, id int64) error

	// ListForNote returns the tags joined to a note.
	ListForNote(ctx context.Context, noteID int64) ([]Tag, error)

	// SyncNoteTags reconciles the tags table and note_tags join with the
	// parsed tag names of a note. Names without a row are created with the
	// default color; the join rows are rebuilt to exactly the given names.
	SyncNoteTags(ctx context.Context, noteID int64, names []string) error
}

// tagService implements TagService.
type tagService struct {
	repo TagRepository
}

// NewTagService creates a new tag service.
func NewTagService(repo TagRepository) TagService {
	return &tagService{repo: repo}
}

// List merges tag-table rows with names harvested from note tag strings.
// Table rows keep their id and color; string-only names get a nil id and
// the default color. Count is the number of active notes whose parsed tag
// list contains the name.
func (s *tagService) List(ctx context.Context) ([]ListedTag, error) {
	tableTags, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	tagStrings, err := s.repo.ListNoteTagStrings(ctx)
	if err != nil {
		return nil, err
	}

	// Count occurrences of each name across note tag strings.
	counts := make(map[string]int)
	for _, raw := range tagStrings {
		for _, name := range ParseList(raw) {
			counts[name]++
		}
	}

	listed := make([]ListedTag, 0, len(tableTags))
	inTable := make(map[string]bool, len(tableTags))
	for _, t := range tableTags {
		id := t.ID
		inTable[t.Name] = true
		listed = append(listed, ListedTag{
			ID:    &id,
			Name:  t.Name,
			Color: t.Color,
			Count: counts[t.Name],
		})
	}

	// Append string-only names in the order notes mention them.
	appended := make(map[string]bool)
	for _, raw := range tagStrings {
		for _, name := range ParseList(raw) {
			if inTable[name] || appended[name] {
				continue
			}
			appended[name] = true
			listed = append(listed, ListedTag{
				ID:    nil,
				Name:  name,
				Color: DefaultColor,
				Count: counts[name],
			})
		}
	}

	return listed, nil
}

// hexColorRe matches #RGB and #RRGGBB colors.
var hexColorRe = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Create validates and upserts a tag. Creating an existing name is not an
// error: the existing row is returned unchanged.
func (s *tagService) Create(ctx context.Context, req CreateTagRequest) (*Tag, bool, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, false, apperror.NewBadRequest("tag name is required")
	}

	color := strings.TrimSpace(req.Color)
	if color == "" {
		color = DefaultColor
	}
	if !hexColorRe.MatchString(color) {
		return nil, false, apperror.NewBadRequest("tag color must be a hex color like #3B82F6")
	}

	return s.repo.Upsert(ctx, name, color)
}

// GetByID returns a single tag row.
func (s *tagService) GetByID(ctx context.Context, id int64) (*Tag, error) {
	return s.repo.FindByID(ctx, id)
}

// Delete removes a tag by ID.
func (s *tagService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// ListForNote returns the tags joined to a note.
func (s *tagService) ListForNote(ctx context.Context, noteID int64) ([]Tag, error) {
	return s.repo.ListForNote(ctx, noteID)
}

// SyncNoteTags upserts a row for every name and rebuilds the join rows.
// Called by the notes service on every create and update so tag-based
// queries stay correct without clients ever touching the tags endpoints.
func (s *tagService) SyncNoteTags(ctx context.Context, noteID int64, names []string) error {
	tagIDs := make([]int64, 0, len(names))
	for _, name := range names {
		tag, _, err := s.repo.Upsert(ctx, name, DefaultColor)
		if err != nil {
			return err
		}
		tagIDs = append(tagIDs, tag.ID)
	}
	return s.repo.ReplaceNoteTags(ctx, noteID, tagIDs)
}
