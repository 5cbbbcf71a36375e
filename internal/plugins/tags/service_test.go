package tags

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"testing"

	"notewell/internal/apperror"
)

// --- Mock Repository ---

// mockTagRepo implements TagRepository for testing.
type mockTagRepo struct {
	upsertFn             func(ctx context.Context, name, color string) (*Tag, bool, error)
	findByIDFn           func(ctx context.Context, id int64) (*Tag, error)
	findByNameFn         func(ctx context.Context, name string) (*Tag, error)
	listAllFn            func(ctx context.Context) ([]Tag, error)
	listForNoteFn        func(ctx context.Context, noteID int64) ([]Tag, error)
	deleteFn             func(ctx context.Context, id int64) error
	replaceNoteTagsFn    func(ctx context.Context, noteID int64, tagIDs []int64) error
	listNoteTagStringsFn func(ctx context.Context) ([]string, error)
}

func (m *mockTagRepo) Upsert(ctx context.Context, name, color string) (*Tag, bool, error) {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, name, color)
	}
	return &Tag{ID: 1, Name: name, Color: color}, true, nil
}

func (m *mockTagRepo) FindByID(ctx context.Context, id int64) (*Tag, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, apperror.NewNotFound("tag not found")
}

func (m *mockTagRepo) FindByName(ctx context.Context, name string) (*Tag, error) {
	if m.findByNameFn != nil {
		return m.findByNameFn(ctx, name)
	}
	return nil, apperror.NewNotFound("tag not found")
}

func (m *mockTagRepo) ListAll(ctx context.Context) ([]Tag, error) {
	if m.listAllFn != nil {
		return m.listAllFn(ctx)
	}
	return nil, nil
}

func (m *mockTagRepo) ListForNote(ctx context.Context, noteID int64) ([]Tag, error) {
	if m.listForNoteFn != nil {
		return m.listForNoteFn(ctx, noteID)
	}
	return nil, nil
}

func (m *mockTagRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockTagRepo) ReplaceNoteTags(ctx context.Context, noteID int64, tagIDs []int64) error {
	if m.replaceNoteTagsFn != nil {
		return m.replaceNoteTagsFn(ctx, noteID, tagIDs)
	}
	return nil
}

func (m *mockTagRepo) ListNoteTagStrings(ctx context.Context) ([]string, error) {
	if m.listNoteTagStringsFn != nil {
		return m.listNoteTagStringsFn(ctx)
	}
	return nil, nil
}

// --- Test Helpers ---

// assertAppError checks that err is an *apperror.AppError with the expected code.
func assertAppError(t *testing.T, err error, expectedCode int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %d, got nil", expectedCode)
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperror.AppError, got %T: %v", err, err)
	}
	if appErr.Code != expectedCode {
		t.Errorf("expected status %d, got %d (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

// --- ParseList Tests ---

func TestParseList(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"work", []string{"work"}},
		{"work, home", []string{"work", "home"}},
		{"  work ,, home , work ", []string{"work", "home"}},
		{", ,", nil},
	}
	for _, tc := range cases {
		got := ParseList(tc.in)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("ParseList(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

// --- List Tests ---

func TestList_MergesTableAndStringTags(t *testing.T) {
	repo := &mockTagRepo{
		listAllFn: func(ctx context.Context) ([]Tag, error) {
			return []Tag{
				{ID: 1, Name: "home", Color: "#ff0000"},
				{ID: 2, Name: "work", Color: DefaultColor},
			}, nil
		},
		listNoteTagStringsFn: func(ctx context.Context) ([]string, error) {
			return []string{"work, ideas", "work", "ideas, home"}, nil
		},
	}

	svc := NewTagService(repo)
	listed, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(listed) != 3 {
		t.Fatalf("expected 3 listed tags, got %d: %+v", len(listed), listed)
	}

	// Table rows come first, alphabetical, keeping id and color.
	if listed[0].Name != "home" || listed[0].ID == nil || *listed[0].ID != 1 {
		t.Errorf("expected table tag home first, got %+v", listed[0])
	}
	if listed[0].Count != 1 {
		t.Errorf("expected home count 1, got %d", listed[0].Count)
	}
	if listed[1].Name != "work" || listed[1].Count != 2 {
		t.Errorf("expected work with count 2, got %+v", listed[1])
	}

	// String-only names follow with nil id and the default color.
	if listed[2].Name != "ideas" || listed[2].ID != nil {
		t.Errorf("expected string-only tag ideas with nil id, got %+v", listed[2])
	}
	if listed[2].Color != DefaultColor || listed[2].Count != 2 {
		t.Errorf("expected ideas default color and count 2, got %+v", listed[2])
	}
}

func TestList_EmptyStore(t *testing.T) {
	svc := NewTagService(&mockTagRepo{})
	listed, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listed) != 0 {
		t.Errorf("expected empty listing, got %+v", listed)
	}
}

// --- Create Tests ---

func TestCreate_Success(t *testing.T) {
	var gotName, gotColor string
	repo := &mockTagRepo{
		upsertFn: func(ctx context.Context, name, color string) (*Tag, bool, error) {
			gotName, gotColor = name, color
			return &Tag{ID: 7, Name: name, Color: color}, true, nil
		},
	}

	svc := NewTagService(repo)
	tag, created, err := svc.Create(context.Background(), CreateTagRequest{Name: "  work  ", Color: "#abc"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Error("expected created=true for new tag")
	}
	if tag.ID != 7 {
		t.Errorf("expected id 7, got %d", tag.ID)
	}
	if gotName != "work" {
		t.Errorf("expected trimmed name, got %q", gotName)
	}
	if gotColor != "#abc" {
		t.Errorf("expected color passed through, got %q", gotColor)
	}
}

func TestCreate_ExistingNameNotAnError(t *testing.T) {
	repo := &mockTagRepo{
		upsertFn: func(ctx context.Context, name, color string) (*Tag, bool, error) {
			return &Tag{ID: 3, Name: name, Color: "#112233"}, false, nil
		},
	}

	svc := NewTagService(repo)
	tag, created, err := svc.Create(context.Background(), CreateTagRequest{Name: "work"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Error("expected created=false for existing tag")
	}
	if tag.Color != "#112233" {
		t.Errorf("expected existing row's color kept, got %q", tag.Color)
	}
}

func TestCreate_EmptyName(t *testing.T) {
	svc := NewTagService(&mockTagRepo{})
	_, _, err := svc.Create(context.Background(), CreateTagRequest{Name: "   "})
	assertAppError(t, err, http.StatusBadRequest)
}

func TestCreate_DefaultColor(t *testing.T) {
	var gotColor string
	repo := &mockTagRepo{
		upsertFn: func(ctx context.Context, name, color string) (*Tag, bool, error) {
			gotColor = color
			return &Tag{ID: 1, Name: name, Color: color}, true, nil
		},
	}

	svc := NewTagService(repo)
	if _, _, err := svc.Create(context.Background(), CreateTagRequest{Name: "work"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotColor != DefaultColor {
		t.Errorf("expected default color %s, got %q", DefaultColor, gotColor)
	}
}

func TestCreate_InvalidColor(t *testing.T) {
	svc := NewTagService(&mockTagRepo{})
	for _, color := range []string{"red", "#12", "#12345g", "3B82F6"} {
		_, _, err := svc.Create(context.Background(), CreateTagRequest{Name: "work", Color: color})
		assertAppError(t, err, http.StatusBadRequest)
	}
}

// --- SyncNoteTags Tests ---

func TestSyncNoteTags_UpsertsAndReplaces(t *testing.T) {
	upserted := map[string]int64{}
	var replacedNote int64
	var replacedIDs []int64

	nextID := int64(0)
	repo := &mockTagRepo{
		upsertFn: func(ctx context.Context, name, color string) (*Tag, bool, error) {
			nextID++
			upserted[name] = nextID
			return &Tag{ID: nextID, Name: name, Color: color}, true, nil
		},
		replaceNoteTagsFn: func(ctx context.Context, noteID int64, tagIDs []int64) error {
			replacedNote = noteID
			replacedIDs = tagIDs
			return nil
		},
	}

	svc := NewTagService(repo)
	if err := svc.SyncNoteTags(context.Background(), 42, []string{"work", "ideas"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(upserted) != 2 {
		t.Errorf("expected 2 upserts, got %v", upserted)
	}
	if replacedNote != 42 {
		t.Errorf("expected note 42, got %d", replacedNote)
	}
	if !reflect.DeepEqual(replacedIDs, []int64{1, 2}) {
		t.Errorf("expected join rebuilt with ids [1 2], got %v", replacedIDs)
	}
}

func TestSyncNoteTags_EmptyListClearsJoin(t *testing.T) {
	var replacedIDs []int64
	called := false
	repo := &mockTagRepo{
		replaceNoteTagsFn: func(ctx context.Context, noteID int64, tagIDs []int64) error {
			called = true
			replacedIDs = tagIDs
			return nil
		},
	}

	svc := NewTagService(repo)
	if err := svc.SyncNoteTags(context.Background(), 42, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatal("expected ReplaceNoteTags to be called")
	}
	if len(replacedIDs) != 0 {
		t.Errorf("expected empty id list, got %v", replacedIDs)
	}
}

// --- Delete Tests ---

func TestDelete_NotFound(t *testing.T) {
	repo := &mockTagRepo{
		deleteFn: func(ctx context.Context, id int64) error {
			return apperror.NewNotFound("tag not found")
		},
	}

	svc := NewTagService(repo)
	err := svc.Delete(context.Background(), 99)
	assertAppError(t, err, http.StatusNotFound)
}
