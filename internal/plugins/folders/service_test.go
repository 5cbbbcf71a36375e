package folders

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"notewell/internal/apperror"
)

// --- Mock Repository ---

// mockFolderRepo implements FolderRepository for testing.
type mockFolderRepo struct {
	createFn       func(ctx context.Context, folder *Folder) error
	findByIDFn     func(ctx context.Context, id int64) (*Folder, error)
	listAllFn      func(ctx context.Context) ([]Folder, error)
	listByParentFn func(ctx context.Context, parentID int64) ([]Folder, error)
	updateFn       func(ctx context.Context, folder *Folder) error
	deleteFn       func(ctx context.Context, id int64) error
}

func (m *mockFolderRepo) Create(ctx context.Context, folder *Folder) error {
	if m.createFn != nil {
		return m.createFn(ctx, folder)
	}
	folder.ID = 1
	return nil
}

func (m *mockFolderRepo) FindByID(ctx context.Context, id int64) (*Folder, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, apperror.NewNotFound("folder not found")
}

func (m *mockFolderRepo) ListAll(ctx context.Context) ([]Folder, error) {
	if m.listAllFn != nil {
		return m.listAllFn(ctx)
	}
	return nil, nil
}

func (m *mockFolderRepo) ListByParent(ctx context.Context, parentID int64) ([]Folder, error) {
	if m.listByParentFn != nil {
		return m.listByParentFn(ctx, parentID)
	}
	return nil, nil
}

func (m *mockFolderRepo) Update(ctx context.Context, folder *Folder) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, folder)
	}
	return nil
}

func (m *mockFolderRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
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

// sampleFolder creates a folder for testing.
func sampleFolder(id int64) *Folder {
	return &Folder{
		ID:        id,
		Name:      "Projects",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// --- Create Tests ---

func TestCreate_Success(t *testing.T) {
	var created *Folder
	repo := &mockFolderRepo{
		createFn: func(ctx context.Context, folder *Folder) error {
			folder.ID = 5
			created = folder
			return nil
		},
		findByIDFn: func(ctx context.Context, id int64) (*Folder, error) {
			return created, nil
		},
	}

	svc := NewFolderService(repo)
	folder, err := svc.Create(context.Background(), FolderRequest{Name: "  Projects  "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if folder.ID != 5 {
		t.Errorf("expected id 5, got %d", folder.ID)
	}
	if folder.Name != "Projects" {
		t.Errorf("expected trimmed name, got %q", folder.Name)
	}
}

func TestCreate_EmptyName(t *testing.T) {
	svc := NewFolderService(&mockFolderRepo{})
	_, err := svc.Create(context.Background(), FolderRequest{Name: "   "})
	assertAppError(t, err, http.StatusBadRequest)
}

func TestCreate_MissingParent(t *testing.T) {
	repo := &mockFolderRepo{
		findByIDFn: func(ctx context.Context, id int64) (*Folder, error) {
			return nil, apperror.NewNotFound("folder not found")
		},
	}

	svc := NewFolderService(repo)
	parentID := int64(99)
	_, err := svc.Create(context.Background(), FolderRequest{Name: "Sub", ParentID: &parentID})
	assertAppError(t, err, http.StatusBadRequest)
}

func TestCreate_BlankIconDropped(t *testing.T) {
	var created *Folder
	repo := &mockFolderRepo{
		createFn: func(ctx context.Context, folder *Folder) error {
			folder.ID = 1
			created = folder
			return nil
		},
		findByIDFn: func(ctx context.Context, id int64) (*Folder, error) {
			return created, nil
		},
	}

	svc := NewFolderService(repo)
	icon := "   "
	folder, err := svc.Create(context.Background(), FolderRequest{Name: "Projects", Icon: &icon})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if folder.Icon != nil {
		t.Errorf("expected blank icon dropped, got %q", *folder.Icon)
	}
}

// --- Update Tests ---

func TestUpdate_Success(t *testing.T) {
	stored := sampleFolder(3)
	var updated *Folder
	repo := &mockFolderRepo{
		findByIDFn: func(ctx context.Context, id int64) (*Folder, error) {
			if updated != nil {
				return updated, nil
			}
			if id == stored.ID {
				return stored, nil
			}
			return nil, apperror.NewNotFound("folder not found")
		},
		updateFn: func(ctx context.Context, folder *Folder) error {
			updated = folder
			return nil
		},
	}

	svc := NewFolderService(repo)
	folder, err := svc.Update(context.Background(), 3, FolderRequest{Name: "Renamed"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if folder.Name != "Renamed" {
		t.Errorf("expected renamed folder, got %q", folder.Name)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	svc := NewFolderService(&mockFolderRepo{})
	_, err := svc.Update(context.Background(), 99, FolderRequest{Name: "Renamed"})
	assertAppError(t, err, http.StatusNotFound)
}

func TestUpdate_SelfParent(t *testing.T) {
	stored := sampleFolder(3)
	repo := &mockFolderRepo{
		findByIDFn: func(ctx context.Context, id int64) (*Folder, error) {
			if id == stored.ID {
				return stored, nil
			}
			return nil, apperror.NewNotFound("folder not found")
		},
	}

	svc := NewFolderService(repo)
	parentID := int64(3)
	_, err := svc.Update(context.Background(), 3, FolderRequest{Name: "Projects", ParentID: &parentID})
	assertAppError(t, err, http.StatusBadRequest)
}

// --- Delete Tests ---

func TestDelete_Success(t *testing.T) {
	var deletedID int64
	repo := &mockFolderRepo{
		deleteFn: func(ctx context.Context, id int64) error {
			deletedID = id
			return nil
		},
	}

	svc := NewFolderService(repo)
	if err := svc.Delete(context.Background(), 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deletedID != 3 {
		t.Errorf("expected delete of folder 3, got %d", deletedID)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo := &mockFolderRepo{
		deleteFn: func(ctx context.Context, id int64) error {
			return apperror.NewNotFound("folder not found")
		},
	}

	svc := NewFolderService(repo)
	err := svc.Delete(context.Background(), 99)
	assertAppError(t, err, http.StatusNotFound)
}
