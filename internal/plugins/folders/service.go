package folders

import (
	"context"
	"log/slog"
	"strings"

	"notewell/internal/apperror"
)

// FolderService defines the business logic contract for folders.
type FolderService interface {
	Create(ctx context.Context, req FolderRequest) (*Folder, error)
	GetByID(ctx context.Context, id int64) (*Folder, error)
	ListAll(ctx context.Context) ([]Folder, error)
	Update(ctx context.Context, id int64, req FolderRequest) (*Folder, error)
	Delete(ctx context.Context, id int64) error
}

// folderService implements FolderService.
type folderService struct {
	repo FolderRepository
}

// NewFolderService creates a new folder service.
func NewFolderService(repo FolderRepository) FolderService {
	return &folderService{repo: repo}
}

// Create validates and persists a new folder.
func (s *folderService) Create(ctx context.Context, req FolderRequest) (*Folder, error) {
	name, icon, err := s.validate(ctx, req, 0)
	if err != nil {
		return nil, err
	}

	folder := &Folder{
		Name:     name,
		ParentID: req.ParentID,
		Icon:     icon,
	}
	if err := s.repo.Create(ctx, folder); err != nil {
		return nil, err
	}

	slog.Info("folder created", slog.Int64("id", folder.ID), slog.String("name", name))

	// Re-fetch so the response carries the server-set timestamps.
	return s.repo.FindByID(ctx, folder.ID)
}

// GetByID retrieves a folder by ID.
func (s *folderService) GetByID(ctx context.Context, id int64) (*Folder, error) {
	return s.repo.FindByID(ctx, id)
}

// ListAll returns all folders sorted by name.
func (s *folderService) ListAll(ctx context.Context) ([]Folder, error) {
	return s.repo.ListAll(ctx)
}

// Update validates and saves changes to a folder. Missing ids are a 404,
// never a silent echo of stale state.
func (s *folderService) Update(ctx context.Context, id int64, req FolderRequest) (*Folder, error) {
	folder, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name, icon, err := s.validate(ctx, req, id)
	if err != nil {
		return nil, err
	}

	// TODO: reject moves into the folder's own subtree, not just directly
	// under itself. Needs an ancestor walk over parent_id.
	folder.Name = name
	folder.ParentID = req.ParentID
	folder.Icon = icon

	if err := s.repo.Update(ctx, folder); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

// Delete removes a folder and, through the schema's foreign keys, its
// whole subtree; notes filed anywhere in the subtree become unfiled.
func (s *folderService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("folder deleted", slog.Int64("id", id))
	return nil
}

// validate normalizes a folder request and checks its invariants: name
// required, parent (if set) must exist and must not be the folder itself.
// The parent check runs here so clients get a 400 instead of the store's
// opaque constraint error. id is 0 on create.
func (s *folderService) validate(ctx context.Context, req FolderRequest, id int64) (string, *string, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return "", nil, apperror.NewBadRequest("folder name is required")
	}

	if req.ParentID != nil {
		if id != 0 && *req.ParentID == id {
			return "", nil, apperror.NewBadRequest("folder cannot be its own parent")
		}
		if _, err := s.repo.FindByID(ctx, *req.ParentID); err != nil {
			return "", nil, apperror.NewBadRequest("parent folder does not exist")
		}
	}

	var icon *string
	if req.Icon != nil {
		trimmed := strings.TrimSpace(*req.Icon)
		if trimmed != "" {
			icon = &trimmed
		}
	}

	return name, icon, nil
}
