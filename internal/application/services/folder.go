package services

import (
	"context"
	"errors"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"storage-api/internal/application/ports"
	domain "storage-api/internal/domain/folder"
	"storage-api/internal/domain/user"
)

type FolderHierarchy struct {
	folderRepository domain.Repository
	mCounter         *prometheus.CounterVec
}

func NewFolderHierarchy(
	folderRepository domain.Repository,
	mCounter *prometheus.CounterVec,
) ports.FolderHierarchy {
	return &FolderHierarchy{
		folderRepository: folderRepository,
		mCounter:         mCounter,
	}
}

func (fh *FolderHierarchy) Create(
	ctx context.Context,
	userID user.ID,
	name string,
	parentID *domain.ID,
) (*domain.Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidInput
	}

	if parentID != nil {
		if _, err := fh.Get(ctx, userID, *parentID); err != nil {
			return nil, err
		}
	}

	exists, err := fh.folderRepository.NameExists(ctx, userID, parentID, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateFolderName
	}

	// the partial unique index still rejects a sibling created concurrently
	out, err := fh.folderRepository.CreateFolder(ctx, domain.Folder{
		UserID:   userID,
		ParentID: parentID,
		Name:     name,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNameTaken) {
			return nil, ErrDuplicateFolderName
		}
		return nil, err
	}

	fh.mCounter.WithLabelValues("folders_created_total").Inc()

	return out, nil
}

func (fh *FolderHierarchy) List(ctx context.Context, userID user.ID, parentID *domain.ID) (domain.Folders, error) {
	return fh.folderRepository.FetchFolders(ctx, userID, parentID)
}

func (fh *FolderHierarchy) Get(ctx context.Context, userID user.ID, id domain.ID) (*domain.Folder, error) {
	f, err := fh.folderRepository.FetchFolder(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, ErrFolderNotFound
	}

	return f, nil
}

// SoftDelete marks only the folder itself; sub-folders and files keep their
// rows and stay reachable by their own folder id.
func (fh *FolderHierarchy) SoftDelete(ctx context.Context, userID user.ID, id domain.ID) error {
	ok, err := fh.folderRepository.SoftDeleteFolder(ctx, userID, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrFolderNotFound
	}

	fh.mCounter.WithLabelValues("folders_deleted_total").Inc()

	return nil
}
