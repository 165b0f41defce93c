package services

import (
	"context"
	"io"

	"golang.org/x/sync/errgroup"

	"storage-api/internal/application/ports"
	"storage-api/internal/domain/file"
	"storage-api/internal/domain/folder"
	"storage-api/internal/domain/quota"
	"storage-api/internal/domain/user"
)

// StorageFacade holds no state; it checks inputs and forwards to the ledger,
// the folder tree and the file catalog.
type StorageFacade struct {
	quota   ports.QuotaLedger
	folders ports.FolderHierarchy
	files   ports.FileCatalog
}

func NewStorageFacade(
	quota ports.QuotaLedger,
	folders ports.FolderHierarchy,
	files ports.FileCatalog,
) ports.StorageFacade {
	return &StorageFacade{
		quota:   quota,
		folders: folders,
		files:   files,
	}
}

func (sf *StorageFacade) MyFiles(
	ctx context.Context,
	userID user.ID,
	folderID *folder.ID,
) (file.Files, folder.Folders, error) {
	var (
		files   file.Files
		folders folder.Folders
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		files, err = sf.files.List(gctx, userID, folderID)
		return err
	})
	g.Go(func() error {
		var err error
		folders, err = sf.folders.List(gctx, userID, folderID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return files, folders, nil
}

func (sf *StorageFacade) StorageStats(ctx context.Context, userID user.ID) (quota.Report, error) {
	return sf.quota.Report(ctx, userID)
}

func (sf *StorageFacade) Upload(ctx context.Context, userID user.ID, in *ports.UploadInput) (*file.File, error) {
	if in == nil || in.Body == nil {
		return nil, ErrNoFile
	}

	return sf.files.Upload(ctx, userID, *in)
}

func (sf *StorageFacade) CreateFolder(
	ctx context.Context,
	userID user.ID,
	name string,
	parentID *folder.ID,
) (*folder.Folder, error) {
	return sf.folders.Create(ctx, userID, name, parentID)
}

func (sf *StorageFacade) DeleteFile(ctx context.Context, userID user.ID, id file.ID) error {
	return sf.files.SoftDelete(ctx, userID, id)
}

func (sf *StorageFacade) DeleteFolder(ctx context.Context, userID user.ID, id folder.ID) error {
	return sf.folders.SoftDelete(ctx, userID, id)
}

func (sf *StorageFacade) Download(ctx context.Context, userID user.ID, id file.ID) (*file.File, io.ReadCloser, error) {
	return sf.files.StreamDownload(ctx, userID, id)
}
