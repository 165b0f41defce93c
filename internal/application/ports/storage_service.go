package ports

import (
	"context"
	"io"

	"storage-api/internal/domain/file"
	"storage-api/internal/domain/folder"
	"storage-api/internal/domain/quota"
	"storage-api/internal/domain/user"
)

type (
	QuotaLedger interface {
		CurrentUsage(ctx context.Context, userID user.ID) (int64, error)
		Admit(ctx context.Context, userID user.ID, incoming int64) error
		Report(ctx context.Context, userID user.ID) (quota.Report, error)
		Ceiling() int64
	}

	FolderHierarchy interface {
		Create(ctx context.Context, userID user.ID, name string, parentID *folder.ID) (*folder.Folder, error)
		List(ctx context.Context, userID user.ID, parentID *folder.ID) (folder.Folders, error)
		Get(ctx context.Context, userID user.ID, id folder.ID) (*folder.Folder, error)
		SoftDelete(ctx context.Context, userID user.ID, id folder.ID) error
	}

	FileCatalog interface {
		Upload(ctx context.Context, userID user.ID, in UploadInput) (*file.File, error)
		List(ctx context.Context, userID user.ID, folderID *folder.ID) (file.Files, error)
		Get(ctx context.Context, userID user.ID, id file.ID) (*file.File, error)
		SoftDelete(ctx context.Context, userID user.ID, id file.ID) error
		StreamDownload(ctx context.Context, userID user.ID, id file.ID) (*file.File, io.ReadCloser, error)
	}

	// StorageFacade is the single entry point of the cloud-storage surface.
	StorageFacade interface {
		MyFiles(ctx context.Context, userID user.ID, folderID *folder.ID) (file.Files, folder.Folders, error)
		StorageStats(ctx context.Context, userID user.ID) (quota.Report, error)
		Upload(ctx context.Context, userID user.ID, in *UploadInput) (*file.File, error)
		CreateFolder(ctx context.Context, userID user.ID, name string, parentID *folder.ID) (*folder.Folder, error)
		DeleteFile(ctx context.Context, userID user.ID, id file.ID) error
		DeleteFolder(ctx context.Context, userID user.ID, id folder.ID) error
		Download(ctx context.Context, userID user.ID, id file.ID) (*file.File, io.ReadCloser, error)
	}

	UploadInput struct {
		Body         io.Reader
		Size         int64
		OriginalName string
		MimeType     string
		FolderID     *folder.ID
	}
)
