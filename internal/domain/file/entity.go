package file

import (
	"time"

	"storage-api/internal/domain/folder"
	"storage-api/internal/domain/user"
)

type (
	ID   int64
	File struct {
		ID       ID
		UserID   user.ID
		FolderID *folder.ID

		OriginalName  string
		StoredLocator string
		MimeType      string
		SizeBytes     int64

		CreatedAt time.Time
		DeletedAt *time.Time
	}
	Files []*File

	// Usage is the live (non-deleted) footprint of one user.
	Usage struct {
		UsedBytes int64
		FileCount int64
	}

	// BlobDeletion is a blob delete that failed and has to be retried
	// out of band.
	BlobDeletion struct {
		Locator string  `json:"locator"`
		FileID  ID      `json:"file_id"`
		UserID  user.ID `json:"user_id"`
		Attempt int     `json:"attempt"`
		Reason  string  `json:"reason"`
	}
)
