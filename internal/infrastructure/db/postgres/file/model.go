package file

import "time"

type (
	File struct {
		ID       int64
		UserID   int64
		FolderID *int64

		OriginalName  string
		StoredLocator string
		MimeType      string
		SizeBytes     int64

		CreatedAt time.Time
		DeletedAt *time.Time
	}
	Files []*File
)
