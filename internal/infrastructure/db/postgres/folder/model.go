package folder

import "time"

type (
	Folder struct {
		ID       int64
		UserID   int64
		ParentID *int64
		Name     string

		CreatedAt time.Time
		DeletedAt *time.Time
	}
	Folders []*Folder
)
