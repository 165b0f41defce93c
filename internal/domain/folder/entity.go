package folder

import (
	"errors"
	"time"

	"storage-api/internal/domain/user"
)

// ErrNameTaken is returned by the repository when a live sibling already
// carries the name.
var ErrNameTaken = errors.New("folder name taken")

type (
	ID     int64
	Folder struct {
		ID       ID
		UserID   user.ID
		ParentID *ID
		Name     string

		CreatedAt time.Time
		DeletedAt *time.Time
	}
	Folders []*Folder
)
