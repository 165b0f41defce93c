package folder

import (
	"context"

	"storage-api/internal/domain/user"
)

// Repository stores the per-user folder tree. A nil parent addresses the
// top level and matches only folders whose parent is null.
type Repository interface {
	FetchFolders(ctx context.Context, userID user.ID, parentID *ID) (Folders, error)
	FetchFolder(ctx context.Context, userID user.ID, id ID) (*Folder, error)
	NameExists(ctx context.Context, userID user.ID, parentID *ID, name string) (bool, error)
	CreateFolder(ctx context.Context, req Folder) (*Folder, error)
	SoftDeleteFolder(ctx context.Context, userID user.ID, id ID) (bool, error)
}
