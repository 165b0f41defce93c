package file

import (
	"context"
	"errors"

	"storage-api/internal/domain/folder"
	"storage-api/internal/domain/user"
)

// ErrQuotaExceeded is returned by InsertWithinQuota when the insert would
// push the owner past the ceiling.
var ErrQuotaExceeded = errors.New("quota exceeded")

type Repository interface {
	FetchFiles(ctx context.Context, userID user.ID, folderID *folder.ID) (Files, error)
	FetchFile(ctx context.Context, userID user.ID, id ID) (*File, error)
	FetchUsage(ctx context.Context, userID user.ID) (Usage, error)
	// InsertWithinQuota serializes concurrent inserts of one owner, re-checks
	// the usage against ceiling and inserts the row only if it still fits.
	InsertWithinQuota(ctx context.Context, req File, ceiling int64) (*File, error)
	SoftDeleteFile(ctx context.Context, userID user.ID, id ID) (bool, error)
}
