package file

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domain "storage-api/internal/domain/file"
	"storage-api/internal/domain/folder"
	"storage-api/internal/domain/user"
	"storage-api/internal/infrastructure/db/postgres"
	folderDB "storage-api/internal/infrastructure/db/postgres/folder"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) domain.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchFiles(ctx context.Context, userID user.ID, folderID *folder.ID) (domain.Files, error) {
	rows, err := r.db.Query(ctx, SelectFiles, int64(userID), folderDB.ToNullableID(folderID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fs Files
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, err
		}

		fs = append(fs, f)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(fs), nil
}

func (r *Repository) FetchFile(ctx context.Context, userID user.ID, id domain.ID) (*domain.File, error) {
	f, err := scanFile(r.db.QueryRow(ctx, SelectFileByID, int64(userID), int64(id)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(f), nil
}

func (r *Repository) FetchUsage(ctx context.Context, userID user.ID) (domain.Usage, error) {
	return fetchUsage(ctx, r.db, userID)
}

func (r *Repository) InsertWithinQuota(ctx context.Context, req domain.File, ceiling int64) (*domain.File, error) {
	var rec *File

	err := postgres.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, LockUserQuota, int64(req.UserID)); err != nil {
			return err
		}

		usage, err := fetchUsage(ctx, tx, req.UserID)
		if err != nil {
			return err
		}
		if usage.UsedBytes+req.SizeBytes > ceiling {
			return domain.ErrQuotaExceeded
		}

		rec, err = scanFile(tx.QueryRow(
			ctx,
			InsertFile,
			int64(req.UserID), folderDB.ToNullableID(req.FolderID),
			req.OriginalName, req.StoredLocator, req.MimeType, req.SizeBytes,
		))
		return err
	})
	if err != nil {
		return nil, err
	}

	return fromDBModel(rec), nil
}

func (r *Repository) SoftDeleteFile(ctx context.Context, userID user.ID, id domain.ID) (bool, error) {
	tag, err := r.db.Exec(ctx, SoftDeleteFileByID, int64(userID), int64(id))
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func fetchUsage(ctx context.Context, q rowQuerier, userID user.ID) (domain.Usage, error) {
	var u domain.Usage
	err := q.QueryRow(ctx, SelectUsage, int64(userID)).Scan(&u.UsedBytes, &u.FileCount)

	return u, err
}

func scanFile(row pgx.Row) (*File, error) {
	f := new(File)
	err := row.Scan(
		&f.ID,
		&f.UserID,
		&f.FolderID,

		&f.OriginalName,
		&f.StoredLocator,
		&f.MimeType,
		&f.SizeBytes,

		&f.CreatedAt,
		&f.DeletedAt,
	)

	return f, err
}
