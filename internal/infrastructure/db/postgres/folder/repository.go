package folder

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domain "storage-api/internal/domain/folder"
	"storage-api/internal/domain/user"
	"storage-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) domain.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchFolders(ctx context.Context, userID user.ID, parentID *domain.ID) (domain.Folders, error) {
	rows, err := r.db.Query(ctx, SelectFolders, int64(userID), ToNullableID(parentID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fs Folders
	for rows.Next() {
		f := new(Folder)

		if err = rows.Scan(
			&f.ID,
			&f.UserID,
			&f.ParentID,
			&f.Name,

			&f.CreatedAt,
			&f.DeletedAt,
		); err != nil {
			return nil, err
		}

		fs = append(fs, f)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(fs), nil
}

func (r *Repository) FetchFolder(ctx context.Context, userID user.ID, id domain.ID) (*domain.Folder, error) {
	f, err := scanFolder(r.db.QueryRow(ctx, SelectFolderByID, int64(userID), int64(id)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(f), nil
}

func (r *Repository) NameExists(ctx context.Context, userID user.ID, parentID *domain.ID, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, SelectNameExists, int64(userID), ToNullableID(parentID), name).Scan(&exists)

	return exists, err
}

func (r *Repository) CreateFolder(ctx context.Context, req domain.Folder) (*domain.Folder, error) {
	f, err := scanFolder(r.db.QueryRow(ctx, InsertFolder, int64(req.UserID), ToNullableID(req.ParentID), req.Name))
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, domain.ErrNameTaken
		}
		return nil, err
	}

	return fromDBModel(f), nil
}

func (r *Repository) SoftDeleteFolder(ctx context.Context, userID user.ID, id domain.ID) (bool, error) {
	tag, err := r.db.Exec(ctx, SoftDeleteFolderByID, int64(userID), int64(id))
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

func scanFolder(row pgx.Row) (*Folder, error) {
	f := new(Folder)
	err := row.Scan(
		&f.ID,
		&f.UserID,
		&f.ParentID,
		&f.Name,

		&f.CreatedAt,
		&f.DeletedAt,
	)

	return f, err
}
