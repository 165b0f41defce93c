package position

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domain "storage-api/internal/domain/position"
	"storage-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) domain.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchPositions(ctx context.Context) (domain.Positions, error) {
	rows, err := r.db.Query(ctx, SelectPositions)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ps Positions
	for rows.Next() {
		p := new(Position)

		if err = rows.Scan(
			&p.ID,
			&p.Code,
			&p.Name,

			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, err
		}

		ps = append(ps, p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(ps), nil
}

func (r *Repository) FetchPositionByID(ctx context.Context, id domain.ID) (*domain.Position, error) {
	p, err := scanPosition(r.db.QueryRow(ctx, SelectPositionByID, int64(id)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(p), nil
}

func (r *Repository) CreatePosition(ctx context.Context, req domain.Position) (*domain.Position, error) {
	p, err := scanPosition(r.db.QueryRow(ctx, InsertPosition, req.Code, req.Name))
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, domain.ErrCodeTaken
		}
		return nil, err
	}

	return fromDBModel(p), nil
}

func (r *Repository) UpdatePosition(ctx context.Context, id domain.ID, patch domain.Patch) (*domain.Position, error) {
	p, err := scanPosition(r.db.QueryRow(ctx, UpdatePositionByID, patch.Code, patch.Name, int64(id)))
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, domain.ErrCodeTaken
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(p), nil
}

func (r *Repository) DeletePosition(ctx context.Context, id domain.ID) (bool, error) {
	tag, err := r.db.Exec(ctx, DeletePositionByID, int64(id))
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

func scanPosition(row pgx.Row) (*Position, error) {
	p := new(Position)
	err := row.Scan(
		&p.ID,
		&p.Code,
		&p.Name,

		&p.CreatedAt,
		&p.UpdatedAt,
	)

	return p, err
}
