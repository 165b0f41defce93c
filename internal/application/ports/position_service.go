package ports

import (
	"context"

	"storage-api/internal/domain/position"
)

type PositionService interface {
	FindPositions(ctx context.Context) (position.Positions, error)
	FindPosition(ctx context.Context, id position.ID) (*position.Position, error)
	CreatePosition(ctx context.Context, p position.Position) (*position.Position, error)
	UpdatePosition(ctx context.Context, id position.ID, patch position.Patch) (*position.Position, error)
	DeletePosition(ctx context.Context, id position.ID) error
}
