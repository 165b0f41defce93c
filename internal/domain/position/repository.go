package position

import "context"

type Repository interface {
	FetchPositions(ctx context.Context) (Positions, error)
	FetchPositionByID(ctx context.Context, id ID) (*Position, error)
	CreatePosition(ctx context.Context, req Position) (*Position, error)
	UpdatePosition(ctx context.Context, id ID, patch Patch) (*Position, error)
	DeletePosition(ctx context.Context, id ID) (bool, error)
}
