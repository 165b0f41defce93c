package services

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"storage-api/internal/application/ports"
	domain "storage-api/internal/domain/position"
)

type PositionService struct {
	positionRepository domain.Repository
	mCounter           *prometheus.CounterVec
}

func NewPositionService(
	positionRepository domain.Repository,
	mCounter *prometheus.CounterVec,
) ports.PositionService {
	return &PositionService{
		positionRepository: positionRepository,
		mCounter:           mCounter,
	}
}

func (ps *PositionService) FindPositions(ctx context.Context) (domain.Positions, error) {
	return ps.positionRepository.FetchPositions(ctx)
}

func (ps *PositionService) FindPosition(ctx context.Context, id domain.ID) (*domain.Position, error) {
	p, err := ps.positionRepository.FetchPositionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPositionNotFound
	}

	return p, nil
}

func (ps *PositionService) CreatePosition(ctx context.Context, p domain.Position) (*domain.Position, error) {
	out, err := ps.positionRepository.CreatePosition(ctx, p)
	if err != nil {
		if errors.Is(err, domain.ErrCodeTaken) {
			return nil, ErrPositionCodeExists
		}
		return nil, err
	}

	ps.mCounter.WithLabelValues("positions_created_total").Inc()

	return out, nil
}

func (ps *PositionService) UpdatePosition(ctx context.Context, id domain.ID, patch domain.Patch) (*domain.Position, error) {
	out, err := ps.positionRepository.UpdatePosition(ctx, id, patch)
	if err != nil {
		if errors.Is(err, domain.ErrCodeTaken) {
			return nil, ErrPositionCodeExists
		}
		return nil, err
	}
	if out == nil {
		return nil, ErrPositionNotFound
	}

	ps.mCounter.WithLabelValues("positions_updated_total").Inc()

	return out, nil
}

func (ps *PositionService) DeletePosition(ctx context.Context, id domain.ID) error {
	ok, err := ps.positionRepository.DeletePosition(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPositionNotFound
	}

	ps.mCounter.WithLabelValues("positions_deleted_total").Inc()

	return nil
}
