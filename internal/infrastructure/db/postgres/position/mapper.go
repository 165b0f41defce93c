package position

import (
	domain "storage-api/internal/domain/position"
)

func fromDBModel(model *Position) *domain.Position {
	return &domain.Position{
		ID:   domain.ID(model.ID),
		Code: model.Code,
		Name: model.Name,

		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func fromDBModels(models Positions) domain.Positions {
	ps := make(domain.Positions, len(models))
	for idx, p := range models {
		ps[idx] = fromDBModel(p)
	}

	return ps
}
