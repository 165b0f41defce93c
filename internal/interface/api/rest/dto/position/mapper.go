package position

import (
	"strings"

	domain "storage-api/internal/domain/position"
)

func ToResponsePosition(p domain.Position) Position {
	return Position{
		ID:        int64(p.ID),
		Code:      p.Code,
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func ToResponsePositions(ps domain.Positions) Positions {
	out := make(Positions, len(ps))
	for idx, p := range ps {
		out[idx] = ToResponsePosition(*p)
	}

	return out
}

func ToDomainPosition(r CreateRequest) domain.Position {
	return domain.Position{
		Code: strings.TrimSpace(r.PositionCode),
		Name: strings.TrimSpace(r.PositionName),
	}
}

func ToDomainPatch(r PatchRequest) domain.Patch {
	var p domain.Patch
	if r.PositionCode != nil {
		v := strings.TrimSpace(*r.PositionCode)
		p.Code = &v
	}
	if r.PositionName != nil {
		v := strings.TrimSpace(*r.PositionName)
		p.Name = &v
	}

	return p
}
