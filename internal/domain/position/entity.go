package position

import (
	"errors"
	"time"
)

// ErrCodeTaken is returned by the repository when position_code collides.
var ErrCodeTaken = errors.New("position code taken")

type (
	ID       int64
	Position struct {
		ID   ID
		Code string
		Name string

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Positions []*Position

	// Patch carries a partial update; nil fields are left unchanged.
	Patch struct {
		Code *string
		Name *string
	}
)
