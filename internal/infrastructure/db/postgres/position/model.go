package position

import "time"

type (
	Position struct {
		ID   int64
		Code string
		Name string

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Positions []*Position
)
