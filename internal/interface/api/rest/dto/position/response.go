package position

import "time"

type (
	Position struct {
		ID        int64     `json:"position_id"`
		Code      string    `json:"position_code"`
		Name      string    `json:"position_name"`
		CreatedAt time.Time `json:"created_at"`
		UpdatedAt time.Time `json:"updated_at"`
	}
	Positions []Position
)
