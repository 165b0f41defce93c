package position

type (
	CreateRequest struct {
		PositionCode string `json:"positionCode"`
		PositionName string `json:"positionName"`
	}
	PatchRequest struct {
		PositionCode *string `json:"positionCode"`
		PositionName *string `json:"positionName"`
	}
)
