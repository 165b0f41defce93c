package position

const (
	SelectPositions = `
		SELECT position_id, position_code, position_name, created_at, updated_at
		FROM positions
		ORDER BY position_id
	`
	SelectPositionByID = `
		SELECT position_id, position_code, position_name, created_at, updated_at
		FROM positions
		WHERE position_id = $1
	`
	InsertPosition = `
		INSERT INTO positions (position_code, position_name)
		VALUES ($1, $2)
		RETURNING position_id, position_code, position_name, created_at, updated_at
	`
	UpdatePositionByID = `
		UPDATE positions
		SET position_code = COALESCE($1, position_code),
		    position_name = COALESCE($2, position_name),
		    updated_at = now()
		WHERE position_id = $3
		RETURNING position_id, position_code, position_name, created_at, updated_at
	`
	DeletePositionByID = `DELETE FROM positions WHERE position_id = $1`
)
