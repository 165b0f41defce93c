package folder

const (
	SelectFolders = `
		SELECT id, user_id, parent_id, name, created_at, deleted_at
		FROM folders
		WHERE user_id = $1 AND parent_id IS NOT DISTINCT FROM $2 AND deleted_at IS NULL
		ORDER BY name
	`
	SelectFolderByID = `
		SELECT id, user_id, parent_id, name, created_at, deleted_at
		FROM folders
		WHERE user_id = $1 AND id = $2 AND deleted_at IS NULL
	`
	SelectNameExists = `
		SELECT EXISTS (
			SELECT 1 FROM folders
			WHERE user_id = $1 AND parent_id IS NOT DISTINCT FROM $2 AND name = $3 AND deleted_at IS NULL
		)
	`
	InsertFolder = `
		INSERT INTO folders (user_id, parent_id, name)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, parent_id, name, created_at, deleted_at
	`
	SoftDeleteFolderByID = `
		UPDATE folders
		SET deleted_at = now()
		WHERE user_id = $1 AND id = $2 AND deleted_at IS NULL
	`
)
