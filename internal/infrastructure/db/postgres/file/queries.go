package file

const (
	SelectFiles = `
		SELECT id, user_id, folder_id, original_name, stored_locator, mime_type, size_bytes, created_at, deleted_at
		FROM files
		WHERE user_id = $1 AND folder_id IS NOT DISTINCT FROM $2 AND deleted_at IS NULL
		ORDER BY created_at DESC, id DESC
	`
	SelectFileByID = `
		SELECT id, user_id, folder_id, original_name, stored_locator, mime_type, size_bytes, created_at, deleted_at
		FROM files
		WHERE user_id = $1 AND id = $2 AND deleted_at IS NULL
	`
	SelectUsage = `
		SELECT COALESCE(SUM(size_bytes), 0)::BIGINT, COUNT(*)
		FROM files
		WHERE user_id = $1 AND deleted_at IS NULL
	`
	// LockUserQuota holds a per-user lock until the surrounding transaction ends.
	LockUserQuota = `SELECT pg_advisory_xact_lock($1)`
	InsertFile    = `
		INSERT INTO files (user_id, folder_id, original_name, stored_locator, mime_type, size_bytes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, folder_id, original_name, stored_locator, mime_type, size_bytes, created_at, deleted_at
	`
	SoftDeleteFileByID = `
		UPDATE files
		SET deleted_at = now()
		WHERE user_id = $1 AND id = $2 AND deleted_at IS NULL
	`
)
