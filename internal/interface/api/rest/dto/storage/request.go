package storage

type CreateFolderRequest struct {
	Name     string `json:"name"`
	ParentID *int64 `json:"parentId"`
}
