package storage

import "time"

type (
	File struct {
		ID           int64     `json:"id"`
		FolderID     *int64    `json:"folder_id"`
		OriginalName string    `json:"original_name"`
		MimeType     string    `json:"mime_type"`
		SizeBytes    int64     `json:"size_bytes"`
		CreatedAt    time.Time `json:"created_at"`
	}
	Files []File

	Folder struct {
		ID        int64     `json:"id"`
		ParentID  *int64    `json:"parent_id"`
		Name      string    `json:"name"`
		CreatedAt time.Time `json:"created_at"`
	}
	Folders []Folder

	MyFiles struct {
		Files   Files   `json:"files"`
		Folders Folders `json:"folders"`
	}

	Message struct {
		Message string `json:"message"`
	}
)
