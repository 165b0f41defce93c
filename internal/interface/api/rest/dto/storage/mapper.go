package storage

import (
	"storage-api/internal/domain/file"
	"storage-api/internal/domain/folder"
)

func ToResponseFile(f file.File) File {
	out := File{
		ID:           int64(f.ID),
		OriginalName: f.OriginalName,
		MimeType:     f.MimeType,
		SizeBytes:    f.SizeBytes,
		CreatedAt:    f.CreatedAt,
	}
	if f.FolderID != nil {
		v := int64(*f.FolderID)
		out.FolderID = &v
	}

	return out
}

func ToResponseFiles(fs file.Files) Files {
	out := make(Files, len(fs))
	for idx, f := range fs {
		out[idx] = ToResponseFile(*f)
	}

	return out
}

func ToResponseFolder(f folder.Folder) Folder {
	out := Folder{
		ID:        int64(f.ID),
		Name:      f.Name,
		CreatedAt: f.CreatedAt,
	}
	if f.ParentID != nil {
		v := int64(*f.ParentID)
		out.ParentID = &v
	}

	return out
}

func ToResponseFolders(fs folder.Folders) Folders {
	out := make(Folders, len(fs))
	for idx, f := range fs {
		out[idx] = ToResponseFolder(*f)
	}

	return out
}

func ToResponseMyFiles(files file.Files, folders folder.Folders) MyFiles {
	return MyFiles{
		Files:   ToResponseFiles(files),
		Folders: ToResponseFolders(folders),
	}
}
