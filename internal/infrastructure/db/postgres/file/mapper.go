package file

import (
	domain "storage-api/internal/domain/file"
	"storage-api/internal/domain/folder"
	"storage-api/internal/domain/user"
)

func fromDBModel(model *File) *domain.File {
	f := &domain.File{
		ID:     domain.ID(model.ID),
		UserID: user.ID(model.UserID),

		OriginalName:  model.OriginalName,
		StoredLocator: model.StoredLocator,
		MimeType:      model.MimeType,
		SizeBytes:     model.SizeBytes,

		CreatedAt: model.CreatedAt,
		DeletedAt: model.DeletedAt,
	}
	if model.FolderID != nil {
		fid := folder.ID(*model.FolderID)
		f.FolderID = &fid
	}

	return f
}

func fromDBModels(models Files) domain.Files {
	fs := make(domain.Files, len(models))
	for idx, f := range models {
		fs[idx] = fromDBModel(f)
	}

	return fs
}
