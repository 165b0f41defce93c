package folder

import (
	domain "storage-api/internal/domain/folder"
	"storage-api/internal/domain/user"
)

func fromDBModel(model *Folder) *domain.Folder {
	f := &domain.Folder{
		ID:     domain.ID(model.ID),
		UserID: user.ID(model.UserID),
		Name:   model.Name,

		CreatedAt: model.CreatedAt,
		DeletedAt: model.DeletedAt,
	}
	if model.ParentID != nil {
		parent := domain.ID(*model.ParentID)
		f.ParentID = &parent
	}

	return f
}

func fromDBModels(models Folders) domain.Folders {
	fs := make(domain.Folders, len(models))
	for idx, f := range models {
		fs[idx] = fromDBModel(f)
	}

	return fs
}

// ToNullableID converts an optional folder id into a query argument.
func ToNullableID(id *domain.ID) *int64 {
	if id == nil {
		return nil
	}
	v := int64(*id)
	return &v
}
