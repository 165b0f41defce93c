package services

import "errors"

var (
	ErrPositionNotFound   = errors.New("position not found")
	ErrPositionCodeExists = errors.New("position with this code already exists")

	ErrFileNotFound        = errors.New("file not found")
	ErrFolderNotFound      = errors.New("folder not found")
	ErrDuplicateFolderName = errors.New("folder with this name already exists")
	ErrQuotaExceeded       = errors.New("storage quota exceeded")
	ErrBlobStore           = errors.New("failed to reach file storage")
	ErrNoFile              = errors.New("no file uploaded")
	ErrBlockedFileType     = errors.New("executable files are not allowed")
	ErrInvalidInput        = errors.New("invalid input")
)
