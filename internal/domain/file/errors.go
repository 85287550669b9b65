package file

import "errors"

var (
	ErrInvalidFileType = errors.New("invalid file type: only jpg, jpeg, png allowed")
	ErrFileTooLarge    = errors.New("file exceeds the maximum upload size")
	ErrEmptyFile       = errors.New("file is empty")
)
