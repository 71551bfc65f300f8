package imagestore

import "errors"

var (
	ErrUpload  = errors.New("imagestore: upload failed")
	ErrDelete  = errors.New("imagestore: delete failed")
	ErrForeign = errors.New("imagestore: url does not belong to this store")
)
