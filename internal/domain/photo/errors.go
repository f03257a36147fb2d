package photo

import "errors"

var (
	ErrPhotoNotFound  = errors.New("photo not found")
	ErrNoProfileFound = errors.New("profile not found, create a profile first")
	ErrStaleOrder     = errors.New("photo list is out of date, refresh and try again")
	ErrStorageFailure = errors.New("storage unavailable, try again")
)
