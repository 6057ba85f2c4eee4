package profiles

import "errors"

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrDuplicateId     = errors.New("duplicate profile id")
)
