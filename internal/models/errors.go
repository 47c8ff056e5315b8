package models

import "errors"

// Error classes shared by the store and the services. Specific errors wrap
// one of these so callers can branch with errors.Is on either level.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrStorage    = errors.New("storage failure")
)
