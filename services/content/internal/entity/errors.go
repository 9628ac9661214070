package entity

import "errors"

// Handlers map these with errors.Is; usecases wrap them with detail.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrUpload     = errors.New("upload failed")
	ErrAuth       = errors.New("authentication failed")
	ErrTooLarge   = errors.New("request body too large")
)
