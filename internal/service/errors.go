package service

import "errors"

var (
	ErrUnauthorized      = errors.New("invalid token")
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrConflict          = errors.New("conflict")
)
