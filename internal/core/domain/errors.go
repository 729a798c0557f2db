package domain

import "errors"

var (
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrForbidden          = errors.New("access forbidden")
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnexpectedShape    = errors.New("unexpected response shape")
	ErrBackendUnavailable = errors.New("backend unavailable")
	ErrDuplicateRequest   = errors.New("duplicate request")
)
