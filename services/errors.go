package services

import "errors"

// Sentinel errors returned by the service layer. Controllers map these to
// HTTP status codes and response envelopes.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrConflict     = errors.New("resource already exists")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidState = errors.New("operation not allowed in current state")
)
