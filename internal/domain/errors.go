package domain

import "errors"

// Domain errors (no external dependencies).
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnitSold       = errors.New("inventory unit already sold")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrConflict       = errors.New("conflict with current state")
	ErrExtraction     = errors.New("document extraction failed")
	ErrReconciliation = errors.New("could not reconcile extracted fields")
)
