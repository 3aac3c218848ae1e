package types

import "errors"

// Standard errors returned by the storage layer. The service layer converts
// these into result envelopes; they never cross the public service surface
// as Go errors.
var (
	ErrNotFound           = errors.New("not found")
	ErrItemNotFound       = errors.New("item not found")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrInvalidID          = errors.New("invalid ID")
	ErrInvalidData        = errors.New("invalid data")
	ErrInvalidFilter      = errors.New("invalid filter")
)

// Backend lifecycle errors.
var (
	ErrBackendDetached = errors.New("backend is detached")
	ErrAlreadyAttached = errors.New("backend is already attached")
)

// Definition validation errors.
var (
	ErrEmptyFieldName     = errors.New("field name must not be empty")
	ErrDuplicateFieldName = errors.New("duplicate field name")
	ErrInvalidFieldType   = errors.New("invalid field type")
)
