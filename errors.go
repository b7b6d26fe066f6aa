package ldif

import "errors"

var (
	ErrMissingColon      = errors.New("ldif: attribute line has no colon separator")
	ErrEmptyKey          = errors.New("ldif: empty attribute key")
	ErrEmptyOption       = errors.New("ldif: empty attribute option")
	ErrInvalidBase64     = errors.New("ldif: invalid base64 value")
	ErrInvalidValue      = errors.New("ldif: invalid attribute value")
	ErrLineWidth         = errors.New("ldif: line width must be at least 2")
	ErrVersion           = errors.New("ldif: version must not be negative")
	ErrCompression       = errors.New("ldif: unknown compression")
	ErrAttributeNotFound = errors.New("ldif: attribute not found")
	ErrLimitExceeded     = errors.New("ldif: limit exceeded")
)
