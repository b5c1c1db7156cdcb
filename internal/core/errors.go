package core

import (
	"errors"

	"github.com/vskvj3/idxlist/internal/datastructures"
)

var (
	ErrInvalidType    = errors.New("invalid value type")
	ErrMissingField   = errors.New("missing field")
	ErrUnknownCommand = errors.New("unknown command")
	ErrMalformed      = errors.New("malformed request")
)

// ErrorCode maps an error returned by HandleCommand to the short code
// carried in error responses.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidType):
		return "TYPE"
	case errors.Is(err, datastructures.ErrValueTooLong):
		return "SIZE_LIMIT"
	case errors.Is(err, datastructures.ErrListFull):
		return "CAPACITY"
	case errors.Is(err, datastructures.ErrEmptyList):
		return "EMPTY"
	case errors.Is(err, datastructures.ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, datastructures.ErrDuplicate):
		return "DUPLICATE"
	case errors.Is(err, ErrMissingField), errors.Is(err, ErrUnknownCommand), errors.Is(err, ErrMalformed):
		return "BAD_REQUEST"
	default:
		return "INTERNAL"
	}
}
