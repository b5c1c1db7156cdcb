package datastructures

import "errors"

var (
	ErrValueTooLong = errors.New("value exceeds maximum length")
	ErrListFull     = errors.New("list is full")
	ErrDuplicate    = errors.New("value already in list")
	ErrEmptyList    = errors.New("list is empty")
	ErrNotFound     = errors.New("value not found in list")
)
