package service

import "errors"

var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrInvalidComment         = errors.New("invalid comment")
	ErrAssociatedPostNotFound = errors.New("associated feedback post not found")
)
