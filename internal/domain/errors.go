package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrInvalidTransition indicates an order status change the
	// lifecycle table does not allow.
	ErrInvalidTransition = errors.New("invalid order status transition")
)
