package serviceerrors

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrOutOfStock       = errors.New("out of stock")
	ErrContextCanceled  = errors.New("context canceled")
	ErrDeadlineExceeded = errors.New("deadline exceeded")
)
