package inventory

import "errors"

var (
	ErrNotFound          = errors.New("item not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrAlreadyDecided    = errors.New("requisition already decided")
)
