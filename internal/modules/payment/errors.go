package payment

import "errors"

var (
	ErrNotFound = errors.New("payment not found")
	ErrGateway  = errors.New("payment gateway failure")
)
