package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidOTP         = errors.New("invalid or expired code")
	ErrUnauthorized       = errors.New("unauthorized")
)
