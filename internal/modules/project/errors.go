package project

import "errors"

var (
	ErrNotFound      = errors.New("project not found")
	ErrTaskNotFound  = errors.New("task not found")
	ErrUserNotFound  = errors.New("user not found")
	ErrWrongUserRole = errors.New("user role does not match assignment")
	ErrProjectClosed = errors.New("project is finished")
)
