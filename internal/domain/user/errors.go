package user

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrEmployeeNotFound  = errors.New("employee information not found")
	ErrUnauthenticated   = errors.New("authentication required")
	ErrUserIDNotInClaims = errors.New("user id not found in token claims")
)
