package backend

import (
	"errors"
	"fmt"
)

var (
	ErrNoToken     = errors.New("no authentication token available")
	ErrUnavailable = errors.New("backend unavailable")
)

// APIError is a non-2xx answer from the backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend API error [%d]: %s", e.StatusCode, e.Message)
}
