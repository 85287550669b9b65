package performance

import "errors"

var (
	ErrHistoryUnavailable = errors.New("performance history is not configured")
	ErrInvalidRange       = errors.New("days must be between 1 and 365")
)
