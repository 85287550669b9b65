package leave

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee information not found")
	ErrInvalidDateRange = errors.New("end_date must not be before start_date")
)
