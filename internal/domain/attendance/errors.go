package attendance

import "errors"

// Attendance domain errors
var (
	ErrEmployeeNotFound     = errors.New("employee information is missing, please contact support")
	ErrNoActiveRecord       = errors.New("no active check-in record found")
	ErrOutsideAllowedRadius = errors.New("you are outside the allowed radius")
	ErrLocationRequired     = errors.New("location is required for check-in")
	ErrAlreadyCheckedIn     = errors.New("already checked in today")
)
