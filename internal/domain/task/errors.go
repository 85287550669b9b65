package task

import "errors"

// Task domain errors
var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrSubtaskNotFound    = errors.New("subtask not found")
	ErrNoActiveTimeEntry  = errors.New("no running timer found for this task")
	ErrTimerAlreadyActive = errors.New("a timer is already running for this task")
	ErrInvalidStatus      = errors.New("invalid task status")
)
