package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/file"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/leave"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/payslip"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/performance"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/project"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/task"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/user"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/pkg/backend"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Upstream answered with an error
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		upstreamError(w, apiErr)
		return
	}

	switch {
	// Session errors
	case errors.Is(err, user.ErrUnauthenticated),
		errors.Is(err, user.ErrUserIDNotInClaims),
		errors.Is(err, backend.ErrNoToken):
		Unauthorized(w, "Authentication required")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, backend.ErrUnavailable):
		ServiceUnavailable(w, "Backend is unavailable, please try again")

	// Employee record missing
	case errors.Is(err, user.ErrEmployeeNotFound),
		errors.Is(err, attendance.ErrEmployeeNotFound),
		errors.Is(err, leave.ErrEmployeeNotFound):
		BadRequest(w, err.Error(), nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrNoActiveRecord):
		BadRequest(w, "No active check-in record found", nil)
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrLocationRequired):
		BadRequest(w, "Location is required for check-in", nil)
	case errors.Is(err, attendance.ErrOutsideAllowedRadius):
		Forbidden(w, "You are outside the allowed radius")

	// Task domain errors
	case errors.Is(err, task.ErrTaskNotFound):
		NotFound(w, "Task not found")
	case errors.Is(err, task.ErrSubtaskNotFound):
		NotFound(w, "Subtask not found")
	case errors.Is(err, task.ErrNoActiveTimeEntry):
		BadRequest(w, "No running timer found for this task", nil)
	case errors.Is(err, task.ErrTimerAlreadyActive):
		Conflict(w, "A timer is already running for this task")
	case errors.Is(err, task.ErrInvalidStatus):
		BadRequest(w, "Invalid task status", nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, err.Error(), nil)

	// Project domain errors
	case errors.Is(err, project.ErrProjectNotFound):
		NotFound(w, "Project not found")

	// Payslip domain errors
	case errors.Is(err, payslip.ErrPayslipNotFound):
		NotFound(w, "Payslip not found")

	// Performance domain errors
	case errors.Is(err, performance.ErrInvalidRange):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, performance.ErrHistoryUnavailable):
		NotFound(w, "Performance history is not enabled")

	// File domain errors
	case errors.Is(err, file.ErrInvalidFileType),
		errors.Is(err, file.ErrEmptyFile):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, file.ErrFileTooLarge):
		PayloadTooLarge(w, err.Error())

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}

// upstreamError keeps the backend's message. Auth and not-found answers
// keep their status, everything else is a bad gateway.
func upstreamError(w http.ResponseWriter, apiErr *backend.APIError) {
	switch apiErr.StatusCode {
	case http.StatusUnauthorized:
		Unauthorized(w, apiErr.Message)
	case http.StatusForbidden:
		Forbidden(w, apiErr.Message)
	case http.StatusNotFound:
		NotFound(w, apiErr.Message)
	default:
		slog.Warn("Backend request failed", "status", apiErr.StatusCode, "message", apiErr.Message)
		BadGateway(w, apiErr.Message)
	}
}
