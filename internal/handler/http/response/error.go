package response

import (
	"errors"
	"net/http"

	"github.com/geoattend/attendance-backend-go/internal/domain/attendance"
	"github.com/geoattend/attendance-backend-go/internal/domain/door"
	"github.com/geoattend/attendance-backend-go/internal/domain/geofence"
	"github.com/geoattend/attendance-backend-go/internal/domain/leave"
	"github.com/geoattend/attendance-backend-go/internal/domain/report"
	"github.com/geoattend/attendance-backend-go/internal/domain/schedule"
	"github.com/geoattend/attendance-backend-go/internal/pkg/keylock"
	"github.com/geoattend/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Attendance state conflicts
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Employee has already checked in for this date")
	case errors.Is(err, attendance.ErrNoActiveCheckIn):
		Conflict(w, "No active check-in found for this date")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Employee has already checked out for this date")
	case errors.Is(err, attendance.ErrOutsideGeofence):
		Forbidden(w, "Reported location is outside the allowed radius")
	case errors.Is(err, attendance.ErrEmergencyReasonRequired):
		BadRequest(w, "Emergency checkout requires a reason", nil)
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrUnknownEmployee):
		NotFound(w, "Employee not found")

	// Short leave errors
	case errors.Is(err, leave.ErrLeaveAlreadyOpen):
		Conflict(w, "An open short leave already exists for this employee")
	case errors.Is(err, leave.ErrLeaveNotOpen):
		Conflict(w, "Short leave is already closed")
	case errors.Is(err, leave.ErrLeaveNotFound):
		NotFound(w, "Short leave not found")
	case errors.Is(err, leave.ErrNotCheckedIn):
		Conflict(w, "Employee must be checked in to start a short leave")

	// Settings errors
	case errors.Is(err, schedule.ErrScheduleNotFound):
		NotFound(w, "No work schedule configured")
	case errors.Is(err, geofence.ErrGeofenceNotFound):
		NotFound(w, "No geofence configured")

	// Door and device errors
	case errors.Is(err, door.ErrDeviceNotFound):
		Unauthorized(w, "Unknown device")
	case errors.Is(err, door.ErrDeviceInactive):
		Unauthorized(w, "Device is deactivated")
	case errors.Is(err, door.ErrInvalidDeviceKey):
		Unauthorized(w, "Invalid device key")
	case errors.Is(err, door.ErrStaleDeviceClock):
		Conflict(w, "Reported device time is outside the accepted tolerance")

	// Report errors
	case errors.Is(err, report.ErrInvalidMonth):
		BadRequest(w, "Month must be between 1 and 12", nil)
	case errors.Is(err, report.ErrInvalidYear):
		BadRequest(w, "Year is out of range", nil)

	// Contention: the per-day lock could not be acquired in time
	case errors.Is(err, keylock.ErrLockTimeout):
		ServiceUnavailable(w, "The record is busy, retry shortly")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
