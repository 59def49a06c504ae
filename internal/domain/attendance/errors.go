package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in errors
	ErrAlreadyCheckedIn = errors.New("employee has already checked in for this date")
	ErrNoActiveCheckIn  = errors.New("no active check-in found for this date")
	ErrAlreadyCheckedOut = errors.New("employee has already checked out for this date")

	// Geofence errors
	ErrOutsideGeofence = errors.New("reported location is outside the allowed radius")

	// Emergency checkout errors
	ErrEmergencyReasonRequired = errors.New("emergency checkout requires a reason")

	// General errors
	ErrRecordNotFound = errors.New("attendance record not found")
	ErrUnknownEmployee = errors.New("employee not found")
)
