package leave

import "errors"

// Short-leave domain errors
var (
	ErrLeaveAlreadyOpen = errors.New("an open short leave already exists for this employee")
	ErrLeaveNotOpen     = errors.New("short leave is not open")
	ErrLeaveNotFound    = errors.New("short leave not found")
	ErrNotCheckedIn     = errors.New("employee must be checked in to start a short leave")
)
