package schedule

import "errors"

// Schedule domain errors
var (
	ErrScheduleNotFound = errors.New("no work schedule configured for company")
	ErrInvalidTimezone  = errors.New("unknown IANA timezone name")
	ErrStartAfterEnd    = errors.New("schedule start time must be before end time")
)
