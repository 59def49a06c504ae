package schedule

import (
	"time"
)

// WorkSchedule is a company's active schedule. One active version per
// company; an admin update replaces it in place.
type WorkSchedule struct {
	CompanyID                 string
	StartTime                 string // local wall clock, "15:04"
	EndTime                   string // local wall clock, "15:04"
	Timezone                  string // IANA name, e.g. "Asia/Dhaka"
	SuperLateThresholdMinutes int
	UpdatedAt                 time.Time
}

// Resolved is a WorkSchedule pinned to a concrete instant: the schedule's
// wall-clock bounds materialized in the company's location for the local
// day the instant falls on.
type Resolved struct {
	Schedule    WorkSchedule
	Location    *time.Location
	LocalTime   time.Time // the queried instant in company-local time
	LocalDate   time.Time // local calendar date at midnight
	DayStart    time.Time // schedule start on LocalDate, company-local
	DayEnd      time.Time // schedule end on LocalDate, company-local
	DegradedUTC bool      // true when no schedule existed and defaults applied
}

// WithinWorkHours reports whether the resolved instant falls inside the
// scheduled working window.
func (r Resolved) WithinWorkHours() bool {
	return !r.LocalTime.Before(r.DayStart) && !r.LocalTime.After(r.DayEnd)
}
