package report

import (
	"time"
)

// MonthlySummary is a purely derived per-month rollup. It is never
// persisted; every query recomputes it from the daily records.
type MonthlySummary struct {
	EmployeeID   string `json:"employee_id"`
	Year         int    `json:"year"`
	Month        int    `json:"month"`
	ExpectedDays int    `json:"expected_days"`
	Present      int    `json:"present"`
	Late         int    `json:"late"`
	SuperLate    int    `json:"super_late"`
	Absent       int    `json:"absent"`
}

// WorkWeek is the business-day rule used for absence inference: the set
// of weekdays counted as expected work days.
type WorkWeek map[time.Weekday]bool

// DefaultWorkWeek is Monday through Friday.
func DefaultWorkWeek() WorkWeek {
	return WorkWeek{
		time.Monday:    true,
		time.Tuesday:   true,
		time.Wednesday: true,
		time.Thursday:  true,
		time.Friday:    true,
	}
}

// IsBusinessDay reports whether the weekday counts toward expected days.
func (w WorkWeek) IsBusinessDay(d time.Weekday) bool {
	return w[d]
}
