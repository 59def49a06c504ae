package leave

import (
	"time"
)

// ShortLeave is an intra-day exit/return window, tracked independently of
// check-in/check-out. ReturnTime nil means the employee is still out; at
// most one open leave exists per employee at a time.
type ShortLeave struct {
	ID         string
	CompanyID  string
	EmployeeID string
	Date       time.Time // local calendar date at midnight
	ExitTime   time.Time // UTC
	ReturnTime *time.Time
	Reason     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Open reports whether the leave window is still open.
func (l ShortLeave) Open() bool {
	return l.ReturnTime == nil
}
