package leave

import (
	"time"

	"github.com/geoattend/attendance-backend-go/internal/pkg/validator"
)

type StartLeaveRequest struct {
	EmployeeID string    `json:"employee_id"`
	ExitTime   time.Time `json:"exit_time"` // UTC; zero value means "now"
	Reason     string    `json:"reason"`
}

func (r *StartLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EndLeaveRequest struct {
	LeaveID    string    `json:"leave_id"`
	ReturnTime time.Time `json:"return_time"` // UTC; zero value means "now"
}

func (r *EndLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_id",
			Message: "leave_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LeaveFilter struct {
	EmployeeID string
	From       string // "2006-01-02", inclusive
	To         string // "2006-01-02", inclusive
}

type LeaveResponse struct {
	ID         string     `json:"id"`
	EmployeeID string     `json:"employee_id"`
	Date       string     `json:"date"`
	ExitTime   time.Time  `json:"exit_time"`
	ReturnTime *time.Time `json:"return_time"`
	Reason     string     `json:"reason"`
	Open       bool       `json:"open"`
}

func NewLeaveResponse(l ShortLeave) LeaveResponse {
	return LeaveResponse{
		ID:         l.ID,
		EmployeeID: l.EmployeeID,
		Date:       l.Date.Format("2006-01-02"),
		ExitTime:   l.ExitTime,
		ReturnTime: l.ReturnTime,
		Reason:     l.Reason,
		Open:       l.Open(),
	}
}
