package attendance

import (
	"context"
)

// Service drives the per-employee-per-day attendance state machine:
// NoRecord -> CheckedIn -> CheckedOut. It is the single authoritative
// implementation of status classification; callers never recompute status.
type Service interface {
	// CheckIn records a punch-in and classifies it against the company
	// schedule. Non-admin sources are rejected with ErrAlreadyCheckedIn
	// when a record already exists for the local day.
	CheckIn(ctx context.Context, companyID string, req CheckInRequest) (RecordResponse, error)

	// CheckOut closes the day's open record. Requires a prior check-in
	// unless the source is manual_admin, which may create a
	// checkout-only correction.
	CheckOut(ctx context.Context, companyID string, req CheckOutRequest) (RecordResponse, error)

	// SetLateReason patches the late reason on an existing record,
	// leaving status and times untouched.
	SetLateReason(ctx context.Context, companyID string, req LateReasonRequest) (RecordResponse, error)

	// GetRecord returns the daily record for an employee on a local date.
	GetRecord(ctx context.Context, companyID, employeeID, date string) (RecordResponse, error)

	// ListRecords returns records in an inclusive local date range.
	ListRecords(ctx context.Context, companyID string, filter HistoryFilter) ([]RecordResponse, error)
}
