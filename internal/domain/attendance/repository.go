package attendance

import (
	"context"
	"time"
)

// Repository is the daily log store: the deduplicated, one-record-per
// (employee, local date) ledger plus its append-only event trail.
// Write methods that take an Event must persist record and event in a
// single transaction so a classification either fully commits or leaves
// no partial state.
type Repository interface {
	// GetByEmployeeAndDate returns (nil, nil) when no record exists.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*DailyRecord, error)

	// CreateWithEvent inserts a new daily record and its originating event.
	CreateWithEvent(ctx context.Context, rec DailyRecord, ev Event) (DailyRecord, error)

	// UpdateWithEvent updates an existing record and appends the event
	// that caused the change.
	UpdateWithEvent(ctx context.Context, rec DailyRecord, ev Event) (DailyRecord, error)

	// Update persists record field changes with no new event (late-reason
	// patches, door-unlock correlation backfill).
	Update(ctx context.Context, rec DailyRecord) error

	// ListByEmployeeRange returns records in [from, to] local dates,
	// oldest first.
	ListByEmployeeRange(ctx context.Context, employeeID string, from, to time.Time, companyID string) ([]DailyRecord, error)

	// ListByMonth returns all of an employee's records whose local date
	// falls in the given month, oldest first.
	ListByMonth(ctx context.Context, employeeID string, year int, month time.Month, companyID string) ([]DailyRecord, error)

	// ListUncorrelated returns records since the given date that have a
	// check-in and device but no door_unlock_time yet.
	ListUncorrelated(ctx context.Context, companyID string, since time.Time) ([]DailyRecord, error)

	// ListEvents returns the raw event trail for an employee in an
	// inclusive UTC range, oldest first.
	ListEvents(ctx context.Context, employeeID string, from, to time.Time, companyID string) ([]Event, error)
}
