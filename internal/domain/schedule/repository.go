package schedule

import (
	"context"
)

// Repository persists the one active WorkSchedule per company.
type Repository interface {
	// GetByCompany returns ErrScheduleNotFound when none is configured.
	GetByCompany(ctx context.Context, companyID string) (WorkSchedule, error)

	// Upsert replaces the company's schedule.
	Upsert(ctx context.Context, ws WorkSchedule) (WorkSchedule, error)
}
