package schedule

import (
	"context"
	"time"
)

// Resolver resolves a company's active schedule at a point in time,
// converting the UTC instant to the company's local wall clock with the
// correct daylight-saving offset for that instant.
type Resolver interface {
	// Resolve returns ErrScheduleNotFound when the company has no
	// schedule. ResolveOrDefault is the degraded-mode variant callers on
	// the punch path use instead.
	Resolve(ctx context.Context, companyID string, at time.Time) (Resolved, error)

	// ResolveOrDefault falls back to a UTC default schedule when none is
	// configured, logging the degraded mode; it never fails a punch for
	// missing configuration.
	ResolveOrDefault(ctx context.Context, companyID string, at time.Time) (Resolved, error)

	// Get returns the raw configured schedule.
	Get(ctx context.Context, companyID string) (WorkSchedule, error)

	// Update replaces the company's schedule.
	Update(ctx context.Context, companyID string, req UpdateScheduleRequest) (ScheduleResponse, error)
}
