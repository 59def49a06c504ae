package leave

import (
	"context"
	"time"
)

// Repository persists short leaves.
type Repository interface {
	Create(ctx context.Context, l ShortLeave) (ShortLeave, error)

	// GetByID returns ErrLeaveNotFound when no leave matches.
	GetByID(ctx context.Context, id string, companyID string) (ShortLeave, error)

	// GetOpenByEmployee returns (nil, nil) when the employee has no open
	// leave.
	GetOpenByEmployee(ctx context.Context, employeeID string, companyID string) (*ShortLeave, error)

	Update(ctx context.Context, l ShortLeave) error

	// ListByRange returns leaves whose local date falls in [from, to],
	// oldest first. EmployeeID empty lists the whole company.
	ListByRange(ctx context.Context, employeeID string, from, to time.Time, companyID string) ([]ShortLeave, error)
}
