package leave

import (
	"context"
)

// Tracker manages short-leave windows. A leave can only start while the
// employee's attendance state for the day is CheckedIn.
type Tracker interface {
	Start(ctx context.Context, companyID string, req StartLeaveRequest) (LeaveResponse, error)
	End(ctx context.Context, companyID string, req EndLeaveRequest) (LeaveResponse, error)
	List(ctx context.Context, companyID string, filter LeaveFilter) ([]LeaveResponse, error)
}
