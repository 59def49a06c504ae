package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/geoattend/attendance-backend-go/internal/domain/attendance"
	"github.com/geoattend/attendance-backend-go/internal/domain/leave"
	"github.com/geoattend/attendance-backend-go/internal/domain/schedule"
	"github.com/geoattend/attendance-backend-go/internal/pkg/keylock"
	"github.com/geoattend/attendance-backend-go/internal/pkg/validator"
)

type TrackerImpl struct {
	leave.Repository
	attendanceRepo attendance.Repository
	resolver       schedule.Resolver
	locks          *keylock.KeyLock
	lockWait       time.Duration
	now            func() time.Time
}

func NewLeaveTracker(
	repo leave.Repository,
	attendanceRepo attendance.Repository,
	resolver schedule.Resolver,
	locks *keylock.KeyLock,
	lockWait time.Duration,
) leave.Tracker {
	return &TrackerImpl{
		Repository:     repo,
		attendanceRepo: attendanceRepo,
		resolver:       resolver,
		locks:          locks,
		lockWait:       lockWait,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// Start implements leave.Tracker.
func (t *TrackerImpl) Start(ctx context.Context, companyID string, req leave.StartLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	exitTime := req.ExitTime
	if exitTime.IsZero() {
		exitTime = t.now()
	}
	exitTime = exitTime.UTC()

	res, err := t.resolver.ResolveOrDefault(ctx, companyID, exitTime)
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to resolve schedule: %w", err)
	}

	release, err := t.locks.Acquire(ctx, attendance.DateKey(req.EmployeeID, res.LocalDate), t.lockWait)
	if err != nil {
		if errors.Is(err, keylock.ErrLockTimeout) {
			return leave.LeaveResponse{}, keylock.ErrLockTimeout
		}
		return leave.LeaveResponse{}, fmt.Errorf("failed to acquire record lock: %w", err)
	}
	defer release()

	// A short leave only makes sense while the day's state is CheckedIn.
	rec, err := t.attendanceRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, res.LocalDate, companyID)
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to load daily record: %w", err)
	}
	if rec == nil || rec.CheckInTime == nil || rec.CheckOutTime != nil {
		return leave.LeaveResponse{}, leave.ErrNotCheckedIn
	}

	open, err := t.Repository.GetOpenByEmployee(ctx, req.EmployeeID, companyID)
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to look up open leave: %w", err)
	}
	if open != nil {
		return leave.LeaveResponse{}, leave.ErrLeaveAlreadyOpen
	}

	created, err := t.Repository.Create(ctx, leave.ShortLeave{
		ID:         uuid.NewString(),
		CompanyID:  companyID,
		EmployeeID: req.EmployeeID,
		Date:       res.LocalDate,
		ExitTime:   exitTime,
		Reason:     req.Reason,
	})
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to create short leave: %w", err)
	}

	return leave.NewLeaveResponse(created), nil
}

// End implements leave.Tracker.
func (t *TrackerImpl) End(ctx context.Context, companyID string, req leave.EndLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	returnTime := req.ReturnTime
	if returnTime.IsZero() {
		returnTime = t.now()
	}
	returnTime = returnTime.UTC()

	l, err := t.Repository.GetByID(ctx, req.LeaveID, companyID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	release, err := t.locks.Acquire(ctx, attendance.DateKey(l.EmployeeID, l.Date), t.lockWait)
	if err != nil {
		if errors.Is(err, keylock.ErrLockTimeout) {
			return leave.LeaveResponse{}, keylock.ErrLockTimeout
		}
		return leave.LeaveResponse{}, fmt.Errorf("failed to acquire record lock: %w", err)
	}
	defer release()

	// Re-read under the lock.
	l, err = t.Repository.GetByID(ctx, req.LeaveID, companyID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if !l.Open() {
		return leave.LeaveResponse{}, leave.ErrLeaveNotOpen
	}

	if returnTime.Before(l.ExitTime) {
		return leave.LeaveResponse{}, validator.ValidationErrors{{
			Field:   "return_time",
			Message: "return_time must not be before exit_time",
		}}
	}

	l.ReturnTime = &returnTime
	if err := t.Repository.Update(ctx, l); err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to close short leave: %w", err)
	}

	return leave.NewLeaveResponse(l), nil
}

// List implements leave.Tracker.
func (t *TrackerImpl) List(ctx context.Context, companyID string, filter leave.LeaveFilter) ([]leave.LeaveResponse, error) {
	from, ok := validator.IsValidDate(filter.From)
	if !ok {
		return nil, validator.ValidationErrors{{
			Field:   "from",
			Message: "from must be in YYYY-MM-DD format",
		}}
	}
	to, ok := validator.IsValidDate(filter.To)
	if !ok {
		return nil, validator.ValidationErrors{{
			Field:   "to",
			Message: "to must be in YYYY-MM-DD format",
		}}
	}

	leaves, err := t.Repository.ListByRange(ctx, filter.EmployeeID, from, to, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list short leaves: %w", err)
	}

	responses := make([]leave.LeaveResponse, 0, len(leaves))
	for _, l := range leaves {
		responses = append(responses, leave.NewLeaveResponse(l))
	}
	return responses, nil
}
