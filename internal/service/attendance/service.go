package attendance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/geoattend/attendance-backend-go/internal/domain/attendance"
	"github.com/geoattend/attendance-backend-go/internal/domain/geofence"
	"github.com/geoattend/attendance-backend-go/internal/domain/schedule"
	"github.com/geoattend/attendance-backend-go/internal/pkg/keylock"
	"github.com/geoattend/attendance-backend-go/internal/pkg/sse"
)

// DefaultLockWait bounds how long a punch waits for its per-key write
// lock before failing fast with a retryable error.
const DefaultLockWait = 2 * time.Second

type AttendanceServiceImpl struct {
	attendance.Repository
	resolver  schedule.Resolver
	validator geofence.Validator
	locks     *keylock.KeyLock
	lockWait  time.Duration
	hub       *sse.Hub
	now       func() time.Time
}

func NewAttendanceService(
	repo attendance.Repository,
	resolver schedule.Resolver,
	validator geofence.Validator,
	locks *keylock.KeyLock,
	lockWait time.Duration,
	hub *sse.Hub,
) attendance.Service {
	if lockWait <= 0 {
		lockWait = DefaultLockWait
	}
	return &AttendanceServiceImpl{
		Repository: repo,
		resolver:   resolver,
		validator:  validator,
		locks:      locks,
		lockWait:   lockWait,
		hub:        hub,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Classify maps the gap between a local check-in instant and the
// schedule start to a status. The threshold boundary is inclusive: a
// check-in exactly threshold minutes after start is Late, not Super Late.
func Classify(res schedule.Resolved, at time.Time) (attendance.Status, int) {
	delta := at.In(res.Location).Sub(res.DayStart)
	if delta <= 0 {
		return attendance.StatusPresent, 0
	}

	lateMinutes := int(math.Floor(delta.Minutes()))
	threshold := time.Duration(res.Schedule.SuperLateThresholdMinutes) * time.Minute
	if delta <= threshold {
		return attendance.StatusLate, lateMinutes
	}
	return attendance.StatusSuperLate, lateMinutes
}

// CheckIn implements attendance.Service.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, companyID string, req attendance.CheckInRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	ts := req.Timestamp
	if ts.IsZero() {
		ts = a.now()
	}
	ts = ts.UTC()

	res, err := a.resolver.ResolveOrDefault(ctx, companyID, ts)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to resolve schedule: %w", err)
	}

	release, err := a.acquire(ctx, req.EmployeeID, res.LocalDate)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	defer release()

	existing, err := a.Repository.GetByEmployeeAndDate(ctx, req.EmployeeID, res.LocalDate, companyID)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to load daily record: %w", err)
	}

	// Idempotent rejection: a second punch-in from a non-privileged
	// source never overwrites the first.
	if existing != nil && req.Source != attendance.SourceManualAdmin {
		return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedIn
	}

	// Hardware punches happen at the door; only app punches report a
	// location worth checking.
	geo := geofence.Result{Inside: true}
	if req.Source != attendance.SourceDeviceHardware {
		geo, err = a.validator.Validate(ctx, companyID, req.Latitude, req.Longitude)
		if err != nil {
			return attendance.RecordResponse{}, fmt.Errorf("failed to validate location: %w", err)
		}
	}
	if !geo.Inside && !geo.MissingCoordinate && geo.RejectOffsite {
		return attendance.RecordResponse{}, attendance.ErrOutsideGeofence
	}

	status, lateMinutes := Classify(res, ts)

	ev := attendance.Event{
		ID:         uuid.NewString(),
		CompanyID:  companyID,
		EmployeeID: req.EmployeeID,
		Type:       attendance.EventCheckIn,
		Source:     req.Source,
		Timestamp:  ts,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		DeviceID:   req.DeviceID,
	}

	var saved attendance.DailyRecord
	if existing != nil {
		// manual_admin correction path: overwrite the check-in.
		rec := *existing
		rec.CheckInTime = &ts
		rec.Status = status
		rec.LateMinutes = lateMinutes
		if req.LateReason != nil {
			rec.LateReason = req.LateReason
		}
		rec.NeedsReview = rec.NeedsReview || !geo.Inside
		rec.IsCorrection = true
		rec.CheckInSource = req.Source
		if req.DeviceID != nil {
			rec.DeviceID = req.DeviceID
		}

		saved, err = a.Repository.UpdateWithEvent(ctx, rec, ev)
		if err != nil {
			return attendance.RecordResponse{}, fmt.Errorf("failed to update daily record: %w", err)
		}
	} else {
		rec := attendance.DailyRecord{
			ID:            uuid.NewString(),
			CompanyID:     companyID,
			EmployeeID:    req.EmployeeID,
			Date:          res.LocalDate,
			CheckInTime:   &ts,
			Status:        status,
			LateMinutes:   lateMinutes,
			LateReason:    req.LateReason,
			NeedsReview:   !geo.Inside,
			IsCorrection:  req.Source == attendance.SourceManualAdmin,
			CheckInSource: req.Source,
			DeviceID:      req.DeviceID,
		}

		saved, err = a.Repository.CreateWithEvent(ctx, rec, ev)
		if err != nil {
			return attendance.RecordResponse{}, fmt.Errorf("failed to create daily record: %w", err)
		}
	}

	a.publish(companyID, "attendance.check_in", saved)
	return attendance.NewRecordResponse(saved), nil
}

// CheckOut implements attendance.Service.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, companyID string, req attendance.CheckOutRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	ts := req.Timestamp
	if ts.IsZero() {
		ts = a.now()
	}
	ts = ts.UTC()

	res, err := a.resolver.ResolveOrDefault(ctx, companyID, ts)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to resolve schedule: %w", err)
	}

	release, err := a.acquire(ctx, req.EmployeeID, res.LocalDate)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	defer release()

	existing, err := a.Repository.GetByEmployeeAndDate(ctx, req.EmployeeID, res.LocalDate, companyID)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to load daily record: %w", err)
	}

	if existing == nil && req.Source != attendance.SourceManualAdmin {
		return attendance.RecordResponse{}, attendance.ErrNoActiveCheckIn
	}
	if existing != nil && existing.CheckOutTime != nil && req.Source != attendance.SourceManualAdmin {
		return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedOut
	}

	geo := geofence.Result{Inside: true}
	if req.Source != attendance.SourceDeviceHardware {
		geo, err = a.validator.Validate(ctx, companyID, req.Latitude, req.Longitude)
		if err != nil {
			return attendance.RecordResponse{}, fmt.Errorf("failed to validate location: %w", err)
		}
	}

	emergency := req.Emergency
	emergencyReason := req.EmergencyReason
	// Off-site checkout under an opt-in reject policy is recorded as an
	// emergency checkout rather than silently accepted.
	if !emergency && !geo.Inside && !geo.MissingCoordinate && geo.RejectOffsite {
		emergency = true
		if emergencyReason == nil {
			reason := fmt.Sprintf("off-site checkout %.0fm from office", geo.DistanceMeters)
			emergencyReason = &reason
		}
	}
	if emergency && emergencyReason == nil {
		return attendance.RecordResponse{}, attendance.ErrEmergencyReasonRequired
	}

	ev := attendance.Event{
		ID:         uuid.NewString(),
		CompanyID:  companyID,
		EmployeeID: req.EmployeeID,
		Type:       attendance.EventCheckOut,
		Source:     req.Source,
		Timestamp:  ts,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		DeviceID:   req.DeviceID,
	}

	var saved attendance.DailyRecord
	if existing == nil {
		// manual_admin may record a checkout with no prior check-in;
		// the record is explicitly flagged as a correction and left for
		// review since no status can be classified without a check-in.
		rec := attendance.DailyRecord{
			ID:                      uuid.NewString(),
			CompanyID:               companyID,
			EmployeeID:              req.EmployeeID,
			Date:                    res.LocalDate,
			CheckOutTime:            &ts,
			Status:                  attendance.StatusPresent,
			IsEmergencyCheckout:     emergency,
			EmergencyCheckoutReason: emergencyReason,
			DoorUnlockTime:          req.DoorUnlockTime,
			NeedsReview:             true,
			IsCorrection:            true,
			CheckInSource:           req.Source,
			DeviceID:                req.DeviceID,
		}

		saved, err = a.Repository.CreateWithEvent(ctx, rec, ev)
		if err != nil {
			return attendance.RecordResponse{}, fmt.Errorf("failed to create daily record: %w", err)
		}
	} else {
		rec := *existing
		rec.CheckOutTime = &ts
		rec.IsEmergencyCheckout = emergency
		rec.EmergencyCheckoutReason = emergencyReason
		if req.DoorUnlockTime != nil {
			rec.DoorUnlockTime = req.DoorUnlockTime
		}
		rec.NeedsReview = rec.NeedsReview || (!geo.Inside && !emergency)
		if req.Source == attendance.SourceManualAdmin {
			rec.IsCorrection = true
		}

		saved, err = a.Repository.UpdateWithEvent(ctx, rec, ev)
		if err != nil {
			return attendance.RecordResponse{}, fmt.Errorf("failed to update daily record: %w", err)
		}
	}

	a.publish(companyID, "attendance.check_out", saved)
	return attendance.NewRecordResponse(saved), nil
}

// SetLateReason implements attendance.Service.
func (a *AttendanceServiceImpl) SetLateReason(ctx context.Context, companyID string, req attendance.LateReasonRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)

	release, err := a.acquire(ctx, req.EmployeeID, date)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	defer release()

	existing, err := a.Repository.GetByEmployeeAndDate(ctx, req.EmployeeID, date, companyID)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to load daily record: %w", err)
	}
	if existing == nil {
		return attendance.RecordResponse{}, attendance.ErrRecordNotFound
	}

	// Status and check-in time are deliberately untouched.
	rec := *existing
	rec.LateReason = &req.Reason

	if err := a.Repository.Update(ctx, rec); err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to update daily record: %w", err)
	}

	return attendance.NewRecordResponse(rec), nil
}

// GetRecord implements attendance.Service.
func (a *AttendanceServiceImpl) GetRecord(ctx context.Context, companyID, employeeID, date string) (attendance.RecordResponse, error) {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("invalid date %q: %w", date, err)
	}

	rec, err := a.Repository.GetByEmployeeAndDate(ctx, employeeID, parsed, companyID)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to load daily record: %w", err)
	}
	if rec == nil {
		return attendance.RecordResponse{}, attendance.ErrRecordNotFound
	}

	return attendance.NewRecordResponse(*rec), nil
}

// ListRecords implements attendance.Service.
func (a *AttendanceServiceImpl) ListRecords(ctx context.Context, companyID string, filter attendance.HistoryFilter) ([]attendance.RecordResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	from, _ := time.Parse("2006-01-02", filter.From)
	to, _ := time.Parse("2006-01-02", filter.To)

	records, err := a.Repository.ListByEmployeeRange(ctx, filter.EmployeeID, from, to, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily records: %w", err)
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, attendance.NewRecordResponse(rec))
	}
	return responses, nil
}

// acquire takes the per-(employee, local date) write lock with a bounded
// wait; a stuck key fails fast instead of queuing punches behind it.
func (a *AttendanceServiceImpl) acquire(ctx context.Context, employeeID string, localDate time.Time) (func(), error) {
	release, err := a.locks.Acquire(ctx, attendance.DateKey(employeeID, localDate), a.lockWait)
	if err != nil {
		if errors.Is(err, keylock.ErrLockTimeout) {
			return nil, keylock.ErrLockTimeout
		}
		return nil, fmt.Errorf("failed to acquire record lock: %w", err)
	}
	return release, nil
}

func (a *AttendanceServiceImpl) publish(companyID, event string, rec attendance.DailyRecord) {
	if a.hub == nil {
		return
	}
	a.hub.Publish(companyID, sse.Event{
		CompanyID: companyID,
		Event:     event,
		Data:      attendance.NewRecordResponse(rec),
	})
}
