package door

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/geoattend/attendance-backend-go/internal/domain/attendance"
	"github.com/geoattend/attendance-backend-go/internal/domain/door"
	"github.com/geoattend/attendance-backend-go/internal/domain/schedule"
	"github.com/geoattend/attendance-backend-go/internal/pkg/deviceauth"
	"github.com/geoattend/attendance-backend-go/internal/pkg/sse"
	"github.com/geoattend/attendance-backend-go/internal/pkg/validator"
)

const (
	// DefaultReplayTolerance bounds how far a device clock may drift
	// from server time before a pushed punch is treated as a replay.
	DefaultReplayTolerance = 5 * time.Minute

	// DefaultCorrelationWindow bounds how long after a check-in a door
	// unlock can still be attributed to it.
	DefaultCorrelationWindow = 5 * time.Minute

	// correlationLookback limits how far back the backfill sweep scans.
	correlationLookback = 48 * time.Hour

	doorOpenDurationMS = 3000
)

type DoorServiceImpl struct {
	door.Repository
	deviceRepo        door.DeviceRepository
	attendanceRepo    attendance.Repository
	attendanceService attendance.Service
	resolver          schedule.Resolver
	hub               *sse.Hub
	replayTolerance   time.Duration
	correlationWindow time.Duration
	now               func() time.Time
}

func NewDoorService(
	repo door.Repository,
	deviceRepo door.DeviceRepository,
	attendanceRepo attendance.Repository,
	attendanceService attendance.Service,
	resolver schedule.Resolver,
	hub *sse.Hub,
	replayTolerance time.Duration,
	correlationWindow time.Duration,
) door.Service {
	if replayTolerance <= 0 {
		replayTolerance = DefaultReplayTolerance
	}
	if correlationWindow <= 0 {
		correlationWindow = DefaultCorrelationWindow
	}
	return &DoorServiceImpl{
		Repository:        repo,
		deviceRepo:        deviceRepo,
		attendanceRepo:    attendanceRepo,
		attendanceService: attendanceService,
		resolver:          resolver,
		hub:               hub,
		replayTolerance:   replayTolerance,
		correlationWindow: correlationWindow,
		now:               func() time.Time { return time.Now().UTC() },
	}
}

// AuthenticateDevice implements door.Service.
func (d *DoorServiceImpl) AuthenticateDevice(ctx context.Context, deviceUID, deviceKey string) (door.Device, error) {
	device, err := d.deviceRepo.GetByUID(ctx, deviceUID)
	if err != nil {
		return door.Device{}, err
	}
	if !device.Active {
		return door.Device{}, door.ErrDeviceInactive
	}
	if !deviceauth.VerifySecret(device.SecretHash, deviceKey) {
		return door.Device{}, door.ErrInvalidDeviceKey
	}
	return device, nil
}

// HardwarePunch implements door.Service.
func (d *DoorServiceImpl) HardwarePunch(ctx context.Context, deviceUID string, req door.HardwarePunchRequest) (door.HardwarePunchResponse, error) {
	if err := req.Validate(); err != nil {
		return door.HardwarePunchResponse{}, err
	}

	device, err := d.deviceRepo.GetByUID(ctx, deviceUID)
	if err != nil {
		return door.HardwarePunchResponse{}, err
	}
	if !device.Active {
		return door.HardwarePunchResponse{}, door.ErrDeviceInactive
	}

	now := d.now()
	reported := req.ReportedTime.UTC()
	drift := now.Sub(reported)
	if drift < 0 {
		drift = -drift
	}
	if drift > d.replayTolerance {
		return door.HardwarePunchResponse{}, door.ErrStaleDeviceClock
	}

	res, err := d.resolver.ResolveOrDefault(ctx, device.CompanyID, reported)
	if err != nil {
		return door.HardwarePunchResponse{}, fmt.Errorf("failed to resolve schedule: %w", err)
	}

	rec, err := d.attendanceRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, res.LocalDate, device.CompanyID)
	if err != nil {
		return door.HardwarePunchResponse{}, fmt.Errorf("failed to load daily record: %w", err)
	}

	// First scan of the local day checks in, a later scan checks out.
	direction := "check_in"
	switch {
	case rec == nil:
		_, err = d.attendanceService.CheckIn(ctx, device.CompanyID, attendance.CheckInRequest{
			EmployeeID: req.EmployeeID,
			Timestamp:  reported,
			Source:     attendance.SourceDeviceHardware,
			DeviceID:   &device.DeviceUID,
		})
		if errors.Is(err, attendance.ErrAlreadyCheckedIn) {
			direction = "duplicate_scan"
			err = nil
		}
	case rec.CheckOutTime == nil && rec.CheckInTime != nil && reported.After(*rec.CheckInTime):
		direction = "check_out"
		_, err = d.attendanceService.CheckOut(ctx, device.CompanyID, attendance.CheckOutRequest{
			EmployeeID: req.EmployeeID,
			Timestamp:  reported,
			Source:     attendance.SourceDeviceHardware,
			DeviceID:   &device.DeviceUID,
		})
	default:
		direction = "duplicate_scan"
	}
	if err != nil {
		return door.HardwarePunchResponse{}, err
	}

	employeeID := req.EmployeeID
	ev, err := d.Repository.CreateEvent(ctx, door.Event{
		ID:            uuid.NewString(),
		CompanyID:     device.CompanyID,
		DeviceID:      device.DeviceUID,
		Type:          door.EventUnlock,
		TriggerReason: direction,
		EmployeeID:    &employeeID,
		Timestamp:     now,
	})
	if err != nil {
		return door.HardwarePunchResponse{}, fmt.Errorf("failed to record door event: %w", err)
	}

	d.publish(device.CompanyID, "door.unlock", door.NewEventResponse(ev))

	return door.HardwarePunchResponse{
		OpenDoor:   true,
		DurationMS: doorOpenDurationMS,
		Direction:  direction,
		Message:    "access granted",
	}, nil
}

// EmergencyOpen implements door.Service.
func (d *DoorServiceImpl) EmergencyOpen(ctx context.Context, companyID string, req door.EmergencyOpenRequest) (door.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return door.EventResponse{}, err
	}

	device, err := d.deviceRepo.GetByID(ctx, req.DeviceID, companyID)
	if err != nil {
		return door.EventResponse{}, err
	}

	now := d.now()
	ev, err := d.Repository.CreateEvent(ctx, door.Event{
		ID:            uuid.NewString(),
		CompanyID:     companyID,
		DeviceID:      device.DeviceUID,
		Type:          door.EventEmergencyUnlock,
		TriggerReason: req.Reason,
		EmployeeID:    req.EmployeeID,
		Timestamp:     now,
	})
	if err != nil {
		return door.EventResponse{}, fmt.Errorf("failed to record door event: %w", err)
	}

	// An emergency unlock during work hours for an employee with no
	// recorded checkout synthesizes an emergency checkout through the
	// classifier's normal checkout path.
	if req.EmployeeID != nil {
		if err := d.synthesizeCheckout(ctx, companyID, device.DeviceUID, *req.EmployeeID, req.Reason, now); err != nil {
			slog.Error("failed to synthesize emergency checkout",
				"company_id", companyID, "employee_id", *req.EmployeeID, "error", err)
		}
	}

	d.publish(companyID, "door.emergency_unlock", door.NewEventResponse(ev))
	return door.NewEventResponse(ev), nil
}

func (d *DoorServiceImpl) synthesizeCheckout(ctx context.Context, companyID, deviceUID, employeeID, reason string, at time.Time) error {
	res, err := d.resolver.ResolveOrDefault(ctx, companyID, at)
	if err != nil {
		return fmt.Errorf("failed to resolve schedule: %w", err)
	}
	if !res.WithinWorkHours() {
		return nil
	}

	rec, err := d.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, res.LocalDate, companyID)
	if err != nil {
		return fmt.Errorf("failed to load daily record: %w", err)
	}
	if rec == nil || rec.CheckInTime == nil || rec.CheckOutTime != nil {
		// Nothing to close: not checked in, or already checked out.
		return nil
	}

	_, err = d.attendanceService.CheckOut(ctx, companyID, attendance.CheckOutRequest{
		EmployeeID:      employeeID,
		Timestamp:       at,
		Source:          attendance.SourceDeviceHardware,
		DeviceID:        &deviceUID,
		Emergency:       true,
		EmergencyReason: &reason,
		DoorUnlockTime:  &at,
	})
	return err
}

// ListEvents implements door.Service.
func (d *DoorServiceImpl) ListEvents(ctx context.Context, companyID string, filter door.EventFilter) ([]door.EventResponse, error) {
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

	events, err := d.Repository.ListEventsByRange(ctx, companyID, from, to.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to list door events: %w", err)
	}

	responses := make([]door.EventResponse, 0, len(events))
	for _, ev := range events {
		responses = append(responses, door.NewEventResponse(ev))
	}
	return responses, nil
}

// CorrelateRecent implements door.Service.
func (d *DoorServiceImpl) CorrelateRecent(ctx context.Context, companyID string) (int, error) {
	since := d.now().Add(-correlationLookback)

	records, err := d.attendanceRepo.ListUncorrelated(ctx, companyID, since)
	if err != nil {
		return 0, fmt.Errorf("failed to list uncorrelated records: %w", err)
	}

	updated := 0
	for _, rec := range records {
		events, err := d.Repository.ListEventsByDevice(ctx, companyID, *rec.DeviceID, *rec.CheckInTime)
		if err != nil {
			return updated, fmt.Errorf("failed to list device events: %w", err)
		}

		unlockTime := door.Correlate(rec, events, d.correlationWindow)
		if unlockTime == nil {
			continue
		}

		rec.DoorUnlockTime = unlockTime
		if err := d.attendanceRepo.Update(ctx, rec); err != nil {
			return updated, fmt.Errorf("failed to backfill door unlock time: %w", err)
		}
		updated++
	}

	return updated, nil
}

func (d *DoorServiceImpl) publish(companyID, event string, data interface{}) {
	if d.hub == nil {
		return
	}
	d.hub.Publish(companyID, sse.Event{
		CompanyID: companyID,
		Event:     event,
		Data:      data,
	})
}
